package quickinsert

// defaultLibrary is the seeded quick-insert button set, organized by the
// clinical condition it supports and the rounding field it writes into
var defaultLibrary = []Item{
	// Surgery/spinal therapeutics
	{ID: "gaba-100", Label: "Gaba 100mg", Text: "Gabapentin 100mg PO q8-12h", Category: "surgery", Field: FieldTherapeutics},
	{ID: "gaba-300", Label: "Gaba 300mg", Text: "Gabapentin 300mg PO q8-12h", Category: "surgery", Field: FieldTherapeutics},
	{ID: "tramadol-50", Label: "Tramadol 50mg", Text: "Tramadol 50mg PO q8-12h", Category: "surgery", Field: FieldTherapeutics},
	{ID: "trazodone", Label: "Trazodone", Text: "Trazodone 50mg PO q8-12h PRN", Category: "surgery", Field: FieldTherapeutics},
	{ID: "pred-5", Label: "Pred 5mg", Text: "Prednisone 5mg PO q12-24h", Category: "surgery", Field: FieldTherapeutics},
	{ID: "pred-10", Label: "Pred 10mg", Text: "Prednisone 10mg PO q12-24h", Category: "surgery", Field: FieldTherapeutics},
	{ID: "famo-10", Label: "Famo 10mg", Text: "Famotidine 10mg PO q12-24h", Category: "surgery", Field: FieldTherapeutics},
	{ID: "famo-20", Label: "Famo 20mg", Text: "Famotidine 20mg PO q12-24h", Category: "surgery", Field: FieldTherapeutics},
	{ID: "ondansetron", Label: "Ondansetron", Text: "Ondansetron 4mg PO/IV q8-12h PRN", Category: "surgery", Field: FieldTherapeutics},
	{ID: "maropitant", Label: "Maropitant", Text: "Maropitant 1mg/kg SQ q24h", Category: "surgery", Field: FieldTherapeutics},
	{ID: "methocarbamol", Label: "Methocarbamol", Text: "Methocarbamol 500mg PO q8h", Category: "surgery", Field: FieldTherapeutics},
	{ID: "amantadine", Label: "Amantadine", Text: "Amantadine 100mg PO q24h", Category: "surgery", Field: FieldTherapeutics},

	// Seizure therapeutics
	{ID: "keppra-500", Label: "Keppra 500mg", Text: "Levetiracetam 500mg PO q8h", Category: "seizures", Field: FieldTherapeutics},
	{ID: "pheno", Label: "Phenobarbital", Text: "Phenobarbital 2mg/kg PO q12h", Category: "seizures", Field: FieldTherapeutics},

	// Diagnostics
	{ID: "cbc-chem-nsf", Label: "CBC/CHEM NSF", Text: "CBC/CHEM- nsf\nCXR: nsf", Category: "surgery", Field: FieldDiagnostics},
	{ID: "cbc-chem-wnl", Label: "Labs WNL", Text: "CBC/CHEM- WNL", Category: "surgery", Field: FieldDiagnostics},
	{ID: "cbc-chem-pending", Label: "Labs Pending", Text: "CBC/CHEM- pending", Category: "surgery", Field: FieldDiagnostics},
	{ID: "bladder-palp", Label: "Bladder Palp", Text: "Bladder palpation q6-8h", Category: "surgery", Field: FieldDiagnostics},
	{ID: "ambulation", Label: "Ambulation", Text: "Ambulation assessment q12h", Category: "surgery", Field: FieldDiagnostics},

	// Concerns
	{ID: "npo-6pm", Label: "NPO 6pm", Text: "NPO from 6pm", Category: "surgery", Field: FieldConcerns},
	{ID: "npo-midnight", Label: "NPO Midnight", Text: "NPO after midnight for MRI", Category: "other", Field: FieldConcerns},
	{ID: "increase-gaba-tram", Label: "Can Increase Gaba/Tram", Text: "can increase gaba tram prn", Category: "surgery", Field: FieldConcerns},
	{ID: "pain-management", Label: "Pain Mgmt", Text: "Monitor pain level, adjust analgesics PRN", Category: "surgery", Field: FieldConcerns},
	{ID: "bladder-express", Label: "Bladder Express", Text: "Express bladder q6-8h if unable to void", Category: "surgery", Field: FieldConcerns},
	{ID: "seizure-watch", Label: "Seizure Watch", Text: "Monitor for seizure activity, record duration", Category: "seizures", Field: FieldConcerns},
}
