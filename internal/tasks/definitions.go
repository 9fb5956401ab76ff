package tasks

// Time-of-day buckets for the checklist board
const (
	TimeOfDayMorning = "morning"
	TimeOfDayEvening = "evening"
	TimeOfDayAnytime = "anytime"
)

// Definition is one daily recurring task template. These are created for
// every active patient and reset by the daily reset job.
type Definition struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	TimeOfDay string `json:"timeOfDay"`
	Priority  string `json:"priority"`
}

// MorningTasks are created for each active patient and expected before rounds
var MorningTasks = []Definition{
	{Title: "Daily SOAP Done", Category: "Daily", TimeOfDay: TimeOfDayMorning, Priority: "high"},
	{Title: "Overnight Notes Checked", Category: "Daily", TimeOfDay: TimeOfDayMorning, Priority: "medium"},
	{Title: "Call Owner", Category: "Daily", TimeOfDay: TimeOfDayMorning, Priority: "high"},
}

// EveningTasks are created for each active patient and expected before handoff
var EveningTasks = []Definition{
	{Title: "Vet Radar Done", Category: "Daily", TimeOfDay: TimeOfDayEvening, Priority: "high"},
	{Title: "Rounding Sheet Done", Category: "Daily", TimeOfDay: TimeOfDayEvening, Priority: "high"},
	{Title: "Sticker on Daily Sheet", Category: "Daily", TimeOfDay: TimeOfDayEvening, Priority: "medium"},
}

// DailyTaskTitles returns the titles of every daily recurring task
func DailyTaskTitles() []string {
	titles := make([]string, 0, len(MorningTasks)+len(EveningTasks))
	for _, def := range MorningTasks {
		titles = append(titles, def.Title)
	}
	for _, def := range EveningTasks {
		titles = append(titles, def.Title)
	}
	return titles
}

// TimeOfDayFor classifies a task title into a checklist bucket. Custom tasks
// land in the anytime bucket.
func TimeOfDayFor(title string) string {
	for _, def := range MorningTasks {
		if def.Title == title {
			return TimeOfDayMorning
		}
	}
	for _, def := range EveningTasks {
		if def.Title == title {
			return TimeOfDayEvening
		}
	}
	return TimeOfDayAnytime
}
