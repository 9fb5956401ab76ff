package quickinsert

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/logger"
	"github.com/laurenj3250-debug/vethub2.0-sub004/pkg/types"
)

// Target fields for quick-insert options
const (
	FieldTherapeutics = "therapeutics"
	FieldDiagnostics  = "diagnostics"
	FieldConcerns     = "concerns"
)

// schemaVersion is bumped whenever the seeded option set changes; Migrate
// reseeds when the stored version is older
const schemaVersion = 1

const (
	versionKey = "quickinsert:schema"
	optionsKey = "quickinsert:options:"
	usageKey   = "quickinsert:usage"
)

// Item is one quick-insert button: a short label and the text it drops into
// a rounding field
type Item struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Field    string `json:"field"`
}

// Store keeps quick-insert options in Redis so every clinician sees the same
// library, including custom additions
type Store struct {
	client *redis.Client
	logger *logger.Logger
}

// NewStore creates a new quick-insert store
func NewStore(client *redis.Client, log *logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log,
	}
}

// IsValidField reports whether the field accepts quick-insert options
func IsValidField(field string) bool {
	switch field {
	case FieldTherapeutics, FieldDiagnostics, FieldConcerns:
		return true
	}
	return false
}

// Migrate seeds the default option library. It runs at startup and is a
// no-op when the stored schema is current, so custom additions survive
// restarts.
func (s *Store) Migrate(ctx context.Context) error {
	stored, err := s.client.Get(ctx, versionKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read quick-insert schema version: %w", err)
	}

	if version, _ := strconv.Atoi(stored); version >= schemaVersion {
		return nil
	}

	byField := map[string][]Item{}
	for _, item := range defaultLibrary {
		byField[item.Field] = append(byField[item.Field], item)
	}

	for field, items := range byField {
		if err := s.writeOptions(ctx, field, items); err != nil {
			return err
		}
	}

	if err := s.client.Set(ctx, versionKey, schemaVersion, 0).Err(); err != nil {
		return fmt.Errorf("failed to write quick-insert schema version: %w", err)
	}

	s.logger.Infof("Seeded quick-insert library (schema v%d, %d items)", schemaVersion, len(defaultLibrary))
	return nil
}

// Options returns the quick-insert items for one rounding field
func (s *Store) Options(ctx context.Context, field string) ([]Item, error) {
	if !IsValidField(field) {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown quick-insert field: %s", field), nil)
	}

	raw, err := s.client.Get(ctx, optionsKey+field).Result()
	if err == redis.Nil {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read quick-insert options: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode quick-insert options: %w", err)
	}

	return items, nil
}

// AddOption appends a custom item to a field's library
func (s *Store) AddOption(ctx context.Context, item Item) error {
	if !IsValidField(item.Field) {
		return types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown quick-insert field: %s", item.Field), nil)
	}

	items, err := s.Options(ctx, item.Field)
	if err != nil {
		return err
	}

	for _, existing := range items {
		if existing.ID == item.ID {
			return types.NewConflictError(types.ErrCodeConflict,
				fmt.Sprintf("quick-insert item already exists: %s", item.ID))
		}
	}

	return s.writeOptions(ctx, item.Field, append(items, item))
}

// RecordUse bumps an item's usage counter; frequently used buttons float to
// the top of the picker
func (s *Store) RecordUse(ctx context.Context, itemID string) error {
	if err := s.client.ZIncrBy(ctx, usageKey, 1, itemID).Err(); err != nil {
		return fmt.Errorf("failed to record quick-insert use: %w", err)
	}
	return nil
}

// TopUsed returns the most used item IDs, best first
func (s *Store) TopUsed(ctx context.Context, limit int64) ([]string, error) {
	ids, err := s.client.ZRevRange(ctx, usageKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read quick-insert usage: %w", err)
	}
	return ids, nil
}

func (s *Store) writeOptions(ctx context.Context, field string, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode quick-insert options: %w", err)
	}

	if err := s.client.Set(ctx, optionsKey+field, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write quick-insert options: %w", err)
	}
	return nil
}
