package store

import (
	"context"
	"strings"

	"github.com/dukerupert/schompf/internal/model"
)

var validShoppingDays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

type SettingsInput struct {
	DefaultServings      *int                `json:"defaultServings" validate:"omitempty,min=1,max=100"`
	MealSlots            []model.MealSlot    `json:"mealSlots"`
	ShoppingDays         []string            `json:"shoppingDays"`
	DefaultFreshnessDays model.Nullable[int] `json:"defaultFreshnessDays"`
}

type SettingsStore struct {
	docs *Store
}

func NewSettingsStore(docs *Store) *SettingsStore {
	return &SettingsStore{docs: docs}
}

func (s *SettingsStore) Get(ctx context.Context) (model.Settings, error) {
	var settings model.Settings
	err := s.docs.View(ctx, func(doc *model.Document) error {
		settings = doc.CurrentSettings()
		return nil
	})
	return settings, err
}

func validateSlots(slots []model.MealSlot) error {
	seen := make(map[string]bool, len(slots))
	for _, slot := range slots {
		if strings.TrimSpace(slot.ID) == "" || strings.TrimSpace(slot.Name) == "" {
			return invalid("meal slots need an id and a name")
		}
		if seen[slot.ID] {
			return invalid("duplicate meal slot %q", slot.ID)
		}
		seen[slot.ID] = true
	}
	return nil
}

func (s *SettingsStore) Update(ctx context.Context, in SettingsInput) (model.Settings, error) {
	if in.MealSlots != nil {
		if err := validateSlots(in.MealSlots); err != nil {
			return model.Settings{}, err
		}
	}
	for _, day := range in.ShoppingDays {
		if !validShoppingDays[strings.ToLower(day)] {
			return model.Settings{}, invalid("unknown shopping day %q", day)
		}
	}
	if v := in.DefaultFreshnessDays.Value; v != nil && *v < 0 {
		return model.Settings{}, invalid("defaultFreshnessDays must not be negative")
	}

	var settings model.Settings
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		current := doc.CurrentSettings()
		if in.DefaultServings != nil {
			current.DefaultServings = *in.DefaultServings
		}
		if in.MealSlots != nil {
			current.MealSlots = in.MealSlots
		}
		if in.ShoppingDays != nil {
			days := make([]string, 0, len(in.ShoppingDays))
			for _, d := range in.ShoppingDays {
				days = append(days, strings.ToLower(d))
			}
			current.ShoppingDays = days
		}
		current.DefaultFreshnessDays = in.DefaultFreshnessDays.Or(current.DefaultFreshnessDays)
		doc.Settings = &current
		settings = current
		return nil
	})
	return settings, err
}
