package shopping

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/schompf/internal/model"
)

// DocumentStore runs functions against the persisted document. Update must
// apply fn as a single atomic read-modify-write and persist the result only
// when fn returns nil.
type DocumentStore interface {
	View(ctx context.Context, fn func(doc *model.Document) error) error
	Update(ctx context.Context, fn func(doc *model.Document) error) error
}

// Service exposes the shopping list operations over a document store.
type Service struct {
	store  DocumentStore
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(store DocumentStore, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

var errNoList = fmt.Errorf("%w: no shopping list", model.ErrNotFound)

// Current returns the shopping list, or nil when there is none or it is empty.
func (s *Service) Current(ctx context.Context) (*model.ShoppingList, error) {
	var list *model.ShoppingList
	err := s.store.View(ctx, func(doc *model.Document) error {
		if doc.ShoppingList != nil && len(doc.ShoppingList.Items) > 0 {
			list = doc.ShoppingList
		}
		return nil
	})
	return list, err
}

// Generate builds or extends the shopping list from the meals in the range.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*model.ShoppingList, error) {
	var res GenerateResult
	err := s.store.Update(ctx, func(doc *model.Document) error {
		var err error
		res, err = Generate(doc.ShoppingList, doc, req, s.now(), s.newID)
		if err != nil {
			return err
		}
		doc.ShoppingList = res.List
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("shopping list generated",
		"from", req.FromDate,
		"to", req.ToDate,
		"meals", res.EligibleMeals,
		"created", res.Created,
		"merged", res.Merged,
		"items", len(res.List.Items),
	)
	if res.Truncated > 0 {
		s.logger.Warn("sub-dish expansion truncated", "references", res.Truncated)
	}
	return res.List, nil
}

// AddManualItem adds a user-entered item, creating the list if needed.
func (s *Service) AddManualItem(ctx context.Context, req ManualItem) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	err := s.store.Update(ctx, func(doc *model.Document) error {
		now := s.now()
		if doc.ShoppingList == nil {
			doc.ShoppingList = &model.ShoppingList{ID: s.newID(), GeneratedAt: now, Items: []model.ShoppingItem{}}
		}
		var err error
		item, err = AddManualItem(doc.ShoppingList, doc, req, now, s.newID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateItem(ctx context.Context, id string, upd ItemUpdate) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	err := s.store.Update(ctx, func(doc *model.Document) error {
		if doc.ShoppingList == nil {
			return errNoList
		}
		var err error
		item, err = UpdateItem(doc.ShoppingList, doc, id, upd, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem soft- or hard-deletes an item. It reports whether the delete was soft.
func (s *Service) DeleteItem(ctx context.Context, id string) (bool, error) {
	var soft bool
	err := s.store.Update(ctx, func(doc *model.Document) error {
		if doc.ShoppingList == nil {
			return errNoList
		}
		var err error
		soft, err = DeleteItem(doc.ShoppingList, id, s.now())
		return err
	})
	return soft, err
}

func (s *Service) ToggleItemChecked(ctx context.Context, id string) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	err := s.store.Update(ctx, func(doc *model.Document) error {
		if doc.ShoppingList == nil {
			return errNoList
		}
		var err error
		item, err = ToggleChecked(doc.ShoppingList, id, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) RemoveCheckedItems(ctx context.Context) (int, error) {
	var removed int
	err := s.store.Update(ctx, func(doc *model.Document) error {
		if doc.ShoppingList == nil {
			return errNoList
		}
		removed = RemoveChecked(doc.ShoppingList, s.now())
		return nil
	})
	return removed, err
}

func (s *Service) ClearList(ctx context.Context) error {
	return s.store.Update(ctx, func(doc *model.Document) error {
		if doc.ShoppingList == nil {
			return errNoList
		}
		Clear(doc.ShoppingList, s.now())
		return nil
	})
}
