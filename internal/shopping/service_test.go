package shopping

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/dukerupert/schompf/internal/model"
)

// memStore applies updates to a copy and keeps it only when fn succeeds.
type memStore struct {
	mu  sync.Mutex
	doc *model.Document
}

func (m *memStore) View(_ context.Context, fn func(doc *model.Document) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.doc)
}

func (m *memStore) Update(_ context.Context, fn func(doc *model.Document) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := json.Marshal(m.doc)
	if err != nil {
		return err
	}
	var working model.Document
	if err := json.Unmarshal(b, &working); err != nil {
		return err
	}
	if err := fn(&working); err != nil {
		return err
	}
	m.doc = &working
	return nil
}

func setupService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := &memStore{doc: testDocument(t)}
	svc := NewService(store, slog.Default())
	svc.newID = sequentialIDs()
	return svc, store
}

func TestServiceGenerateAndCurrent(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	list, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if list != nil {
		t.Fatalf("expected no list, got %+v", list)
	}

	list, err = svc.Generate(ctx, GenerateRequest{FromDate: "2024-01-08", ToDate: "2024-01-14"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(list.Items) != 3 {
		t.Errorf("got %d items, want 3", len(list.Items))
	}
	if store.doc.ShoppingList == nil || len(store.doc.ShoppingList.Items) != 3 {
		t.Error("list not persisted")
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current == nil || current.ID != list.ID {
		t.Errorf("current = %+v, want list %q", current, list.ID)
	}
}

func TestServiceGenerateValidationLeavesDocument(t *testing.T) {
	svc, store := setupService(t)

	_, err := svc.Generate(context.Background(), GenerateRequest{FromDate: "2024-01-14", ToDate: "2024-01-01"})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if store.doc.ShoppingList != nil {
		t.Error("failed generate created a list")
	}
}

func TestServiceItemOperations(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.UpdateItem(ctx, "x", ItemUpdate{}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("update without list: err = %v, want ErrNotFound", err)
	}
	if err := svc.ClearList(ctx); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("clear without list: err = %v, want ErrNotFound", err)
	}

	item, err := svc.AddManualItem(ctx, ManualItem{ProductName: "Mehl", Amount: ptr(300.0), Unit: ptr("g")})
	if err != nil {
		t.Fatalf("AddManualItem: %v", err)
	}

	item, err = svc.UpdateItem(ctx, item.ID, ItemUpdate{Amount: ptr(500.0), Unit: ptr("g")})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if item.DisplayAmount != "500 g" {
		t.Errorf("display = %q, want %q", item.DisplayAmount, "500 g")
	}

	item, err = svc.ToggleItemChecked(ctx, item.ID)
	if err != nil {
		t.Fatalf("ToggleItemChecked: %v", err)
	}
	if !item.Checked {
		t.Error("item not checked")
	}

	removed, err := svc.RemoveCheckedItems(ctx)
	if err != nil {
		t.Fatalf("RemoveCheckedItems: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	list, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if list != nil {
		t.Errorf("expected empty list to read as nil, got %d items", len(list.Items))
	}
}

func TestServiceDeleteItem(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	list, err := svc.Generate(ctx, GenerateRequest{FromDate: "2024-01-08", ToDate: "2024-01-14"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	soft, err := svc.DeleteItem(ctx, list.Items[0].ID)
	if err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if !soft {
		t.Error("expected soft delete")
	}
	if _, err := svc.DeleteItem(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	if err := svc.ClearList(ctx); err != nil {
		t.Fatalf("ClearList: %v", err)
	}
}
