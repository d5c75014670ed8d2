package store

import (
	"context"
	"sort"
	"strings"

	"github.com/dukerupert/schompf/internal/model"
)

type CategoryInput struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	VendorID *string `json:"vendorId"`
	Order    *int    `json:"order" validate:"omitempty,min=0"`
}

type CategoryStore struct {
	docs *Store
}

func NewCategoryStore(docs *Store) *CategoryStore {
	return &CategoryStore{docs: docs}
}

func sortCategories(categories []model.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].VendorID != categories[j].VendorID {
			return categories[i].VendorID < categories[j].VendorID
		}
		return categories[i].Order < categories[j].Order
	})
}

// List returns categories sorted by vendor, then order. An empty vendorID
// lists every vendor's categories.
func (s *CategoryStore) List(ctx context.Context, vendorID string) ([]model.Category, error) {
	categories := []model.Category{}
	err := s.docs.View(ctx, func(doc *model.Document) error {
		for _, c := range doc.Categories {
			if vendorID == "" || c.VendorID == vendorID {
				categories = append(categories, c)
			}
		}
		return nil
	})
	sortCategories(categories)
	return categories, err
}

func (s *CategoryStore) Get(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	err := s.docs.View(ctx, func(doc *model.Document) error {
		c, ok := doc.Category(id)
		if !ok {
			return notFound("category", id)
		}
		category = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Create appends the category after the vendor's last one unless an order is given.
func (s *CategoryStore) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	name, err := requiredName(in.Name, "name")
	if err != nil {
		return nil, err
	}
	if in.VendorID == nil || *in.VendorID == "" {
		return nil, invalid("vendorId is required")
	}

	var category model.Category
	err = s.docs.Update(ctx, func(doc *model.Document) error {
		if _, ok := doc.Vendor(*in.VendorID); !ok {
			return invalid("vendor %q does not exist", *in.VendorID)
		}

		order := 0
		if in.Order != nil {
			order = *in.Order
		} else {
			maxOrder := -1
			for _, c := range doc.Categories {
				if c.VendorID == *in.VendorID && c.Order > maxOrder {
					maxOrder = c.Order
				}
			}
			order = maxOrder + 1
		}

		t := now()
		category = model.Category{ID: newID(), Name: name, VendorID: *in.VendorID, Order: order, CreatedAt: t, UpdatedAt: t}
		doc.Categories = append(doc.Categories, category)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryStore) Update(ctx context.Context, id string, in CategoryInput) (*model.Category, error) {
	var category model.Category
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		c, ok := doc.Category(id)
		if !ok {
			return notFound("category", id)
		}
		if in.VendorID != nil && *in.VendorID != "" && *in.VendorID != c.VendorID {
			if _, ok := doc.Vendor(*in.VendorID); !ok {
				return invalid("vendor %q does not exist", *in.VendorID)
			}
			c.VendorID = *in.VendorID
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return invalid("name must not be empty")
			}
			c.Name = name
		}
		if in.Order != nil {
			c.Order = *in.Order
		}
		c.UpdatedAt = now()
		category = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Reorder assigns orders 0..n-1 following categoryIDs. Ids that are unknown
// or belong to another vendor are ignored. It returns the vendor's categories
// in their new order.
func (s *CategoryStore) Reorder(ctx context.Context, vendorID string, categoryIDs []string) ([]model.Category, error) {
	if vendorID == "" {
		return nil, invalid("vendorId is required")
	}

	var categories []model.Category
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		t := now()
		for order, id := range categoryIDs {
			i := indexOf(doc.Categories, func(c *model.Category) bool { return c.ID == id && c.VendorID == vendorID })
			if i == -1 {
				continue
			}
			doc.Categories[i].Order = order
			doc.Categories[i].UpdatedAt = t
		}
		for _, c := range doc.Categories {
			if c.VendorID == vendorID {
				categories = append(categories, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortCategories(categories)
	return categories, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Categories, func(c *model.Category) bool { return c.ID == id })
		if i == -1 {
			return notFound("category", id)
		}
		doc.Categories = append(doc.Categories[:i], doc.Categories[i+1:]...)
		return nil
	})
}
