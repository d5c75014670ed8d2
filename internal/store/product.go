package store

import (
	"context"
	"strings"

	"github.com/dukerupert/schompf/internal/model"
)

type ProductInput struct {
	Name          *string                `json:"name" validate:"omitempty,max=200"`
	CategoryID    model.Nullable[string] `json:"categoryId"`
	DefaultUnit   model.Nullable[string] `json:"defaultUnit"`
	FreshnessDays *int                   `json:"freshnessDays" validate:"omitempty,min=0,max=3650"`
}

// ProductFilter narrows List. Search matches a case-insensitive substring of the name.
type ProductFilter struct {
	CategoryID string
	Search     string
}

type ProductStore struct {
	docs *Store
}

func NewProductStore(docs *Store) *ProductStore {
	return &ProductStore{docs: docs}
}

func enrichProduct(doc *model.Document, p model.Product) model.ProductView {
	view := model.ProductView{Product: p}
	if p.CategoryID == nil {
		return view
	}
	c, ok := doc.Category(*p.CategoryID)
	if !ok {
		return view
	}
	view.CategoryName = &c.Name
	if v, ok := doc.Vendor(c.VendorID); ok {
		view.VendorName = &v.Name
		view.VendorColor = &v.Color
	}
	return view
}

func (s *ProductStore) List(ctx context.Context, f ProductFilter) ([]model.ProductView, error) {
	products := []model.ProductView{}
	search := strings.ToLower(f.Search)
	err := s.docs.View(ctx, func(doc *model.Document) error {
		for _, p := range doc.Products {
			if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			products = append(products, enrichProduct(doc, p))
		}
		return nil
	})
	return products, err
}

func (s *ProductStore) Get(ctx context.Context, id string) (*model.ProductView, error) {
	var view model.ProductView
	err := s.docs.View(ctx, func(doc *model.Document) error {
		p, ok := doc.Product(id)
		if !ok {
			return notFound("product", id)
		}
		view = enrichProduct(doc, *p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func checkCategory(doc *model.Document, id *string) error {
	if id == nil {
		return nil
	}
	if _, ok := doc.Category(*id); !ok {
		return invalid("category %q does not exist", *id)
	}
	return nil
}

// Create adds a product. Without freshnessDays the settings default applies.
func (s *ProductStore) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	name, err := requiredName(in.Name, "name")
	if err != nil {
		return nil, err
	}

	var product model.Product
	err = s.docs.Update(ctx, func(doc *model.Document) error {
		categoryID := emptyToNil(in.CategoryID.Value)
		if err := checkCategory(doc, categoryID); err != nil {
			return err
		}

		freshness := in.FreshnessDays
		if freshness == nil {
			freshness = doc.CurrentSettings().DefaultFreshnessDays
		}

		t := now()
		product = model.Product{
			ID:            newID(),
			Name:          name,
			CategoryID:    categoryID,
			DefaultUnit:   emptyToNil(in.DefaultUnit.Value),
			FreshnessDays: freshness,
			CreatedAt:     t,
			UpdatedAt:     t,
		}
		doc.Products = append(doc.Products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductStore) Update(ctx context.Context, id string, in ProductInput) (*model.Product, error) {
	var product model.Product
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		p, ok := doc.Product(id)
		if !ok {
			return notFound("product", id)
		}
		if in.CategoryID.Set {
			categoryID := emptyToNil(in.CategoryID.Value)
			if err := checkCategory(doc, categoryID); err != nil {
				return err
			}
			p.CategoryID = categoryID
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return invalid("name must not be empty")
			}
			p.Name = name
		}
		if in.DefaultUnit.Set {
			p.DefaultUnit = emptyToNil(in.DefaultUnit.Value)
		}
		if in.FreshnessDays != nil {
			p.FreshnessDays = in.FreshnessDays
		}
		p.UpdatedAt = now()
		product = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Products, func(p *model.Product) bool { return p.ID == id })
		if i == -1 {
			return notFound("product", id)
		}
		doc.Products = append(doc.Products[:i], doc.Products[i+1:]...)
		return nil
	})
}
