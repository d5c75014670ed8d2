package store

import (
	"context"
	"strings"

	"github.com/dukerupert/schompf/internal/model"
)

const defaultVendorColor = "#10B981"

type VendorInput struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

type VendorStore struct {
	docs *Store
}

func NewVendorStore(docs *Store) *VendorStore {
	return &VendorStore{docs: docs}
}

func (s *VendorStore) List(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := s.docs.View(ctx, func(doc *model.Document) error {
		vendors = append([]model.Vendor{}, doc.Vendors...)
		return nil
	})
	return vendors, err
}

func (s *VendorStore) Get(ctx context.Context, id string) (*model.Vendor, error) {
	var vendor model.Vendor
	err := s.docs.View(ctx, func(doc *model.Document) error {
		v, ok := doc.Vendor(id)
		if !ok {
			return notFound("vendor", id)
		}
		vendor = *v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (s *VendorStore) Create(ctx context.Context, in VendorInput) (*model.Vendor, error) {
	name, err := requiredName(in.Name, "name")
	if err != nil {
		return nil, err
	}
	color := defaultVendorColor
	if in.Color != nil && *in.Color != "" {
		color = *in.Color
	}

	t := now()
	vendor := model.Vendor{ID: newID(), Name: name, Color: color, CreatedAt: t, UpdatedAt: t}
	err = s.docs.Update(ctx, func(doc *model.Document) error {
		doc.Vendors = append(doc.Vendors, vendor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (s *VendorStore) Update(ctx context.Context, id string, in VendorInput) (*model.Vendor, error) {
	var vendor model.Vendor
	err := s.docs.Update(ctx, func(doc *model.Document) error {
		v, ok := doc.Vendor(id)
		if !ok {
			return notFound("vendor", id)
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return invalid("name must not be empty")
			}
			v.Name = name
		}
		if in.Color != nil && *in.Color != "" {
			v.Color = *in.Color
		}
		v.UpdatedAt = now()
		vendor = *v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (s *VendorStore) Delete(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Vendors, func(v *model.Vendor) bool { return v.ID == id })
		if i == -1 {
			return notFound("vendor", id)
		}
		doc.Vendors = append(doc.Vendors[:i], doc.Vendors[i+1:]...)
		return nil
	})
}
