package model

import (
	"sort"
	"strings"
)

// Document is the whole persisted state. It is always read and written as a unit.
type Document struct {
	Dishes       []Dish        `json:"dishes"`
	Products     []Product     `json:"products"`
	Vendors      []Vendor      `json:"vendors"`
	Categories   []Category    `json:"categories"`
	Meals        []Meal        `json:"meals"`
	Settings     *Settings     `json:"settings"`
	ShoppingList *ShoppingList `json:"shoppingList"`
}

// NewDocument returns an empty document with default settings.
func NewDocument() *Document {
	settings := DefaultSettings()
	return &Document{
		Dishes:     []Dish{},
		Products:   []Product{},
		Vendors:    []Vendor{},
		Categories: []Category{},
		Meals:      []Meal{},
		Settings:   &settings,
	}
}

// EnsureDefaults fills in collections and settings missing from an older file.
// It reports whether anything changed.
func (d *Document) EnsureDefaults() bool {
	changed := false
	if d.Dishes == nil {
		d.Dishes = []Dish{}
		changed = true
	}
	if d.Products == nil {
		d.Products = []Product{}
		changed = true
	}
	if d.Vendors == nil {
		d.Vendors = []Vendor{}
		changed = true
	}
	if d.Categories == nil {
		d.Categories = []Category{}
		changed = true
	}
	if d.Meals == nil {
		d.Meals = []Meal{}
		changed = true
	}
	if d.Settings == nil {
		s := DefaultSettings()
		d.Settings = &s
		changed = true
	}
	return changed
}

func (d *Document) Dish(id string) (*Dish, bool) {
	for i := range d.Dishes {
		if d.Dishes[i].ID == id {
			return &d.Dishes[i], true
		}
	}
	return nil, false
}

func (d *Document) Product(id string) (*Product, bool) {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return &d.Products[i], true
		}
	}
	return nil, false
}

// ProductByName matches case-insensitively.
func (d *Document) ProductByName(name string) (*Product, bool) {
	for i := range d.Products {
		if strings.EqualFold(d.Products[i].Name, name) {
			return &d.Products[i], true
		}
	}
	return nil, false
}

func (d *Document) Category(id string) (*Category, bool) {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return &d.Categories[i], true
		}
	}
	return nil, false
}

func (d *Document) Vendor(id string) (*Vendor, bool) {
	for i := range d.Vendors {
		if d.Vendors[i].ID == id {
			return &d.Vendors[i], true
		}
	}
	return nil, false
}

func (d *Document) Meal(id string) (*Meal, bool) {
	for i := range d.Meals {
		if d.Meals[i].ID == id {
			return &d.Meals[i], true
		}
	}
	return nil, false
}

// CurrentSettings returns the stored settings, or the defaults if none are stored.
func (d *Document) CurrentSettings() Settings {
	if d.Settings == nil {
		return DefaultSettings()
	}
	return *d.Settings
}

// MealsInRange returns meals with from <= date <= to, compared as ISO date
// strings, ordered by date and slot order.
func (d *Document) MealsInRange(from, to string) []Meal {
	var meals []Meal
	for _, m := range d.Meals {
		if from != "" && m.Date < from {
			continue
		}
		if to != "" && m.Date > to {
			continue
		}
		meals = append(meals, m)
	}
	sort.SliceStable(meals, func(i, j int) bool {
		if meals[i].Date != meals[j].Date {
			return meals[i].Date < meals[j].Date
		}
		return meals[i].SlotOrder < meals[j].SlotOrder
	})
	return meals
}
