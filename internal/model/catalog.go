package model

import "time"

type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Category belongs to a vendor. Order is unique within the vendor's categories
// and drives the aisle order on the shopping list.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	VendorID  string    `json:"vendorId"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product is a purchasable item. A nil CategoryID means uncategorized, a nil
// FreshnessDays means the product's shelf life is not tracked.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CategoryID    *string   `json:"categoryId"`
	DefaultUnit   *string   `json:"defaultUnit"`
	FreshnessDays *int      `json:"freshnessDays"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductView is a product enriched with its category and vendor display fields.
type ProductView struct {
	Product
	CategoryName *string `json:"categoryName"`
	VendorName   *string `json:"vendorName"`
	VendorColor  *string `json:"vendorColor"`
}
