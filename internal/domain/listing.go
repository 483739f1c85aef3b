package domain

import "time"

type ListingStatus string

const (
	ListingActive ListingStatus = "active"
	ListingSold   ListingStatus = "sold"
	ListingHidden ListingStatus = "hidden"
)

type ListingCategory string

const (
	CategoryEquipment   ListingCategory = "equipment"
	CategoryApparel     ListingCategory = "apparel"
	CategorySupplements ListingCategory = "supplements"
	CategoryAccessories ListingCategory = "accessories"
	CategoryOther       ListingCategory = "other"
)

// Listing is a marketplace item offered by a user.
type Listing struct {
	ID          int64           `json:"id"`
	SellerID    int64           `json:"seller_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    ListingCategory `json:"category"`
	Price       float64         `json:"price"`
	Currency    string          `json:"currency"`
	ImageURL    string          `json:"image_url,omitempty"`
	Status      ListingStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
