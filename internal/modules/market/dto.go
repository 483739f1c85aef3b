package market

type CreateListingRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Currency    string  `json:"currency"`
	ImageURL    string  `json:"image_url"`
}

type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Currency    *string  `json:"currency"`
	ImageURL    *string  `json:"image_url"`
	Status      *string  `json:"status"`
}

type BrowseRequest struct {
	Category string  `form:"category"`
	MinPrice float64 `form:"min_price"`
	MaxPrice float64 `form:"max_price"`
	Query    string  `form:"q"`
	SellerID int64   `form:"seller_id"`
	Limit    int     `form:"limit"`
	Offset   int     `form:"offset"`
}
