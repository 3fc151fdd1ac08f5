package listing

import "time"

type CreateListingRequest struct {
	Title         string    `json:"title" validate:"required"`
	Description   string    `json:"description"`
	PropertyType  string    `json:"property_type" validate:"required"`
	Category      string    `json:"category"`
	PriceAmount   float64   `json:"price_amount" validate:"required,gte=0"`
	DepositAmount float64   `json:"deposit_amount" validate:"gte=0"`
	Currency      string    `json:"currency"`
	City          string    `json:"city" validate:"required"`
	District      string    `json:"district" validate:"required"`
	FullAddress   string    `json:"full_address" validate:"required"`
	Latitude      *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Area          *float64  `json:"area"`
	RoomCount     *int      `json:"room_count"`
	Furnished     bool      `json:"furnished"`
	Amenities     []string  `json:"amenities"`
	AvailableFrom time.Time `json:"available_from"`
}

type UpdateListingRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Category      *string    `json:"category"`
	PriceAmount   *float64   `json:"price_amount"`
	DepositAmount *float64   `json:"deposit_amount"`
	Area          *float64   `json:"area"`
	RoomCount     *int       `json:"room_count"`
	Furnished     *bool      `json:"furnished"`
	Amenities     *[]string  `json:"amenities"`
	AvailableFrom *time.Time `json:"available_from"`
}

type AddPhotoRequest struct {
	URL string `json:"url" binding:"required"`
}

type SearchResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}
