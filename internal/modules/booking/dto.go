package booking

import "time"

type CreateReservationRequest struct {
	ListingID     int64     `json:"listing_id" binding:"required"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	OccupantCount int       `json:"occupant_count" binding:"required,min=1"`
	Message       string    `json:"message"`
}

type UpdateDatesRequest struct {
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}
