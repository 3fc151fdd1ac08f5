package admin

import "renthub/internal/domain"

type RejectListingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type PendingListingsResponse struct {
	Listings []domain.Listing `json:"listings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type StatisticsResponse struct {
	TotalUsers        int64 `json:"total_users"`
	TotalListings     int64 `json:"total_listings"`
	TotalReservations int64 `json:"total_reservations"`
	PendingListings   int64 `json:"pending_listings"`
	TodayReservations int64 `json:"today_reservations"`
}
