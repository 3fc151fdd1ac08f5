package payment

type CreatePaymentRequest struct {
	ReservationID int64  `json:"reservation_id" binding:"required"`
	Method        string `json:"method" binding:"required"`
	Kind          string `json:"kind" binding:"required"`
}

type FailPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
