package domain

import "time"

// PaymentRecord represents a payment recorded against a reservation
// Движок бронирований использует только факт наличия платежей (count),
// детали нужны внешнему биллингу
type PaymentRecord struct {
	ID            int64
	ReservationID int64
	Amount        float64
	Method        string
	CardSuffix    *string
	RecordedBy    int64
	RecordedAt    time.Time
}
