package models

import (
	"errors"
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// CheckInRequest запрос на заселение
type CheckInRequest struct {
	Actor domain.ActorContext `json:"-"`
}

// CompleteRequest запрос на завершение бронирования
type CompleteRequest struct {
	Actor domain.ActorContext `json:"-"`
}

// CancelRequest запрос на отмену бронирования
// Для владельца обязателен повторный ввод пароля
type CancelRequest struct {
	Actor    domain.ActorContext `json:"-"`
	Password string              `json:"password,omitempty"`
}

// RecordPaymentRequest запрос на запись платежа по бронированию
type RecordPaymentRequest struct {
	Actor      domain.ActorContext `json:"-"`
	Amount     float64             `json:"amount"`
	Method     string              `json:"method"`
	CardSuffix string              `json:"cardSuffix,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"userId"`
	BoatID             int64   `json:"boatId"`
	SlipID             int64   `json:"slipId"`
	StartDate          string  `json:"startDate"` // "2026-05-01"
	EndDate            string  `json:"endDate"`
	Status             string  `json:"status"`
	Months             int     `json:"months"`
	TotalCost          float64 `json:"totalCost"`
	ConfirmationNumber string  `json:"confirmationNumber"`

	CheckedInAt *string `json:"checkedInAt,omitempty"` // ISO 8601 format
	CheckedInBy *int64  `json:"checkedInBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// PaymentResponse ответ с данными записанного платежа
type PaymentResponse struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservationId"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	CardSuffix    string    `json:"cardSuffix,omitempty"`
	RecordedBy    int64     `json:"recordedBy"`
	RecordedAt    time.Time `json:"recordedAt"`
}

// SweepResponse ответ служебной операции массового завершения
type SweepResponse struct {
	CompletedCount int64 `json:"completedCount"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		BoatID:             r.BoatID,
		SlipID:             r.SlipID,
		StartDate:          r.StartDate.Format(domain.DateFormat),
		EndDate:            r.EndDate.Format(domain.DateFormat),
		Status:             string(r.Status),
		Months:             r.Months,
		TotalCost:          r.TotalCost,
		ConfirmationNumber: r.ConfirmationNumber,
		CheckedInBy:        r.CheckedInBy,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CheckedInAt != nil {
		checkedInStr := r.CheckedInAt.Format(time.RFC3339)
		resp.CheckedInAt = &checkedInStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if r := FromDomainReservation(reservation); r != nil {
			resp.Reservations[i] = *r
		}
	}

	return resp
}

// FromDomainPayment конвертирует domain модель платежа в DTO
func FromDomainPayment(p *domain.PaymentRecord) *PaymentResponse {
	if p == nil {
		return nil
	}

	cardSuffix := ""
	if p.CardSuffix != nil {
		cardSuffix = *p.CardSuffix
	}

	return &PaymentResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        p.Method,
		CardSuffix:    cardSuffix,
		RecordedBy:    p.RecordedBy,
		RecordedAt:    p.RecordedAt,
	}
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusConfirmed,
		domain.StatusCheckedIn,
		domain.StatusCompleted,
		domain.StatusCanceled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
