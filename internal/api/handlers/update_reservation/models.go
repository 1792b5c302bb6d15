package update_reservation

import (
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	updateReservation "github.com/m04kA/Marina-SlipService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model
// Все поля опциональны - передаются только изменяемые
type UpdateReservationRequest struct {
	BoatID    *int64  `json:"boatId,omitempty"`
	SlipID    *int64  `json:"slipId,omitempty"`
	StartDate *string `json:"startDate,omitempty"` // "2026-05-01"
	EndDate   *string `json:"endDate,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID int64, actor domain.ActorContext) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		ReservationID: reservationID,
		Actor:         actor,
		NewBoatID:     r.BoatID,
		NewSlipID:     r.SlipID,
	}

	if r.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return nil, err
		}
		req.NewStartDate = &startDate
	}

	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, err
		}
		req.NewEndDate = &endDate
	}

	return req, nil
}
