package complete_reservation

import (
	"context"

	"github.com/m04kA/Marina-SlipService/internal/service/reservations/models"
)

type ReservationService interface {
	Complete(ctx context.Context, reservationID int64, req *models.CompleteRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
