package cancel_reservation

import (
	"github.com/m04kA/Marina-SlipService/internal/domain"
	"github.com/m04kA/Marina-SlipService/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
// Пароль обязателен для владельца; сотрудник отменяет без него
type CancelReservationRequest struct {
	Password string `json:"password,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(actor domain.ActorContext) *models.CancelRequest {
	return &models.CancelRequest{
		Actor:    actor,
		Password: r.Password,
	}
}
