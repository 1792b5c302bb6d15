package record_payment

import (
	"github.com/m04kA/Marina-SlipService/internal/domain"
	"github.com/m04kA/Marina-SlipService/internal/service/reservations/models"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	Amount     float64 `json:"amount"`
	Method     string  `json:"method"`
	CardSuffix string  `json:"cardSuffix,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RecordPaymentRequest) ToServiceRequest(actor domain.ActorContext) *models.RecordPaymentRequest {
	return &models.RecordPaymentRequest{
		Actor:      actor,
		Amount:     r.Amount,
		Method:     r.Method,
		CardSuffix: r.CardSuffix,
	}
}
