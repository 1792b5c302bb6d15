package join_waitlist

import (
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	"github.com/m04kA/Marina-SlipService/internal/service/waitlist/models"
)

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	BoatID        int64  `json:"boatId"`
	PreferredSize int    `json:"preferredSize"`
	StartDate     string `json:"startDate"` // "2026-05-01"
	EndDate       string `json:"endDate"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *JoinWaitlistRequest) ToServiceRequest(actor domain.ActorContext) (*models.JoinWaitlistRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &models.JoinWaitlistRequest{
		Actor:         actor,
		BoatID:        r.BoatID,
		PreferredSize: r.PreferredSize,
		StartDate:     startDate,
		EndDate:       endDate,
	}, nil
}
