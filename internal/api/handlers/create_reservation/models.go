package create_reservation

import (
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	createReservation "github.com/m04kA/Marina-SlipService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	BoatID        int64  `json:"boatId"`
	RequestedSize int    `json:"requestedSize"`
	StartDate     string `json:"startDate"` // "2026-05-01"
	EndDate       string `json:"endDate"`
	ChosenSlipID  *int64 `json:"chosenSlipId,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	ID                 int64   `json:"id"`
	UserID             int64   `json:"userId"`
	BoatID             int64   `json:"boatId"`
	SlipID             int64   `json:"slipId"`
	SlipLocationCode   string  `json:"slipLocationCode"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	Status             string  `json:"status"`
	ConfirmationNumber string  `json:"confirmationNumber"`
	Months             int     `json:"months"`
	BaseCost           float64 `json:"baseCost"`
	ElectricHookupCost float64 `json:"electricHookupCost"`
	TotalCost          float64 `json:"totalCost"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:        userID,
		BoatID:        r.BoatID,
		RequestedSize: r.RequestedSize,
		StartDate:     startDate,
		EndDate:       endDate,
		ChosenSlipID:  r.ChosenSlipID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		ID:                 resp.ID,
		UserID:             resp.UserID,
		BoatID:             resp.BoatID,
		SlipID:             resp.SlipID,
		SlipLocationCode:   resp.SlipLocationCode,
		StartDate:          resp.StartDate.Format(domain.DateFormat),
		EndDate:            resp.EndDate.Format(domain.DateFormat),
		Status:             resp.Status,
		ConfirmationNumber: resp.ConfirmationNumber,
		Months:             resp.Months,
		BaseCost:           resp.BaseCost,
		ElectricHookupCost: resp.Hookup,
		TotalCost:          resp.TotalCost,
		CreatedAt:          resp.CreatedAt,
		UpdatedAt:          resp.UpdatedAt,
	}
}
