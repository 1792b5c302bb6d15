package get_available_slips

import (
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	findAvailableSlips "github.com/m04kA/Marina-SlipService/internal/usecase/find_available_slips"
)

// SlipAvailabilityResponse доступность одного слипа в HTTP ответе
type SlipAvailabilityResponse struct {
	SlipID       int64  `json:"slipId"`
	SizeClass    int    `json:"sizeClass"`
	LocationCode string `json:"locationCode"`
	IsAvailable  bool   `json:"isAvailable"`
}

// AvailableSlipsResponse HTTP ответ поиска доступных слипов
type AvailableSlipsResponse struct {
	RequiredSize int                        `json:"requiredSize"`
	Slips        []SlipAvailabilityResponse `json:"slips"`
}

// ToUseCaseRequest собирает запрос use case из параметров HTTP запроса
func ToUseCaseRequest(userID, boatID int64, requestedSize int, startDateStr, endDateStr string) (*findAvailableSlips.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		return nil, err
	}

	return &findAvailableSlips.Request{
		UserID:        userID,
		BoatID:        boatID,
		RequestedSize: requestedSize,
		StartDate:     startDate,
		EndDate:       endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *findAvailableSlips.Response) *AvailableSlipsResponse {
	slips := make([]SlipAvailabilityResponse, len(resp.Slips))
	for i, s := range resp.Slips {
		slips[i] = SlipAvailabilityResponse{
			SlipID:       s.SlipID,
			SizeClass:    s.SizeClass,
			LocationCode: s.LocationCode,
			IsAvailable:  s.IsAvailable,
		}
	}

	return &AvailableSlipsResponse{
		RequiredSize: resp.RequiredSize,
		Slips:        slips,
	}
}
