package find_available_slips

import (
	"fmt"
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BoatID <= 0 {
		return fmt.Errorf("%w: boatID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if !domain.IsSupportedSlipSize(req.RequestedSize) {
		return fmt.Errorf("%w: size %d is not a supported tier", ErrUnsupportedSize, req.RequestedSize)
	}

	if isDateInPast(req.StartDate, now) {
		return ErrStartDateInPast
	}

	if daysBetween(req.StartDate, req.EndDate) < domain.MinBookingDays {
		return fmt.Errorf("%w: minimum duration is %d days", ErrDurationTooShort, domain.MinBookingDays)
	}

	return nil
}

// requiredSize возвращает итоговый требуемый размер слипа:
// максимум из выбранного клиентом класса и фактической длины лодки
// Закрывает кейс, когда клиент выбирает класс меньше своей лодки
func requiredSize(requestedSize int, boat *domain.Boat) int {
	if boat.LengthFt > requestedSize {
		return boat.LengthFt
	}
	return requestedSize
}

// daysBetween возвращает количество дней между двумя датами
func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
