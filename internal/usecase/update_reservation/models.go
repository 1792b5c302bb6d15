package update_reservation

import (
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
)

// Request - запрос на редактирование подтверждённого бронирования.
// Поля-указатели nil означают "оставить без изменений".
type Request struct {
	ReservationID int64
	Actor         domain.ActorContext
	NewBoatID     *int64
	NewSlipID     *int64
	NewStartDate  *time.Time
	NewEndDate    *time.Time
}

// Response - обновлённое бронирование с пересчитанной стоимостью
type Response struct {
	ReservationID      int64   `json:"reservation_id"`
	BoatID             int64   `json:"boat_id"`
	SlipID             int64   `json:"slip_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	Status             string  `json:"status"`
	Months             int     `json:"months"`
	BaseCost           float64 `json:"base_cost"`
	ElectricHookupCost float64 `json:"electric_hookup_cost"`
	TotalCost          float64 `json:"total_cost"`
	ConfirmationNumber string  `json:"confirmation_number"`
}
