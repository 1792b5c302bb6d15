package create_reservation

import "time"

// Request модель запроса подтверждения бронирования
type Request struct {
	UserID        int64     // ID пользователя
	BoatID        int64     // ID лодки
	RequestedSize int       // Выбранный клиентом размерный класс
	StartDate     time.Time // Дата начала аренды
	EndDate       time.Time // Дата окончания аренды
	ChosenSlipID  *int64    // Выбранный слип из результатов поиска (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                 int64
	UserID             int64
	BoatID             int64
	SlipID             int64
	SlipLocationCode   string
	StartDate          time.Time
	EndDate            time.Time
	Status             string
	ConfirmationNumber string

	// Расчет стоимости, закешированный в бронировании
	Months    int
	BaseCost  float64
	Hookup    float64
	TotalCost float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
