package find_available_slips

import "time"

// Request модель запроса поиска доступных слипов
type Request struct {
	UserID        int64     // ID пользователя
	BoatID        int64     // ID лодки, под которую ищется слип
	RequestedSize int       // Выбранный клиентом размерный класс
	StartDate     time.Time // Дата начала аренды (без времени)
	EndDate       time.Time // Дата окончания аренды (без времени)
}

// SlipAvailability доступность одного слипа на запрошенный интервал
type SlipAvailability struct {
	SlipID       int64
	SizeClass    int
	LocationCode string
	IsAvailable  bool
}

// Response модель ответа поиска доступных слипов
// Слипы упорядочены по размерному классу, затем по ID - порядок
// детерминирован и совпадает с порядком назначения first-fit
type Response struct {
	RequiredSize int                // Итоговый требуемый размер (max из класса и длины лодки)
	Slips        []SlipAvailability // Кандидаты с признаком доступности
}
