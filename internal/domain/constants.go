package domain

// Тарифы аренды слипа
const (
	// RatePerFootPerMonth ставка аренды за фут длины лодки в месяц
	RatePerFootPerMonth = 10.50

	// ElectricHookupPerMonth фиксированная плата за электроподключение в месяц
	ElectricHookupPerMonth = 10.50
)

// Business validation constants
const (
	// MinBookingDays минимальная длительность бронирования в днях
	MinBookingDays = 30

	// DaysPerBillingMonth количество дней в расчетном месяце
	DaysPerBillingMonth = 30

	// CheckInWindowHours окно заселения вокруг даты начала (в обе стороны)
	CheckInWindowHours = 24

	// SelfCompletionAfterDays минимальный срок с момента заселения,
	// после которого владелец может завершить бронирование сам
	SelfCompletionAfterDays = 30
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SupportedSlipSizes размерные классы слипов, доступные для выбора клиентом
var SupportedSlipSizes = []int{26, 40, 50}

// IsSupportedSlipSize проверяет, что размер входит в список поддерживаемых классов
func IsSupportedSlipSize(size int) bool {
	for _, s := range SupportedSlipSizes {
		if s == size {
			return true
		}
	}
	return false
}
