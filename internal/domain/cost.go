package domain

import (
	"math"
	"time"
)

// CostBreakdown результат расчета стоимости бронирования
type CostBreakdown struct {
	Months int
	Base   float64
	Hookup float64
	Total  float64
}

// ComputeCost вычисляет стоимость аренды слипа для лодки указанной длины
// на интервал [start, end]
//
// months = max(1, ceil(days / 30)) - неполный месяц оплачивается целиком,
// нулевая или отрицательная длительность дает 1 месяц (защитный минимум)
// base   = length * RatePerFootPerMonth (за месяц)
// hookup = ElectricHookupPerMonth (за месяц)
// total  = round((base + hookup) * months, 2)
//
// Чистая функция без побочных эффектов; валидация входных данных
// выполняется вызывающей стороной до обращения сюда
func ComputeCost(boatLengthFt int, start, end time.Time) CostBreakdown {
	days := end.Sub(start).Hours() / 24

	months := int(math.Ceil(days / DaysPerBillingMonth))
	if months < 1 {
		months = 1
	}

	base := float64(boatLengthFt) * RatePerFootPerMonth
	hookup := ElectricHookupPerMonth
	total := roundMoney((base + hookup) * float64(months))

	return CostBreakdown{
		Months: months,
		Base:   base,
		Hookup: hookup,
		Total:  total,
	}
}

// roundMoney округляет сумму до двух знаков после запятой
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
