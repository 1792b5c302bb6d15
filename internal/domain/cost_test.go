package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeCost(t *testing.T) {
	tests := []struct {
		name       string
		lengthFt   int
		start      string
		end        string
		wantMonths int
		wantBase   float64
		wantHookup float64
		wantTotal  float64
	}{
		{
			name:       "ровно 30 дней - один расчетный месяц",
			lengthFt:   34,
			start:      "2026-05-01",
			end:        "2026-05-31",
			wantMonths: 1,
			wantBase:   357.00,
			wantHookup: 10.50,
			wantTotal:  367.50,
		},
		{
			name:       "45 дней округляются вверх до двух месяцев",
			lengthFt:   34,
			start:      "2026-05-01",
			end:        "2026-06-15",
			wantMonths: 2,
			wantBase:   357.00,
			wantHookup: 10.50,
			wantTotal:  735.00,
		},
		{
			name:       "31 день - уже два месяца",
			lengthFt:   26,
			start:      "2026-05-01",
			end:        "2026-06-01",
			wantMonths: 2,
			wantBase:   273.00,
			wantHookup: 10.50,
			wantTotal:  567.00,
		},
		{
			name:       "60 дней - ровно два месяца",
			lengthFt:   40,
			start:      "2026-05-01",
			end:        "2026-06-30",
			wantMonths: 2,
			wantBase:   420.00,
			wantHookup: 10.50,
			wantTotal:  861.00,
		},
		{
			name:       "нулевая длительность дает защитный минимум в один месяц",
			lengthFt:   26,
			start:      "2026-05-01",
			end:        "2026-05-01",
			wantMonths: 1,
			wantBase:   273.00,
			wantHookup: 10.50,
			wantTotal:  283.50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCost(tt.lengthFt, date(tt.start), date(tt.end))

			assert.Equal(t, tt.wantMonths, got.Months)
			assert.InDelta(t, tt.wantBase, got.Base, 0.001)
			assert.InDelta(t, tt.wantHookup, got.Hookup, 0.001)
			assert.InDelta(t, tt.wantTotal, got.Total, 0.001)
		})
	}
}

func TestComputeCost_Deterministic(t *testing.T) {
	start := date("2026-07-01")
	end := date("2026-07-31")

	first := ComputeCost(34, start, end)
	second := ComputeCost(34, start, end)

	assert.Equal(t, first, second)
}
