package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCheckedIn ReservationStatus = "checked_in"
	StatusCompleted ReservationStatus = "completed"
	StatusCanceled  ReservationStatus = "canceled"
)

// ActiveStatuses статусы, при которых бронирование удерживает слип
// Используется при проверке пересечений дат
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusCheckedIn,
}

// Reservation represents a slip reservation
// Бронирования никогда не удаляются физически - отмена меняет только статус
type Reservation struct {
	ID     int64
	UserID int64
	BoatID int64
	SlipID int64

	StartDate time.Time
	EndDate   time.Time
	Status    ReservationStatus

	// Derived data, cached at confirmation time
	Months             int
	TotalCost          float64
	ConfirmationNumber string

	CheckedInAt *time.Time
	CheckedInBy *int64

	LastModifiedBy *int64
	LastModifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation currently holds its slip
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed || r.Status == StatusCheckedIn
}

// IsTerminal returns true if no further transition is possible
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCanceled
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed || r.Status == StatusCheckedIn
}

// CanBeEdited returns true if dates/slip/boat of the reservation can still change
func (r *Reservation) CanBeEdited() bool {
	return r.Status == StatusConfirmed
}

// WithinCheckInWindow проверяет, что текущий момент попадает в окно заселения:
// не раньше и не позже CheckInWindowHours от даты начала
func (r *Reservation) WithinCheckInWindow(now time.Time) bool {
	window := time.Duration(CheckInWindowHours) * time.Hour
	diff := now.Sub(r.StartDate)
	if diff < 0 {
		diff = -diff
	}
	return diff <= window
}

// EligibleForSelfCompletion проверяет, что владелец может завершить бронирование сам:
// статус checked_in и с момента заселения прошло не меньше SelfCompletionAfterDays дней
func (r *Reservation) EligibleForSelfCompletion(now time.Time) bool {
	if r.Status != StatusCheckedIn || r.CheckedInAt == nil {
		return false
	}
	minStay := time.Duration(SelfCompletionAfterDays) * 24 * time.Hour
	return now.Sub(*r.CheckedInAt) >= minStay
}

// Overlaps проверяет пересечение бронирования с интервалом [start, end]
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(r.StartDate, r.EndDate, start, end)
}

// IntervalsOverlap проверяет пересечение двух интервалов дат [s1,e1] и [s2,e2]
// Интервалы пересекаются, если s1 <= e2 И s2 <= e1
// Совпадение границ считается пересечением: слип освобождается только на следующий день
func IntervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}
