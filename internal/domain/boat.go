package domain

// Boat represents a customer boat referenced by reservations and waitlist entries
type Boat struct {
	ID       int64
	UserID   int64
	Name     string
	LengthFt int
}
