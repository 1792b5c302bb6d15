package domain

// SlipStatus represents the operational status of a slip
type SlipStatus string

const (
	SlipStatusActive       SlipStatus = "active"
	SlipStatusOutOfService SlipStatus = "out_of_service"
)

// Slip represents a physical docking resource
// SizeClass - максимальная длина лодки (в футах), на которую рассчитан слип
type Slip struct {
	ID           int64
	SizeClass    int
	LocationCode string
	Status       SlipStatus
}

// IsOperational returns true if the slip can accept reservations
func (s *Slip) IsOperational() bool {
	return s.Status != SlipStatusOutOfService
}

// CanHold returns true if a boat of the given length fits in the slip
func (s *Slip) CanHold(boatLengthFt int) bool {
	return s.SizeClass >= boatLengthFt
}
