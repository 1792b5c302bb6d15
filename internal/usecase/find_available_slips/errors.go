package find_available_slips

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_available_slips: invalid input data")

	// ErrStartDateInPast возвращается, когда дата начала в прошлом
	ErrStartDateInPast = errors.New("find_available_slips: start date is in the past")

	// ErrDurationTooShort возвращается, когда длительность меньше минимальной
	ErrDurationTooShort = errors.New("find_available_slips: booking duration is too short")

	// ErrUnsupportedSize возвращается, когда запрошенный размер не входит в список классов
	ErrUnsupportedSize = errors.New("find_available_slips: unsupported slip size")

	// ErrBoatNotFound возвращается, когда лодка не найдена
	ErrBoatNotFound = errors.New("find_available_slips: boat not found")

	// ErrBoatNotOwned возвращается, когда лодка принадлежит другому пользователю
	ErrBoatNotOwned = errors.New("find_available_slips: boat is owned by another user")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_available_slips: internal error")
)
