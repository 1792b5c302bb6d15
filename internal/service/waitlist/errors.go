package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist entry not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadyRemoved возвращается при повторной отмене записи
	ErrAlreadyRemoved = errors.New("waitlist entry is already removed")

	// ErrBoatNotFound возвращается, когда лодка не найдена
	ErrBoatNotFound = errors.New("boat not found")

	// ErrBoatNotOwned возвращается, когда лодка принадлежит другому пользователю
	ErrBoatNotOwned = errors.New("boat is owned by another user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
