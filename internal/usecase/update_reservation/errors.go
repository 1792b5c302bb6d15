package update_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда инициатор не владелец и не сотрудник
	ErrAccessDenied = errors.New("update_reservation: access denied")

	// ErrNotEditable возвращается, когда бронирование уже нельзя редактировать
	ErrNotEditable = errors.New("update_reservation: reservation can no longer be edited")

	// ErrDurationTooShort возвращается, когда новая длительность меньше минимальной
	ErrDurationTooShort = errors.New("update_reservation: booking duration is too short")

	// ErrBoatNotFound возвращается, когда новая лодка не найдена
	ErrBoatNotFound = errors.New("update_reservation: boat not found")

	// ErrBoatNotOwned возвращается, когда новая лодка принадлежит другому пользователю
	ErrBoatNotOwned = errors.New("update_reservation: boat is owned by another user")

	// ErrSlipNotFound возвращается, когда новый слип не найден
	ErrSlipNotFound = errors.New("update_reservation: slip not found")

	// ErrSlipOutOfService возвращается, когда новый слип выведен из эксплуатации
	ErrSlipOutOfService = errors.New("update_reservation: slip is out of service")

	// ErrSlipTooSmall возвращается, когда слип меньше длины лодки
	ErrSlipTooSmall = errors.New("update_reservation: slip is too small for this boat")

	// ErrSlipConflict возвращается, когда новый интервал/слип пересекается с другим бронированием
	// Редактирование отклоняется целиком, частичной записи не происходит
	ErrSlipConflict = errors.New("update_reservation: proposed slip/interval conflicts with another reservation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
