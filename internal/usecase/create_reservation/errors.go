package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrStartDateInPast возвращается, когда дата начала в прошлом
	ErrStartDateInPast = errors.New("create_reservation: start date is in the past")

	// ErrDurationTooShort возвращается, когда длительность меньше минимальной
	ErrDurationTooShort = errors.New("create_reservation: booking duration is too short")

	// ErrUnsupportedSize возвращается, когда запрошенный размер не входит в список классов
	ErrUnsupportedSize = errors.New("create_reservation: unsupported slip size")

	// ErrBoatNotFound возвращается, когда лодка не найдена
	ErrBoatNotFound = errors.New("create_reservation: boat not found")

	// ErrBoatNotOwned возвращается, когда лодка принадлежит другому пользователю
	ErrBoatNotOwned = errors.New("create_reservation: boat is owned by another user")

	// ErrSlipNotFound возвращается, когда выбранный слип не найден
	ErrSlipNotFound = errors.New("create_reservation: slip not found")

	// ErrSlipOutOfService возвращается, когда выбранный слип выведен из эксплуатации
	ErrSlipOutOfService = errors.New("create_reservation: slip is out of service")

	// ErrSlipTooSmall возвращается, когда выбранный слип меньше требуемого размера
	ErrSlipTooSmall = errors.New("create_reservation: slip is too small for this boat")

	// ErrSlipConflict возвращается, когда выбранный слип заняли между поиском и подтверждением
	// Слип НЕ подменяется молча - клиент выбирает другой сам
	ErrSlipConflict = errors.New("create_reservation: slip was just booked, choose another")

	// ErrNoSlipsAvailable возвращается, когда нет ни одного свободного слипа нужного размера
	ErrNoSlipsAvailable = errors.New("create_reservation: no slips available for the requested period")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
