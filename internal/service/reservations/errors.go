package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidCredential возвращается, когда повторно введенный пароль не подтвержден
	ErrInvalidCredential = errors.New("credential verification failed")

	// ErrNotConfirmed возвращается при попытке заселения не из статуса confirmed
	ErrNotConfirmed = errors.New("reservation is not in confirmed status")

	// ErrOutsideCheckInWindow возвращается при заселении вне окна ±24 часа от даты начала
	ErrOutsideCheckInWindow = errors.New("check-in is outside the allowed window")

	// ErrPaymentRequired возвращается при заселении без единого платежа
	// Заселение не ставится в очередь - клиенту явно сообщается о необходимости оплаты
	ErrPaymentRequired = errors.New("at least one payment must be recorded before check-in")

	// ErrNotCheckedIn возвращается при самостоятельном завершении не из статуса checked_in
	ErrNotCheckedIn = errors.New("reservation is not in checked_in status")

	// ErrCompletionTooEarly возвращается при самостоятельном завершении до истечения 30 дней
	ErrCompletionTooEarly = errors.New("reservation cannot be completed this early")

	// ErrAlreadyTerminal возвращается при переводе из терминального статуса
	ErrAlreadyTerminal = errors.New("reservation is already in a terminal status")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
