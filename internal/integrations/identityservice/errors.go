package identityservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("identityservice: user not found")

	// ErrInvalidCredential возвращается, когда повторно введенный пароль не подтвержден
	ErrInvalidCredential = errors.New("identityservice: credential verification failed")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("identityservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice: internal error")
)
