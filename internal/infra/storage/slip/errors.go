package slip

import "errors"

var (
	// ErrSlipNotFound возвращается, когда слип не найден
	ErrSlipNotFound = errors.New("slip.repository: slip not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slip.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slip.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slip.repository: failed to scan row")
)
