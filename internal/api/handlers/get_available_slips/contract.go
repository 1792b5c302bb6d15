package get_available_slips

import (
	"context"

	findAvailableSlips "github.com/m04kA/Marina-SlipService/internal/usecase/find_available_slips"
)

type FindAvailableSlipsUseCase interface {
	Execute(ctx context.Context, req *findAvailableSlips.Request) (*findAvailableSlips.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
