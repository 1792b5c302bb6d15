package join_waitlist

import (
	"context"

	"github.com/m04kA/Marina-SlipService/internal/service/waitlist/models"
)

type WaitlistService interface {
	Join(ctx context.Context, req *models.JoinWaitlistRequest) (*models.WaitlistEntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
