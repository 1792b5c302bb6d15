package get_user_waitlist

import (
	"context"

	"github.com/m04kA/Marina-SlipService/internal/service/waitlist/models"
)

type WaitlistService interface {
	GetUserEntries(ctx context.Context, userID int64) (*models.WaitlistEntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
