package cancel_waitlist_entry

import (
	"context"

	"github.com/m04kA/Marina-SlipService/internal/service/waitlist/models"
)

type WaitlistService interface {
	Cancel(ctx context.Context, entryID int64, req *models.CancelEntryRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
