package get_waitlist_queue

import (
	"context"

	"github.com/m04kA/Marina-SlipService/internal/domain"
	"github.com/m04kA/Marina-SlipService/internal/service/waitlist/models"
)

type WaitlistService interface {
	GetQueue(ctx context.Context, actor domain.ActorContext) (*models.WaitlistEntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
