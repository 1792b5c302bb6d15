package check_waitlist_eligibility

import (
	"context"

	"github.com/m04kA/Marina-SlipService/internal/service/waitlist/models"
)

type WaitlistService interface {
	CheckEligibility(ctx context.Context, entryID int64) (*models.EligibilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
