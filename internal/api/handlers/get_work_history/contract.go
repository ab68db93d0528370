package get_work_history

import (
	"context"

	updateWorkHistory "github.com/m04kA/BikeRepair-BookingService/internal/usecase/update_work_history"
)

type WorkHistoryUseCase interface {
	GetOrCreate(ctx context.Context, reservationID int64) (*updateWorkHistory.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
