package export_reservations

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/BikeRepair-BookingService/internal/domain"
)

type ReportService interface {
	Export(ctx context.Context, filter domain.ReservationFilter, w io.Writer) (int, error)
}

// TimeProvider источник текущего времени (для имени файла)
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
