package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/BikeRepair-BookingService/internal/api/handlers"
	"github.com/m04kA/BikeRepair-BookingService/internal/integrations/userservice"
)

const msgStaffOnly = "staff access required"

// UserGetter источник данных пользователя
type UserGetter interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StaffOnly пропускает только сотрудников мастерской. Должен стоять после Auth.
func StaffOnly(users UserGetter, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, userservice.ErrUserNotFound) {
					log.Warn("StaffOnly: user=%d not found", userID)
					handlers.RespondForbidden(w, msgStaffOnly)
					return
				}
				log.Error("StaffOnly: failed to get user=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			if !user.IsStaff {
				log.Warn("StaffOnly: user=%d is not staff, %s %s denied", userID, r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgStaffOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
