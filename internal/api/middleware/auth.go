package middleware

import (
	"context"
	"net/http"

	"github.com/uwoguessr/uwoguessr-server/internal/api/apierr"
	"github.com/uwoguessr/uwoguessr-server/internal/model"
	"github.com/uwoguessr/uwoguessr-server/internal/services/devicetoken"
)

// TokenHeader is the request header carrying the device token
const TokenHeader = "X-Device-Token"

type contextKey string

const deviceContextKey contextKey = "device"

// DeviceAuth creates middleware requiring a valid device token. The verified
// device id is placed on the request context.
func DeviceAuth(tokenService *devicetoken.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			deviceID, err := tokenService.Verify(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), deviceContextKey, deviceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetDeviceID returns the verified device id from the request context
func GetDeviceID(ctx context.Context) model.DeviceID {
	deviceID, _ := ctx.Value(deviceContextKey).(model.DeviceID)
	return deviceID
}

// MustGetDeviceID returns the verified device id or panics
func MustGetDeviceID(ctx context.Context) model.DeviceID {
	deviceID := GetDeviceID(ctx)
	if deviceID == "" {
		panic("no device id in context - auth middleware not applied?")
	}
	return deviceID
}
