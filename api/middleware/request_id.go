package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ImAlagar/zohra-admin-core/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Honor a caller-supplied id only when it is a real UUID; anything
			// else is replaced so log correlation keys stay well-formed.
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if _, err := uuid.Parse(reqID); err != nil {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
