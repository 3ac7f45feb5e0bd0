package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "slotbook/pkg/errors"
	httputil "slotbook/pkg/http"
	"slotbook/pkg/logger"
)

// Required wraps an owner-scoped route. It resolves the bearer token
// against the auth provider once and threads the resulting Identity
// through the request context; handlers pass it on as an explicit
// argument, never re-reading any ambient session state.
func Required(provider Provider, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token := extractBearerToken(r)
			if token == "" {
				writeUnauthorized(w, log, "Missing bearer token")
				return
			}

			identity, err := provider.GetUser(r.Context(), token)
			if err != nil {
				if errors.Is(err, ErrInvalidToken) {
					writeUnauthorized(w, log, "Invalid or expired session")
					return
				}
				log.Error("Auth provider lookup failed", "error", err)
				if writeErr := httputil.WriteError(w, apperrors.Upstream("auth provider", err)); writeErr != nil {
					log.Error("failed to write error response", "middleware", "Required", "error", writeErr)
				}
				return
			}

			next(w, r.WithContext(WithIdentity(r.Context(), *identity)), ps)
		}
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeUnauthorized(w http.ResponseWriter, log *logger.Logger, msg string) {
	if err := httputil.WriteError(w, apperrors.Unauthorized(msg)); err != nil {
		log.Error("failed to write unauthorized response", "error", err)
	}
}
