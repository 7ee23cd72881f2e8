package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tair/wordbook/pkg/logger"
)

// SessionCookie names the cookie that keys a browser's quiz sample
const SessionCookie = "wordbook_session"

// SessionMiddleware makes sure every request carries a session id. A
// missing or malformed cookie is replaced with a fresh one.
func SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}

		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			logger.Debug(r.Context()).Str("session_id", id).Msg("Started new session")
		}

		ctx := logger.ContextWithSession(r.Context(), id)
		next(w, r.WithContext(ctx))
	}
}

func sessionID(ctx context.Context) string {
	return logger.SessionFromContext(ctx)
}
