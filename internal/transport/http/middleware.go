package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/auth"
)

type contextKey string

// ContextKeyClaims holds the authenticated user's token claims.
const ContextKeyClaims contextKey = "claims"

// Middleware holds dependencies shared by the middleware functions.
type Middleware struct {
	Logger hclog.Logger
	Tokens *auth.TokenManager
}

func NewMiddleware(logger hclog.Logger, tokens *auth.TokenManager) *Middleware {
	return &Middleware{Logger: logger, Tokens: tokens}
}

// Logging logs every request with a generated request id.
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		m.Logger.Info("Incoming request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
		)

		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		m.Logger.Info("Completed request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
			"duration", time.Since(start),
		)
	})
}

// Authenticate verifies the bearer token and stores its claims in the
// request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeJSON(w, http.StatusUnauthorized,
				envelope{Status: false, Message: "missing bearer token"})
			return
		}

		claims, err := m.Tokens.Validate(token)
		if err != nil {
			writeError(w, m.Logger, err)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthorizeSelf rejects requests whose path userId differs from the
// authenticated user.
func (m *Middleware) AuthorizeSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(ContextKeyClaims).(*auth.Claims)
		if !ok {
			writeJSON(w, http.StatusUnauthorized,
				envelope{Status: false, Message: "missing bearer token"})
			return
		}

		if mux.Vars(r)["userId"] != claims.UserID {
			writeJSON(w, http.StatusForbidden,
				envelope{Status: false, Message: "not authorized for this user"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
