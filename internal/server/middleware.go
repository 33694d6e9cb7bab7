package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/auth"
	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

// requestLogger logs one line per request once the handler has finished.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []zap.Field{
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_addr", r.RemoteAddr),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Warn("HTTP request", fields...)
			return
		}
		s.logger.Info("HTTP request", fields...)
	})
}

// authenticate resolves the bearer token to a user and stores it on the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			s.handleError(w, r, err, "Failed to authenticate")
			return
		}
		user, err := s.authService.Authenticate(r.Context(), token)
		if err != nil {
			s.handleError(w, r, err, "Failed to authenticate")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			respondWithError(w, http.StatusForbidden, domain.ErrForbidden.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser is only called behind authenticate.
func currentUser(r *http.Request) (*domain.User, error) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		return nil, errors.Wrap(domain.ErrUnauthorized, "no user on request context")
	}
	return user, nil
}
