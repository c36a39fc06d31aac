package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"fitplan/internal/domain"
	"fitplan/internal/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const userContextKey contextKey = "user"

const (
	sessionCookie   = "session"
	requestIDHeader = "X-Request-ID"
)

func userFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey).(*domain.User)
	return u
}

// authMiddleware resolves the caller from the forward auth header, a bearer
// token or the session cookie, in that order.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.disableAuth {
			ctx := context.WithValue(r.Context(), userContextKey, &domain.User{ID: s.authUserID, Role: domain.RoleUser})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if remoteUser := r.Header.Get("Remote-User"); s.trustForwardAuth && remoteUser != "" {
			user, err := s.authSvc.ValidateForwardAuth(r.Context(), remoteUser)
			if err == nil && user != nil {
				ctx := context.WithValue(r.Context(), userContextKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		token := sessionToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}

		user, err := s.authSvc.ValidateSession(r.Context(), token, r.UserAgent())
		if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrSessionExpired) {
			writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionToken returns the bearer token if present, else the session cookie.
func sessionToken(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rw.statusCode,
			"duration":   time.Since(start).String(),
		}).Info("request")
	})
}

// PanicRecovery turns a handler panic into a 500 response.
func PanicRecovery(metricsManager *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					log.Errorf("http: panic serving %s: %v\n%s", r.URL.Path, err, debug.Stack())
					writeError(w, http.StatusInternalServerError, errors.New("internal error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func RequestMetrics(metricsManager *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if metricsManager == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			metricsManager.GaugeRequests.Inc()
			defer metricsManager.GaugeRequests.Dec()

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			metricsManager.HistRequestDuration.Observe(time.Since(start).Seconds())
			metricsManager.CounterRequests.WithLabelValues(r.Method, strconv.Itoa(rw.statusCode)).Inc()
		})
	}
}
