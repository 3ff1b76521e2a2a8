package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shiftbook/shiftbook/internal/config"
	"github.com/shiftbook/shiftbook/internal/metrics"
	"github.com/shiftbook/shiftbook/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	if cfg.API.RateLimit > 0 {
		limiter := rate.NewLimiter(rate.Limit(cfg.API.RateLimit), cfg.API.RateLimit*2)
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if !limiter.Allow() {
					http.Error(w, "too many requests", http.StatusTooManyRequests)
					return
				}
				next.ServeHTTP(w, req)
			})
		})
	}

	if cfg.Metrics.Enabled {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				start := time.Now()
				next.ServeHTTP(w, req)

				path := req.URL.Path
				if route := mux.CurrentRoute(req); route != nil {
					if template, err := route.GetPathTemplate(); err == nil {
						path = template
					}
				}
				metrics.ObserveRequest(req.Method, path, time.Since(start).Seconds())
			})
		})
	}

	// Propagate X-User-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			log.Debug("Propagating user ID header")

			userIdHeader := req.Header.Get("X-User-Id")
			ctx := req.Context()

			if userIdHeader != "" {
				u, err := deps.UserService.GetUserByUid(ctx, userIdHeader)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", userIdHeader)
						http.Error(w, "user not found", http.StatusForbidden)
						return
					} else {
						log.Errorf("failed to get user: %v", err)
						http.Error(w, err.Error(), http.StatusBadRequest)
						return
					}
				} else {
					log.Debugf("user found: %s", u.Uid)
					ctx = user.WithUser(ctx, u)
				}
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
