// Package gateway собирает зависимости сервиса и регистрирует его маршруты.
package gateway

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/motion-gateway/docs"
	"github.com/magabrotheeeer/motion-gateway/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/motion-gateway/internal/http/handlers/health"
	"github.com/magabrotheeeer/motion-gateway/internal/http/handlers/ingest/writedata"
	"github.com/magabrotheeeer/motion-gateway/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService login.Service, ingestService writedata.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware,
	)

	r.Get("/health", health.New().ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)
	// Аутентификация выполняется внутри конвейера записи.
	r.Post("/write_data", writedata.New(logger, ingestService).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
