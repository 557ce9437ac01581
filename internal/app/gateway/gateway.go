package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/motion-gateway/internal/config"
	"github.com/magabrotheeeer/motion-gateway/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/motion-gateway/internal/services/auth"
	"github.com/magabrotheeeer/motion-gateway/internal/services/ingest"
	"github.com/magabrotheeeer/motion-gateway/internal/storage/memory"
	"github.com/magabrotheeeer/motion-gateway/internal/tsdb"
)

// App связывает HTTP-сервер шлюза с клиентом InfluxDB.
type App struct {
	server *http.Server
	logger *slog.Logger
	tsdb   *tsdb.Client
}

// New собирает приложение: заводит учетную запись, создает сервис токенов,
// подключается к InfluxDB и строит роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.gateway.New"

	users := memory.New()
	if err := users.RegisterUser(cfg.Username, cfg.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("account provisioned", slog.String("username", cfg.Username))

	jwtMaker, err := jwt.NewJWTMaker(cfg.JWTSecretKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tsdbClient, err := tsdb.InitClient(ctx, cfg.InfluxDB)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("influxdb is healthy", slog.String("host", cfg.InfluxHost), slog.String("bucket", cfg.InfluxBucket))

	authService := authservice.NewAuthService(users, jwtMaker)
	ingestService := ingest.NewService(authService, tsdbClient, cfg.InfluxBucket)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, ingestService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		tsdb:   tsdbClient,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер и закрывает клиент InfluxDB.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.tsdb.Close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.tsdb.Close()
		return err
	}
}
