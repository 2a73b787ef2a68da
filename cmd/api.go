package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"roadside/infra"
	_middleware "roadside/infra/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

func NewServer(container *infra.ContainerDI) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(container.Metrics.Middleware)
	e.Use(_middleware.RequestLogger(container.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: container.Config.CorsAllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "apikey", "x-client-info"},
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
	}))

	e.GET("/metrics", echo.WrapHandler(container.Metrics.Handler()))
	e.GET("/health", container.HandlerHealth.HealthHandler)

	e.POST("/webhooks/cancellation", container.HandlerCancellation.NotifyCancellationHandler,
		_middleware.CheckWebhookSecret(container.Config.DBWebhookSecret))
	e.POST("/webhooks/paymongo", container.HandlerPayment.PaymongoWebhookHandler)

	e.POST("/payment-sources", container.HandlerPaymentSource.CreatePaymentSourceHandler,
		_middleware.WildcardOrigin(container.Config.CorsAllowedOrigins))

	return e
}

// StartAPI serves until ctx is cancelled, then drains in-flight requests.
func StartAPI(ctx context.Context, container *infra.ContainerDI) error {
	e := NewServer(container)
	log := container.Logger

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", container.Config.ServerPort).Msg("http server listening")
		if err := e.Start(container.Config.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
