package cancellation

import (
	"encoding/json"
	"net/http"

	"roadside/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Handler struct {
	InterfaceService InterfaceService
	metrics          *metrics.Metrics
}

func NewCancellationHandler(service InterfaceService, m *metrics.Metrics) *Handler {
	return &Handler{InterfaceService: service, metrics: m}
}

// NotifyCancellationHandler receives service_requests change events and
// pushes a notification to the party that did not cancel. Every failure is
// answered with 500.
func (h *Handler) NotifyCancellationHandler(c echo.Context) error {
	ctx := c.Request().Context()
	logger := zerolog.Ctx(ctx).With().Str("handler", "cancellation").Logger()
	ctx = logger.WithContext(ctx)

	var change ChangeEvent
	if err := json.NewDecoder(c.Request().Body).Decode(&change); err != nil {
		h.metrics.WebhookEvent("cancellation", "failed")
		logger.Error().Err(err).Msg("decode change event")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	result, err := h.InterfaceService.NotifyCancellation(ctx, change)
	if err != nil {
		h.metrics.WebhookEvent("cancellation", "failed")
		logger.Error().Err(err).Msg("error processing notification")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	h.metrics.WebhookEvent("cancellation", string(result.Outcome))
	return c.JSON(http.StatusOK, MessageResponse{Message: result.Message()})
}
