package payment

import (
	"io"
	"net/http"

	"roadside/infra/metrics"
	"roadside/pkg/paymongo"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// maxWebhookBody caps a PayMongo delivery at 1 MiB.
const maxWebhookBody = 1 << 20

type Handler struct {
	InterfaceService InterfaceService
	metrics          *metrics.Metrics
}

func NewPaymentHandler(service InterfaceService, m *metrics.Metrics) *Handler {
	return &Handler{InterfaceService: service, metrics: m}
}

// PaymongoWebhookHandler answers 200 {"received":true} for every accepted
// delivery and 400 for any failure, including signature problems.
func (h *Handler) PaymongoWebhookHandler(c echo.Context) error {
	ctx := c.Request().Context()
	logger := zerolog.Ctx(ctx).With().Str("handler", "paymongo").Logger()
	ctx = logger.WithContext(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxWebhookBody))
	if err != nil {
		h.metrics.WebhookEvent("paymongo", "failed")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	outcome, err := h.InterfaceService.HandleWebhook(ctx, c.Request().Header.Get(paymongo.SignatureHeader), body)
	if err != nil {
		h.metrics.WebhookEvent("paymongo", "failed")
		logger.Error().Err(err).Msg("webhook processing error")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	h.metrics.WebhookEvent("paymongo", string(outcome))
	return c.JSON(http.StatusOK, WebhookResponse{Received: true})
}
