package payment_source

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Handler struct {
	InterfaceService InterfaceService
}

func NewPaymentSourceHandler(service InterfaceService) *Handler {
	return &Handler{InterfaceService: service}
}

// CreatePaymentSourceHandler starts a PayMongo checkout for a service
// request. The body is read as JSON whatever Content-Type the client sends.
// Every failure is answered with 400.
func (h *Handler) CreatePaymentSourceHandler(c echo.Context) error {
	ctx := c.Request().Context()
	logger := zerolog.Ctx(ctx).With().Str("handler", "payment_source").Logger()
	ctx = logger.WithContext(ctx)

	var request CreateSourceRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	response, err := h.InterfaceService.CreateSource(ctx, request)
	if err != nil {
		logger.Warn().Err(err).Msg("create payment source")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, response)
}
