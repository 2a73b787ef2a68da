package payment_source

import (
	"context"
	"errors"
	"strings"

	"roadside/pkg/paymongo"
	"roadside/validation"

	"github.com/rs/zerolog"
)

var (
	ErrSecretKeyMissing = errors.New("paymongo secret key is not configured")
	ErrNoCheckoutURL    = errors.New("PayMongo returned no checkout url")
)

type SourceCreator interface {
	CreateSource(ctx context.Context, params paymongo.CreateSourceParams) (paymongo.Source, error)
}

type InterfaceService interface {
	CreateSource(ctx context.Context, req CreateSourceRequest) (CreateSourceResponse, error)
}

type Service struct {
	client      SourceCreator
	redirectURL string
	currency    string
}

// NewPaymentSourceService accepts a nil client when no secret key is
// configured; requests then fail with ErrSecretKeyMissing.
func NewPaymentSourceService(client SourceCreator, redirectURL, currency string) *Service {
	return &Service{client: client, redirectURL: redirectURL, currency: currency}
}

func (s *Service) CreateSource(ctx context.Context, req CreateSourceRequest) (CreateSourceResponse, error) {
	if s.client == nil {
		return CreateSourceResponse{}, ErrSecretKeyMissing
	}
	if err := validation.Validate(req); err != nil {
		return CreateSourceResponse{}, errors.New(validation.Message(err))
	}

	source, err := s.client.CreateSource(ctx, paymongo.CreateSourceParams{
		Amount: req.Amount,
		Redirect: paymongo.Redirect{
			Success: callbackURL(s.redirectURL, "success", req.ServiceRequestID),
			Failed:  callbackURL(s.redirectURL, "failed", req.ServiceRequestID),
		},
		Type:     req.PaymentMethod,
		Currency: s.currency,
		Metadata: map[string]string{paymongo.MetadataServiceRequestID: req.ServiceRequestID},
	})
	if err != nil {
		return CreateSourceResponse{}, err
	}

	checkout := source.Attributes.Redirect.CheckoutURL
	if checkout == "" {
		return CreateSourceResponse{}, ErrNoCheckoutURL
	}

	zerolog.Ctx(ctx).Info().
		Str("service_request_id", req.ServiceRequestID).
		Str("source_id", source.ID).
		Str("payment_method", req.PaymentMethod).
		Int64("amount", req.Amount).
		Msg("payment source created")

	return CreateSourceResponse{CheckoutURL: checkout, SourceID: source.ID}, nil
}

func callbackURL(base, status, requestID string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "status=" + status + "&request_id=" + requestID
}
