package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	db "roadside/db/sqlc"
	"roadside/infra/metrics"
	"roadside/pkg/cache"
	"roadside/pkg/paymongo"

	"github.com/rs/zerolog"
	"github.com/sqlc-dev/pqtype"
)

var (
	ErrMissingServiceRequest = errors.New("source metadata has no valid service_request_id")
	ErrInvalidAmount         = errors.New("source amount is negative")
)

type SignatureVerifier interface {
	Verify(header string, body []byte) error
}

type InterfaceService interface {
	HandleWebhook(ctx context.Context, signature string, body []byte) (Outcome, error)
}

type Service struct {
	InterfaceRepository InterfaceRepository
	verifier            SignatureVerifier
	dedup               cache.Deduplicator
	metrics             *metrics.Metrics
}

func NewPaymentService(repo InterfaceRepository, verifier SignatureVerifier, dedup cache.Deduplicator, m *metrics.Metrics) *Service {
	if dedup == nil {
		dedup = cache.NoopDeduplicator{}
	}
	return &Service{
		InterfaceRepository: repo,
		verifier:            verifier,
		dedup:               dedup,
		metrics:             m,
	}
}

// HandleWebhook verifies the delivery, then applies it. Only source.chargeable
// has side effects; every other event type is acknowledged as ignored.
func (s *Service) HandleWebhook(ctx context.Context, signature string, body []byte) (Outcome, error) {
	if err := s.verifier.Verify(signature, body); err != nil {
		return "", err
	}

	event, err := paymongo.ParseEvent(body)
	if err != nil {
		return "", err
	}

	eventType := event.Data.Attributes.Type
	logger := zerolog.Ctx(ctx).With().
		Str("event_id", event.Data.ID).
		Str("event_type", eventType).
		Logger()

	if eventType != paymongo.EventSourceChargeable {
		logger.Debug().Msg("paymongo event ignored")
		return OutcomeIgnored, nil
	}

	if event.Data.ID != "" {
		first, err := s.dedup.Claim(ctx, event.Data.ID)
		if err != nil {
			logger.Warn().Err(err).Msg("delivery dedup unavailable, processing anyway")
			first = true
		}
		if !first {
			logger.Info().Msg("duplicate paymongo delivery")
			return OutcomeDuplicate, nil
		}
	}

	if err := s.recordPayment(logger.WithContext(ctx), event); err != nil {
		if event.Data.ID != "" {
			if relErr := s.dedup.Release(ctx, event.Data.ID); relErr != nil {
				logger.Warn().Err(relErr).Msg("release dedup key")
			}
		}
		return "", err
	}

	return OutcomeProcessed, nil
}

func (s *Service) recordPayment(ctx context.Context, event paymongo.Event) error {
	logger := zerolog.Ctx(ctx)

	charge, err := extractChargeable(event)
	if err != nil {
		return err
	}

	tx, err := s.InterfaceRepository.CreateTransaction(ctx, db.CreateTransactionParams{
		ServiceRequestID:   charge.ServiceRequestID,
		Amount:             charge.Amount,
		PaymentMethod:      charge.PaymentMethod,
		Status:             TransactionStatusSuccessful,
		GatewayReferenceID: charge.GatewayReferenceID,
		GatewayPayload:     pqtype.NullRawMessage{RawMessage: charge.Payload, Valid: len(charge.Payload) > 0},
	})
	recorded := true
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Ledger row already exists for this source. The status update is
		// idempotent and still runs.
		recorded = false
		logger.Info().Str("gateway_reference_id", charge.GatewayReferenceID).Msg("transaction already recorded")
	case err != nil:
		return fmt.Errorf("insert transaction: %w", err)
	}

	rows, err := s.InterfaceRepository.UpdateServiceRequestPaymentStatus(ctx, db.UpdateServiceRequestPaymentStatusParams{
		ID:            charge.ServiceRequestID,
		PaymentStatus: PaymentStatusPaid,
	})
	if err != nil {
		return fmt.Errorf("mark service request paid: %w", err)
	}
	if rows == 0 {
		logger.Warn().Str("service_request_id", charge.ServiceRequestID.String()).Msg("no service request updated")
	}

	if !recorded {
		return nil
	}

	logger.Info().
		Str("service_request_id", charge.ServiceRequestID.String()).
		Str("transaction_id", tx.ID.String()).
		Str("amount", charge.Amount).
		Str("payment_method", charge.PaymentMethod).
		Msg("payment recorded")

	return nil
}
