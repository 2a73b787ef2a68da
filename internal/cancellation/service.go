package cancellation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roadside/infra/metrics"
	"roadside/pkg/fcm"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrMalformedEvent      = errors.New("change event has no record")
	ErrSenderNotConfigured = errors.New("FCM service account JSON is not configured")
	ErrTokenNotFound       = errors.New("could not find FCM token")
	ErrInvalidRecipientID  = errors.New("recipient id is not a valid uuid")
)

type Sender interface {
	Send(ctx context.Context, msg fcm.Message) (string, error)
}

type InterfaceService interface {
	NotifyCancellation(ctx context.Context, change ChangeEvent) (Result, error)
}

type Service struct {
	InterfaceRepository InterfaceRepository
	sender              Sender
	metrics             *metrics.Metrics
}

// NewCancellationService accepts a nil sender; sends then fail with
// ErrSenderNotConfigured.
func NewCancellationService(repo InterfaceRepository, sender Sender, m *metrics.Metrics) *Service {
	return &Service{InterfaceRepository: repo, sender: sender, metrics: m}
}

func (s *Service) NotifyCancellation(ctx context.Context, change ChangeEvent) (Result, error) {
	if change.Record == nil {
		return Result{}, ErrMalformedEvent
	}

	logger := zerolog.Ctx(ctx).With().Str("service_request_id", change.Record.ID).Logger()

	if !isNewCancellation(change) {
		logger.Debug().Str("status", change.Record.Status).Msg("not a new cancellation")
		return Result{Outcome: OutcomeIgnored}, nil
	}

	recipientID, ok := resolveRecipient(*change.Record)
	if !ok {
		logger.Info().Msg("cancellation has no notification recipient")
		return Result{Outcome: OutcomeNoRecipient}, nil
	}
	logger = logger.With().Str("recipient_id", recipientID).Logger()

	if s.sender == nil {
		return Result{}, ErrSenderNotConfigured
	}

	token, err := s.lookupToken(ctx, recipientID)
	if err != nil {
		return Result{}, err
	}

	name, err := s.sender.Send(ctx, fcm.Message{
		Token: token,
		Title: NotificationTitle,
		Body:  NotificationBody,
		Data:  map[string]string{"requestId": change.Record.ID},
	})
	if err != nil {
		s.metrics.PushNotification("failed")
		return Result{}, err
	}
	s.metrics.PushNotification("sent")

	logger.Info().Str("fcm_message", name).Msg("cancellation notification sent")
	return Result{Outcome: OutcomeSent, RecipientID: recipientID, MessageName: name}, nil
}

func (s *Service) lookupToken(ctx context.Context, recipientID string) (string, error) {
	id, err := uuid.Parse(recipientID)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidRecipientID, recipientID)
	}

	token, err := s.InterfaceRepository.GetProfileFcmToken(ctx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("%w for user %s: profile not found", ErrTokenNotFound, recipientID)
	case err != nil:
		return "", fmt.Errorf("%w for user %s: %w", ErrTokenNotFound, recipientID, err)
	case !token.Valid || token.String == "":
		return "", fmt.Errorf("%w for user %s", ErrTokenNotFound, recipientID)
	}

	return token.String, nil
}
