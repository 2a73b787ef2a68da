package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	db "roadside/db/sqlc"
	"roadside/pkg/cache"
	"roadside/pkg/paymongo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsk_test"

var serviceRequestID = uuid.MustParse("0b6f5a4e-7c2d-4e1b-8f3a-9d2c1b0a0001")

type fakeRepository struct {
	transactions []db.CreateTransactionParams
	updates      []db.UpdateServiceRequestPaymentStatusParams
	createErr    error
	updateErr    error
}

func (f *fakeRepository) CreateTransaction(_ context.Context, arg db.CreateTransactionParams) (db.Transaction, error) {
	if f.createErr != nil {
		return db.Transaction{}, f.createErr
	}
	for _, existing := range f.transactions {
		if existing.GatewayReferenceID == arg.GatewayReferenceID {
			return db.Transaction{}, sql.ErrNoRows
		}
	}
	f.transactions = append(f.transactions, arg)
	return db.Transaction{ID: uuid.New(), ServiceRequestID: arg.ServiceRequestID, Amount: arg.Amount}, nil
}

func (f *fakeRepository) UpdateServiceRequestPaymentStatus(_ context.Context, arg db.UpdateServiceRequestPaymentStatusParams) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	f.updates = append(f.updates, arg)
	return 1, nil
}

type fakeDedup struct {
	seen     map[string]bool
	released []string
	err      error
}

func newFakeDedup() *fakeDedup { return &fakeDedup{seen: map[string]bool{}} }

func (f *fakeDedup) Claim(_ context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func (f *fakeDedup) Release(_ context.Context, key string) error {
	delete(f.seen, key)
	f.released = append(f.released, key)
	return nil
}

func chargeableBody(eventID string, amount int64, requestID string) []byte {
	return []byte(fmt.Sprintf(`{"data":{"id":%q,"type":"event","attributes":{"type":"source.chargeable","livemode":false,
"data":{"id":"src_abc","type":"source","attributes":{"amount":%d,"currency":"PHP","status":"chargeable","type":"gcash",
"metadata":{"service_request_id":%q}}}}}}`, eventID, amount, requestID))
}

func sign(body []byte) string {
	return paymongo.SignHeader(webhookSecret, time.Unix(1700000000, 0), body)
}

func newService(repo *fakeRepository, dedup *fakeDedup) *Service {
	var d cache.Deduplicator
	if dedup != nil {
		d = dedup
	}
	return NewPaymentService(repo, paymongo.Verifier{Secret: webhookSecret}, d, nil)
}

func TestHandleWebhook_SourceChargeable(t *testing.T) {
	repo := &fakeRepository{}
	body := chargeableBody("evt_1", 25050, serviceRequestID.String())

	outcome, err := newService(repo, nil).HandleWebhook(context.Background(), sign(body), body)
	require.NoError(t, err)
	require.Equal(t, OutcomeProcessed, outcome)

	require.Len(t, repo.transactions, 1)
	tx := repo.transactions[0]
	require.Equal(t, serviceRequestID, tx.ServiceRequestID)
	require.Equal(t, "250.50", tx.Amount)
	require.Equal(t, "gcash", tx.PaymentMethod)
	require.Equal(t, TransactionStatusSuccessful, tx.Status)
	require.Equal(t, "src_abc", tx.GatewayReferenceID)
	require.True(t, tx.GatewayPayload.Valid)
	require.Contains(t, string(tx.GatewayPayload.RawMessage), `"src_abc"`)

	require.Equal(t, []db.UpdateServiceRequestPaymentStatusParams{{ID: serviceRequestID, PaymentStatus: PaymentStatusPaid}}, repo.updates)
}

func TestHandleWebhook_RejectsBadSignature(t *testing.T) {
	repo := &fakeRepository{}
	body := chargeableBody("evt_1", 10000, serviceRequestID.String())
	header := paymongo.SignHeader("other-secret", time.Unix(1700000000, 0), body)

	_, err := newService(repo, nil).HandleWebhook(context.Background(), header, body)
	require.ErrorIs(t, err, paymongo.ErrSignatureMismatch)
	require.Empty(t, repo.transactions)

	_, err = newService(repo, nil).HandleWebhook(context.Background(), "", body)
	require.ErrorIs(t, err, paymongo.ErrMissingSignature)
}

func TestHandleWebhook_IgnoresOtherEvents(t *testing.T) {
	repo := &fakeRepository{}
	body := []byte(`{"data":{"id":"evt_9","attributes":{"type":"payment.paid","data":{"id":"pay_1"}}}}`)

	outcome, err := newService(repo, nil).HandleWebhook(context.Background(), sign(body), body)
	require.NoError(t, err)
	require.Equal(t, OutcomeIgnored, outcome)
	require.Empty(t, repo.transactions)
	require.Empty(t, repo.updates)
}

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	body := []byte(`not json`)
	_, err := newService(&fakeRepository{}, nil).HandleWebhook(context.Background(), sign(body), body)
	require.Error(t, err)
}

func TestHandleWebhook_MissingServiceRequest(t *testing.T) {
	repo := &fakeRepository{}
	body := chargeableBody("evt_2", 10000, "")

	_, err := newService(repo, nil).HandleWebhook(context.Background(), sign(body), body)
	require.ErrorIs(t, err, ErrMissingServiceRequest)
	require.Empty(t, repo.transactions)
}

func TestHandleWebhook_TransactionFailureStopsUpdate(t *testing.T) {
	repo := &fakeRepository{createErr: errors.New("insert or update on table \"transactions\" violates foreign key constraint")}
	body := chargeableBody("evt_3", 10000, serviceRequestID.String())

	_, err := newService(repo, nil).HandleWebhook(context.Background(), sign(body), body)
	require.ErrorContains(t, err, "foreign key")
	require.Empty(t, repo.updates)
}

func TestHandleWebhook_UpdateFailureKeepsTransaction(t *testing.T) {
	repo := &fakeRepository{updateErr: errors.New("timeout")}
	body := chargeableBody("evt_4", 10000, serviceRequestID.String())

	_, err := newService(repo, nil).HandleWebhook(context.Background(), sign(body), body)
	require.ErrorContains(t, err, "mark service request paid")
	require.Len(t, repo.transactions, 1)
}

func TestHandleWebhook_DuplicateDelivery(t *testing.T) {
	repo := &fakeRepository{}
	dedup := newFakeDedup()
	svc := newService(repo, dedup)
	body := chargeableBody("evt_5", 10000, serviceRequestID.String())

	outcome, err := svc.HandleWebhook(context.Background(), sign(body), body)
	require.NoError(t, err)
	require.Equal(t, OutcomeProcessed, outcome)

	outcome, err = svc.HandleWebhook(context.Background(), sign(body), body)
	require.NoError(t, err)
	require.Equal(t, OutcomeDuplicate, outcome)
	require.Len(t, repo.transactions, 1)
}

func TestHandleWebhook_FailureReleasesDedupKey(t *testing.T) {
	repo := &fakeRepository{createErr: errors.New("db down")}
	dedup := newFakeDedup()
	svc := newService(repo, dedup)
	body := chargeableBody("evt_6", 10000, serviceRequestID.String())

	_, err := svc.HandleWebhook(context.Background(), sign(body), body)
	require.Error(t, err)
	require.Equal(t, []string{"evt_6"}, dedup.released)

	repo.createErr = nil
	outcome, err := svc.HandleWebhook(context.Background(), sign(body), body)
	require.NoError(t, err)
	require.Equal(t, OutcomeProcessed, outcome)
}

func TestHandleWebhook_DedupUnavailableStillProcesses(t *testing.T) {
	repo := &fakeRepository{}
	dedup := newFakeDedup()
	dedup.err = errors.New("redis: connection refused")
	body := chargeableBody("evt_7", 10000, serviceRequestID.String())

	outcome, err := newService(repo, dedup).HandleWebhook(context.Background(), sign(body), body)
	require.NoError(t, err)
	require.Equal(t, OutcomeProcessed, outcome)
	require.Len(t, repo.transactions, 1)
}

func TestHandleWebhook_RedeliveryAfterFailedUpdate(t *testing.T) {
	repo := &fakeRepository{updateErr: errors.New("timeout")}
	dedup := newFakeDedup()
	svc := newService(repo, dedup)
	body := chargeableBody("evt_8", 10000, serviceRequestID.String())

	_, err := svc.HandleWebhook(context.Background(), sign(body), body)
	require.Error(t, err)
	require.Equal(t, []string{"evt_8"}, dedup.released)

	repo.updateErr = nil
	outcome, err := svc.HandleWebhook(context.Background(), sign(body), body)
	require.NoError(t, err)
	require.Equal(t, OutcomeProcessed, outcome)
	require.Len(t, repo.transactions, 1)
	require.Equal(t, []db.UpdateServiceRequestPaymentStatusParams{{ID: serviceRequestID, PaymentStatus: PaymentStatusPaid}}, repo.updates)
}

func TestHandleWebhook_RedeliveryWithoutDedup(t *testing.T) {
	repo := &fakeRepository{}
	svc := newService(repo, nil)
	body := chargeableBody("evt_9", 10000, serviceRequestID.String())

	for i := 0; i < 2; i++ {
		outcome, err := svc.HandleWebhook(context.Background(), sign(body), body)
		require.NoError(t, err)
		require.Equal(t, OutcomeProcessed, outcome)
	}
	require.Len(t, repo.transactions, 1)
	require.Len(t, repo.updates, 2)
}
