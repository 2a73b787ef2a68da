package payment

import (
	"encoding/json"

	"github.com/google/uuid"
)

const (
	TransactionStatusSuccessful = "successful"
	PaymentStatusPaid           = "paid"
)

// ChargeableSource is what a source.chargeable event records in the ledger.
type ChargeableSource struct {
	ServiceRequestID   uuid.UUID
	Amount             string
	PaymentMethod      string
	GatewayReferenceID string
	Payload            json.RawMessage
}

type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeDuplicate Outcome = "duplicate"
)

type WebhookResponse struct {
	Received bool `json:"received"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
