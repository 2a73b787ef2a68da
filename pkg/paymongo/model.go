package paymongo

import (
	"encoding/json"
	"fmt"
)

const (
	EventSourceChargeable = "source.chargeable"
	EventPaymentPaid      = "payment.paid"
	EventPaymentFailed    = "payment.failed"
)

const MetadataServiceRequestID = "service_request_id"

// Event is the envelope PayMongo posts to webhook endpoints. The resource
// the event is about stays raw until the event type is known.
type Event struct {
	Data struct {
		ID         string          `json:"id"`
		Type       string          `json:"type"`
		Attributes EventAttributes `json:"attributes"`
	} `json:"data"`
}

type EventAttributes struct {
	Type     string          `json:"type"`
	Livemode bool            `json:"livemode"`
	Data     json.RawMessage `json:"data"`
}

func ParseEvent(body []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return Event{}, fmt.Errorf("decoding paymongo event: %w", err)
	}
	return event, nil
}

// Source decodes the event resource as a source.
func (e Event) Source() (Source, error) {
	var source Source
	if len(e.Data.Attributes.Data) == 0 {
		return Source{}, fmt.Errorf("paymongo event %q carries no resource", e.Data.ID)
	}
	if err := json.Unmarshal(e.Data.Attributes.Data, &source); err != nil {
		return Source{}, fmt.Errorf("decoding paymongo source: %w", err)
	}
	return source, nil
}

type Source struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Attributes SourceAttributes `json:"attributes"`
}

type SourceAttributes struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Status   string            `json:"status"`
	Type     string            `json:"type"`
	Redirect Redirect          `json:"redirect"`
	Metadata map[string]string `json:"metadata"`
}

type Redirect struct {
	CheckoutURL string `json:"checkout_url,omitempty"`
	Success     string `json:"success"`
	Failed      string `json:"failed"`
}

type CreateSourceParams struct {
	Amount   int64             `json:"amount"`
	Redirect Redirect          `json:"redirect"`
	Type     string            `json:"type"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type createSourceRequest struct {
	Data struct {
		Attributes CreateSourceParams `json:"attributes"`
	} `json:"data"`
}

type sourceResponse struct {
	Data Source `json:"data"`
}

type ErrorDetail struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

type errorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}

// APIError is a non-2xx answer from the PayMongo API.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 && e.Errors[0].Detail != "" {
		return e.Errors[0].Detail
	}
	return "Unknown error from PayMongo"
}
