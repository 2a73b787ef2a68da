package payment_source

type CreateSourceRequest struct {
	Amount           int64  `json:"amount" validate:"gt=0"`
	ServiceRequestID string `json:"serviceRequestId" validate:"required,uuid"`
	PaymentMethod    string `json:"paymentMethod" validate:"required"`
}

type CreateSourceResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SourceID    string `json:"source_id,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
