package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Amount    int64  `json:"amount" validate:"gt=0"`
	RequestID string `json:"serviceRequestId" validate:"required,uuid"`
	Method    string `json:"paymentMethod" validate:"required,oneof=gcash grab_pay"`
}

func TestValidate(t *testing.T) {
	ok := sample{Amount: 10000, RequestID: "0b6f5a4e-7c2d-4e1b-8f3a-9d2c1b0a0001", Method: "gcash"}
	require.NoError(t, Validate(ok))

	tests := []struct {
		name string
		in   sample
		want string
	}{
		{"zero amount", sample{RequestID: ok.RequestID, Method: "gcash"}, "amount must be greater than 0"},
		{"missing request", sample{Amount: 1, Method: "gcash"}, "serviceRequestId is required"},
		{"bad uuid", sample{Amount: 1, RequestID: "abc", Method: "gcash"}, "serviceRequestId must be a valid UUID"},
		{"bad method", sample{Amount: 1, RequestID: ok.RequestID, Method: "card"}, "paymentMethod must be one of [gcash grab_pay]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			require.Error(t, err)
			require.Equal(t, tt.want, Message(err))
		})
	}
}

func TestMessage_PassesThroughOtherErrors(t *testing.T) {
	require.Equal(t, "boom", Message(errors.New("boom")))
}
