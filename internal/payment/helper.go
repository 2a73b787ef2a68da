package payment

import (
	"fmt"

	"roadside/pkg/paymongo"

	"github.com/google/uuid"
)

func extractChargeable(event paymongo.Event) (ChargeableSource, error) {
	source, err := event.Source()
	if err != nil {
		return ChargeableSource{}, err
	}

	rawID := source.Attributes.Metadata[paymongo.MetadataServiceRequestID]
	if rawID == "" {
		return ChargeableSource{}, fmt.Errorf("%w: source %s", ErrMissingServiceRequest, source.ID)
	}
	requestID, err := uuid.Parse(rawID)
	if err != nil {
		return ChargeableSource{}, fmt.Errorf("%w: %q", ErrMissingServiceRequest, rawID)
	}

	amount, err := formatCentavos(source.Attributes.Amount)
	if err != nil {
		return ChargeableSource{}, err
	}

	return ChargeableSource{
		ServiceRequestID:   requestID,
		Amount:             amount,
		PaymentMethod:      source.Attributes.Type,
		GatewayReferenceID: source.ID,
		Payload:            event.Data.Attributes.Data,
	}, nil
}

// formatCentavos renders an amount in centavos as an exact decimal peso
// string, e.g. 25050 -> "250.50".
func formatCentavos(centavos int64) (string, error) {
	if centavos < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidAmount, centavos)
	}
	return fmt.Sprintf("%d.%02d", centavos/100, centavos%100), nil
}
