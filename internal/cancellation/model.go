package cancellation

const StatusCancelled = "cancelled"

const (
	MessageNotCancellation = "Not a cancellation event or already processed."
	MessageNoRecipient     = "No recipient found for notification."
	MessageSent            = "Notification sent successfully."

	NotificationTitle = "Service Request Cancelled"
	NotificationBody  = "Your service request has been cancelled. Please check the app for details."
)

// ServiceRequestRecord is a service_requests row as delivered by the
// database webhook.
type ServiceRequestRecord struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	RequesterID string  `json:"requester_id"`
	MechanicID  *string `json:"mechanic_id"`
	CancelledBy *string `json:"cancelled_by"`
}

type ChangeEvent struct {
	Type      string                `json:"type"`
	Table     string                `json:"table"`
	Schema    string                `json:"schema"`
	Record    *ServiceRequestRecord `json:"record"`
	OldRecord *ServiceRequestRecord `json:"old_record"`
}

type Outcome string

const (
	OutcomeIgnored     Outcome = "ignored"
	OutcomeNoRecipient Outcome = "no_recipient"
	OutcomeSent        Outcome = "sent"
)

type Result struct {
	Outcome     Outcome
	RecipientID string
	MessageName string
}

func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeNoRecipient:
		return MessageNoRecipient
	case OutcomeSent:
		return MessageSent
	default:
		return MessageNotCancellation
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
