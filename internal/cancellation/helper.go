package cancellation

func isNewCancellation(change ChangeEvent) bool {
	if change.Record == nil || change.Record.Status != StatusCancelled {
		return false
	}
	return change.OldRecord == nil || change.OldRecord.Status != StatusCancelled
}

// resolveRecipient picks the party that did not cancel. A request cancelled by
// its requester notifies the assigned mechanic; one cancelled by the mechanic
// notifies the requester.
func resolveRecipient(record ServiceRequestRecord) (string, bool) {
	if record.CancelledBy == nil || *record.CancelledBy == "" {
		return "", false
	}
	canceller := *record.CancelledBy
	mechanic := ""
	if record.MechanicID != nil {
		mechanic = *record.MechanicID
	}

	if canceller == record.RequesterID && mechanic != "" {
		return mechanic, true
	}
	if mechanic != "" && canceller == mechanic {
		if record.RequesterID == "" {
			return "", false
		}
		return record.RequesterID, true
	}
	return "", false
}
