package webhook

import "context"

// Ledger records processed external event identifiers
type Ledger interface {
	// Register inserts a ledger row for the event. A uniqueness conflict on
	// (provider, eventID) reports registered=false with no error; every other
	// insert failure propagates.
	Register(ctx context.Context, provider, eventID, eventType string, payload []byte) (registered bool, err error)
}
