package draft

import "errors"

var (
	// ErrNoPendingDraft is returned when Confirm is called without a draft
	// awaiting speaker choice
	ErrNoPendingDraft = errors.New("no draft awaiting speaker choice")
)
