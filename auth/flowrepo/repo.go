package flowrepo

import "time"

// FlowState is the transient per-redirect state of a pending authorization.
// It is created when the user agent is sent to the vendor and discarded when
// the callback redeems it.
type FlowState struct {
	ReturnURL string
	CreatedAt time.Time
}

type Repo interface {
	Upsert(state string, flowState *FlowState) error
	Get(state string) (*FlowState, error)
	Delete(state string) error
}
