// Package realtime delivers server-pushed invalidation events: "something
// changed for this user, refetch that resource". Two transports implement
// the same Source interface, so the refresh layer never knows which one is
// wired. Delivery is at-least-once; a duplicate event just causes an extra
// refetch.
package realtime

import "context"

// Event names a resource whose cached copy is now stale. ID narrows it to
// one record when the server knows which; empty means the whole collection.
type Event struct {
	Resource string `json:"resource"`
	ID       string `json:"id,omitempty"`
}

// Resource names carried in events.
const (
	ResourceAppointments = "appointments"
	ResourceHistory      = "history"
	ResourceChat         = "chat"
	ResourceDashboard    = "dashboard"
)

// Source is a stream of invalidation events. Run blocks until the context
// is canceled, reconnecting internally as needed; Events stays readable the
// whole time and closes after Run returns.
type Source interface {
	Run(ctx context.Context) error
	Events() <-chan Event
}

// NopSource is the Source used when realtime is disabled: it never emits
// and Run waits for cancellation. The polling safety net carries the load.
type NopSource struct{ ch chan Event }

func NewNopSource() *NopSource {
	return &NopSource{ch: make(chan Event)}
}

func (n *NopSource) Run(ctx context.Context) error {
	<-ctx.Done()
	close(n.ch)
	return ctx.Err()
}

func (n *NopSource) Events() <-chan Event { return n.ch }
