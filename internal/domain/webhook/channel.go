package webhook

import (
	"time"

	"github.com/google/uuid"
)

// Channel is the join record between a provider push channel and a companion.
// One active channel per companion; registering a new one replaces the old
// record. Renewal before ExpiresAt is driven by an external scheduler.
type Channel struct {
	CompanionID       uuid.UUID
	ExternalChannelID string
	ResourceID        string
	ValidationToken   string
	ExpiresAt         time.Time
}

// Resource states delivered by the provider. "sync" is the initial handshake
// message on a fresh channel, "exists" signals a change on the watched
// resource.
const (
	ResourceStateSync      = "sync"
	ResourceStateExists    = "exists"
	ResourceStateNotExists = "not_exists"
)

// Notification is one push message after transport decoding. MessageNumber is
// the provider-supplied change marker used for deduplication.
type Notification struct {
	ChannelID     string
	Token         string
	ResourceState string
	MessageNumber int64
}

// TriggersResync reports whether this notification kind requires a
// reconciliation run.
func (n Notification) TriggersResync() bool {
	return n.ResourceState == ResourceStateSync || n.ResourceState == ResourceStateExists
}
