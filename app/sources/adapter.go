package sources

import (
	"context"

	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

// Adapter is one per-source fetch+parse+normalize unit. Fetch never
// returns an error: missing credentials, transport failures, and malformed
// payloads all degrade to an empty result with a diagnostic log entry, so
// one broken source never takes down an aggregation cycle.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) []notice.Notice
}
