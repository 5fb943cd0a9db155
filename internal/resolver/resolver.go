// Package resolver identifies the execution context a notification
// originated from, so a reply can be routed back to it.
package resolver

import "context"

// Unresolvable is the sentinel contextRef stored when no resolver can
// name the originating context.
const Unresolvable = "unknown"

// ContextResolver names the ambient execution context (for example the
// current tmux session). Implementations should fail fast rather than
// block a notification send.
type ContextResolver interface {
	Resolve(ctx context.Context) (string, error)
}
