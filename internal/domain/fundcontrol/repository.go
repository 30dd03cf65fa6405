package fundcontrol

import "context"

// Repository persists the funding authority tree. The host owns storage;
// the engine only ever sees snapshots loaded through this interface.
type Repository interface {
	// LoadTree returns the current authority tree, or nil when none is installed
	LoadTree(ctx context.Context) (*Node, error)
	// SaveTree replaces the stored authority tree
	SaveTree(ctx context.Context, root *Node) error
}
