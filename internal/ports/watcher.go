package ports

import "context"

// FileWatcherPort calls onChange after path is modified. Watch blocks until
// ctx is cancelled or onChange returns an error.
type FileWatcherPort interface {
	Watch(ctx context.Context, path string, onChange func(ctx context.Context) error) error
}
