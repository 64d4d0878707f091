package storage

import (
	"context"
	"io"
)

// ObjectStore is the binary object store collaborator. Put streams one
// blob and returns a stable, publicly resolvable locator for it.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
