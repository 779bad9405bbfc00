package out

import "context"

// FileStorage stores uploaded binaries in an object store. Paths are
// namespaced as category/ownerID/filename.
type FileStorage interface {
	// Put uploads one object and returns its public URL.
	Put(ctx context.Context, path string, contentType string, data []byte) (string, error)

	// RemoveFolder deletes every object under the prefix. Used for the
	// replace-on-write upload strategy.
	RemoveFolder(ctx context.Context, folderPath string) error
}
