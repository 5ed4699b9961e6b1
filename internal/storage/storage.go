// Package storage abstracts where uploaded binaries (submission photos,
// avatars, logos) live.  The core stores only the returned reference,
// never the bytes.
package storage

import "context"

// Directory names under which each kind of upload is stored.  The
// returned references are /<dir>/<filename> regardless of driver.
const (
	DirAvatars     = "avatars"
	DirSubmissions = "submissions"
	DirLogos       = "logos"
)

// BlobStore saves binary content and returns a stable reference that
// clients can fetch later.  Implementations must be safe for concurrent
// use.
type BlobStore interface {
	Save(ctx context.Context, dir, filename string, content []byte) (string, error)
}
