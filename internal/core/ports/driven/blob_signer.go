package driven

import "time"

// BlobSigner produces time-limited signed access URLs for project blobs
// (original documents and rendered page images).
type BlobSigner interface {
	SignedURL(projectName, blobName string, ttl time.Duration) (string, error)
}
