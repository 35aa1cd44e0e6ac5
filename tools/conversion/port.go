package conversion

import "context"

// VideoResolver resolves a public video URL into playable metadata via a
// third-party service.
type VideoResolver interface {
	// Resolve returns metadata for the video behind url. Fails with
	// CONVERT_INVALID_URL for URLs outside the expected host,
	// CONVERT_UPSTREAM_FAILED when the service is unreachable or errors
	// (timeouts included), and CONVERT_VIDEO_NOT_FOUND when the service
	// reports no content.
	Resolve(ctx context.Context, url string) (*VideoMetadata, error)
}

// MetadataCache is an optional read-through cache for resolved video metadata.
type MetadataCache interface {
	// Get returns the cached metadata for url, or (nil, nil) on a miss.
	Get(ctx context.Context, url string) (*VideoMetadata, error)

	// Set stores metadata for url. Implementations choose the TTL.
	Set(ctx context.Context, url string, meta *VideoMetadata) error
}

// Writer drafts long-form copy for the ai-writer tool. Implementations may
// call a hosted model; the dispatcher falls back to a local template when the
// writer is absent or fails.
type Writer interface {
	Draft(ctx context.Context, topic string) (string, error)
}
