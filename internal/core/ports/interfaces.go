package ports

import (
	"context"

	"gjwuploader/internal/core/domain"
)

// MediaPlatform is the contract the workflow orchestrator needs from the
// hosting platform's API. Each method is one self-contained step; advanced
// callers can drive them individually.
type MediaPlatform interface {
	// EnsureUploadToken returns a valid upload token, acquiring one only
	// when the cached token is missing or expired.
	EnsureUploadToken(ctx context.Context) (string, error)

	// UploadThumbnail uploads the image at imagePath and requests the
	// given resize breakpoints. A nil or empty sizes slice selects the
	// platform defaults.
	UploadThumbnail(ctx context.Context, imagePath string, sizes []int) (*domain.ThumbnailResult, error)

	// CreateDraft creates a draft content record on the channel, using
	// the two poster URLs produced by the thumbnail upload.
	CreateDraft(ctx context.Context, channel domain.ChannelID, meta domain.VideoMetadata, posterURL, posterHDURL string) (*domain.ContentResult, error)

	// UploadVideo uploads the video file and binds it to an existing
	// draft content record.
	UploadVideo(ctx context.Context, videoPath string, channel domain.ChannelID, content domain.ContentID) (*domain.VideoUploadResult, error)

	// GetStatus fetches the current transcoding state of a video.
	GetStatus(ctx context.Context, video domain.VideoID) (*domain.VideoStatusResult, error)
}

// FrameExtractor is the contract for producing a thumbnail image from a
// local video file when the caller did not supply one.
type FrameExtractor interface {
	// Available reports whether the extraction tool exists on this
	// machine.
	Available() bool

	// ExtractFrame writes a single frame taken offsetSec seconds into
	// the video to outPath.
	ExtractFrame(ctx context.Context, videoPath string, offsetSec float64, outPath string) error
}
