package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gjwuploader/internal/core/domain"
	"gjwuploader/internal/core/ports"
)

const (
	defaultExtractOffsetSec = 1.0
	defaultPollInterval     = 5 * time.Second
	defaultMaxWait          = 10 * time.Minute
)

// Orchestrator sequences the upload steps into one coherent workflow:
// thumbnail, draft, video, then optionally a polling loop on the
// transcoding status. Steps run sequentially because each one consumes
// the previous step's output.
type Orchestrator struct {
	platform  ports.MediaPlatform
	extractor ports.FrameExtractor
	logger    zerolog.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(platform ports.MediaPlatform, extractor ports.FrameExtractor, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		platform:  platform,
		extractor: extractor,
		logger:    logger,
	}
}

// UploadJob describes one upload workflow invocation.
type UploadJob struct {
	VideoPath string

	// ThumbnailPath may be empty; AutoExtract then decides whether a
	// frame is pulled from the video or the job fails.
	ThumbnailPath    string
	AutoExtract      bool
	ExtractOffsetSec float64

	Channel  domain.ChannelID
	Metadata domain.VideoMetadata

	WaitForProcessing bool
	PollInterval      time.Duration
	MaxWait           time.Duration

	Progress domain.ProgressFunc
}

// AssetResults holds the raw outputs of the three upload steps.
type AssetResults struct {
	Thumbnail *domain.ThumbnailResult
	Content   *domain.ContentResult
	Video     *domain.VideoUploadResult
}

// UploadAssets runs the three upload steps and returns their raw results.
// On any error the remaining steps are skipped and no partial results are
// returned. Callers who need custom post-processing use this entry point.
func (o *Orchestrator) UploadAssets(ctx context.Context, job UploadJob) (*AssetResults, error) {
	jobID := uuid.New().String()
	log := o.logger.With().Str("job_id", jobID).Logger()
	log.Info().Str("video", job.VideoPath).Str("channel", job.Channel.String()).Msg("starting upload job")

	if _, err := os.Stat(job.VideoPath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, job.VideoPath)
	}

	emit(job.Progress, domain.PhaseGettingToken, "acquiring upload token", 5)
	if _, err := o.platform.EnsureUploadToken(ctx); err != nil {
		log.Error().Err(err).Msg("token acquisition failed")
		return nil, err
	}

	thumbPath, cleanup, err := o.resolveThumbnail(ctx, job, log)
	if err != nil {
		return nil, err
	}
	// The extracted temp file is removed on success and failure alike.
	defer cleanup()

	thumb, err := o.platform.UploadThumbnail(ctx, thumbPath, nil)
	if err != nil {
		log.Error().Err(err).Msg("thumbnail upload failed")
		return nil, err
	}
	emit(job.Progress, domain.PhaseUploadingThumbnail, "thumbnail uploaded", 25)

	content, err := o.platform.CreateDraft(ctx, job.Channel, job.Metadata, thumb.URL672, thumb.URL1280)
	if err != nil {
		log.Error().Err(err).Msg("draft creation failed")
		return nil, err
	}
	emit(job.Progress, domain.PhaseCreatingDraft, "draft created", 50)

	video, err := o.platform.UploadVideo(ctx, job.VideoPath, job.Channel, content.ID)
	if err != nil {
		log.Error().Err(err).Msg("video upload failed")
		return nil, err
	}
	emit(job.Progress, domain.PhaseUploadingVideo, "video uploaded", 75)

	log.Info().
		Str("content_id", content.ID.String()).
		Str("video_id", video.VideoID.String()).
		Msg("assets uploaded")

	return &AssetResults{Thumbnail: thumb, Content: content, Video: video}, nil
}

// UploadComplete runs UploadAssets and then either polls until the video
// is processed or takes a single status snapshot, returning the full
// aggregate result.
func (o *Orchestrator) UploadComplete(ctx context.Context, job UploadJob) (*domain.CompleteUploadResult, error) {
	assets, err := o.UploadAssets(ctx, job)
	if err != nil {
		return nil, err
	}

	res := &domain.CompleteUploadResult{
		Thumbnail: assets.Thumbnail,
		Content:   assets.Content,
		Video:     assets.Video,
		ContentID: assets.Content.ID,
		VideoID:   assets.Video.VideoID,
		ImageID:   assets.Thumbnail.ImageID,
		WebURL:    domain.WebURL(assets.Content.ID),
	}

	if job.WaitForProcessing {
		emit(job.Progress, domain.PhaseWaitingForProcessing, "waiting for transcoding", 85)
		status, err := o.pollUntilReady(ctx, assets.Video.VideoID, job.PollInterval, job.MaxWait, job.Progress)
		if err != nil {
			return nil, err
		}
		res.Status = status
	} else {
		emit(job.Progress, domain.PhaseCheckingStatus, "checking transcoding status", 85)
		status, err := o.platform.GetStatus(ctx, assets.Video.VideoID)
		if err != nil {
			return nil, err
		}
		res.Status = status
	}

	if res.Status.Media != nil {
		res.StreamURL = res.Status.Media.StreamURL
	}
	res.Phase = domain.PhaseCompleted
	res.CompletedAt = time.Now().UTC()
	emit(job.Progress, domain.PhaseCompleted, "upload complete", 100)
	return res, nil
}

// Upload is the minimal-ceremony entry point: thumbnails are extracted
// automatically when missing and the call waits for transcoding.
func (o *Orchestrator) Upload(ctx context.Context, job UploadJob) (*domain.CompleteUploadResult, error) {
	job.AutoExtract = true
	job.WaitForProcessing = true
	return o.UploadComplete(ctx, job)
}

// resolveThumbnail returns the thumbnail path to upload and a cleanup
// function. When the caller supplied no usable path, a frame is extracted
// from the video into a temp file owned by this invocation.
func (o *Orchestrator) resolveThumbnail(ctx context.Context, job UploadJob, log zerolog.Logger) (string, func(), error) {
	noop := func() {}

	if job.ThumbnailPath != "" {
		if _, err := os.Stat(job.ThumbnailPath); err == nil {
			return job.ThumbnailPath, noop, nil
		}
	}
	if !job.AutoExtract {
		return "", noop, domain.ErrThumbnailRequired
	}
	if !o.extractor.Available() {
		return "", noop, domain.ErrExtractorUnavailable
	}

	offset := job.ExtractOffsetSec
	if offset <= 0 {
		offset = defaultExtractOffsetSec
	}
	tmp := filepath.Join(os.TempDir(), "gjw-thumb-"+uuid.New().String()+".jpg")
	log.Info().Str("path", tmp).Float64("offset_sec", offset).Msg("extracting thumbnail frame")

	if err := o.extractor.ExtractFrame(ctx, job.VideoPath, offset, tmp); err != nil {
		_ = os.Remove(tmp)
		return "", noop, err
	}
	return tmp, func() { _ = os.Remove(tmp) }, nil
}

// pollUntilReady calls the status endpoint at a fixed interval until the
// video reaches a terminal state or maxWait elapses. A timeout is not an
// error: the last observed status is handed back and the caller detects
// the timeout by inspecting it.
func (o *Orchestrator) pollUntilReady(ctx context.Context, video domain.VideoID, interval, maxWait time.Duration, progress domain.ProgressFunc) (*domain.VideoStatusResult, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}
	deadline := time.Now().Add(maxWait)

	for {
		status, err := o.platform.GetStatus(ctx, video)
		if err != nil {
			return nil, err
		}
		if status.Status.Terminal() {
			return status, nil
		}
		emit(progress, domain.PhaseWaitingForProcessing,
			fmt.Sprintf("transcoding %d%%", status.Progress), 85)

		if !time.Now().Before(deadline) {
			return status, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// emit invokes the progress callback when one is set.
func emit(p domain.ProgressFunc, phase domain.Phase, message string, percent int) {
	if p != nil {
		p(phase, message, percent)
	}
}
