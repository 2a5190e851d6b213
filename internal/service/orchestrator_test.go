package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"gjwuploader/internal/core/domain"
)

// stubPlatform implements ports.MediaPlatform with scriptable behavior.
type stubPlatform struct {
	tokenCalls  int
	statusCalls int

	thumbnailPaths []string
	draftErr       error
	statusSeq      []*domain.VideoStatusResult
	statusErr      error
}

func (s *stubPlatform) EnsureUploadToken(ctx context.Context) (string, error) {
	s.tokenCalls++
	return "up-tok", nil
}

func (s *stubPlatform) UploadThumbnail(ctx context.Context, imagePath string, sizes []int) (*domain.ThumbnailResult, error) {
	s.thumbnailPaths = append(s.thumbnailPaths, imagePath)
	return &domain.ThumbnailResult{
		ImageID: "img-1",
		URLs:    []string{"https://cdn.example.com/672.webp", "https://cdn.example.com/1280.webp"},
		URL672:  "https://cdn.example.com/672.webp",
		URL1280: "https://cdn.example.com/1280.webp",
	}, nil
}

func (s *stubPlatform) CreateDraft(ctx context.Context, channel domain.ChannelID, meta domain.VideoMetadata, posterURL, posterHDURL string) (*domain.ContentResult, error) {
	if s.draftErr != nil {
		return nil, s.draftErr
	}
	return &domain.ContentResult{ID: "ct-1", OwnerID: channel, Title: meta.Title}, nil
}

func (s *stubPlatform) UploadVideo(ctx context.Context, videoPath string, channel domain.ChannelID, content domain.ContentID) (*domain.VideoUploadResult, error) {
	return &domain.VideoUploadResult{VideoID: "vid-1", Filename: filepath.Base(videoPath)}, nil
}

func (s *stubPlatform) GetStatus(ctx context.Context, video domain.VideoID) (*domain.VideoStatusResult, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	idx := s.statusCalls
	s.statusCalls++
	if idx >= len(s.statusSeq) {
		idx = len(s.statusSeq) - 1
	}
	return s.statusSeq[idx], nil
}

// stubExtractor fakes ffmpeg by writing a placeholder jpeg.
type stubExtractor struct {
	available bool
	calls     int
}

func (s *stubExtractor) Available() bool { return s.available }

func (s *stubExtractor) ExtractFrame(ctx context.Context, videoPath string, offsetSec float64, outPath string) error {
	s.calls++
	return os.WriteFile(outPath, []byte{0xff, 0xd8, 0xff}, 0644)
}

func testOrchestrator(platform *stubPlatform, extractor *stubExtractor) *Orchestrator {
	return NewOrchestrator(platform, extractor, zerolog.New(io.Discard))
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("stub"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func inProgress(pct int) *domain.VideoStatusResult {
	return &domain.VideoStatusResult{VideoID: "vid-1", Status: domain.StatusInProgress, Progress: pct}
}

func processed() *domain.VideoStatusResult {
	return &domain.VideoStatusResult{
		VideoID:  "vid-1",
		Status:   domain.StatusProcessed,
		Progress: 100,
		Media:    &domain.MediaInfo{StreamURL: "https://stream.example.com/master.m3u8"},
	}
}

func baseJob(t *testing.T) UploadJob {
	return UploadJob{
		VideoPath:     writeFile(t, "clip.mp4"),
		ThumbnailPath: writeFile(t, "cover.jpg"),
		Channel:       "ch-1",
		Metadata: domain.VideoMetadata{
			Title:      "Clip",
			Category:   domain.CategoryTravel,
			Visibility: domain.VisibilityPublic,
		},
		PollInterval: time.Millisecond,
		MaxWait:      time.Second,
	}
}

func TestUploadAssetsHappyPath(t *testing.T) {
	platform := &stubPlatform{}
	o := testOrchestrator(platform, &stubExtractor{})

	var phases []domain.Phase
	var percents []int
	job := baseJob(t)
	job.Progress = func(phase domain.Phase, message string, percent int) {
		phases = append(phases, phase)
		percents = append(percents, percent)
	}

	res, err := o.UploadAssets(context.Background(), job)
	if err != nil {
		t.Fatalf("upload assets: %v", err)
	}
	if res.Content.ID != domain.ContentID("ct-1") || res.Video.VideoID != domain.VideoID("vid-1") {
		t.Fatalf("results = %+v", res)
	}

	wantPhases := []domain.Phase{
		domain.PhaseGettingToken,
		domain.PhaseUploadingThumbnail,
		domain.PhaseCreatingDraft,
		domain.PhaseUploadingVideo,
	}
	if len(phases) != len(wantPhases) {
		t.Fatalf("phases = %v", phases)
	}
	for i := range wantPhases {
		if phases[i] != wantPhases[i] {
			t.Fatalf("phase[%d] = %q, want %q", i, phases[i], wantPhases[i])
		}
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] <= percents[i-1] {
			t.Fatalf("percent not increasing: %v", percents)
		}
	}
}

func TestUploadAssetsVideoMissing(t *testing.T) {
	o := testOrchestrator(&stubPlatform{}, &stubExtractor{})
	job := baseJob(t)
	job.VideoPath = filepath.Join(t.TempDir(), "absent.mp4")

	_, err := o.UploadAssets(context.Background(), job)
	if !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestUploadAssetsThumbnailRequired(t *testing.T) {
	o := testOrchestrator(&stubPlatform{}, &stubExtractor{available: true})
	job := baseJob(t)
	job.ThumbnailPath = ""
	job.AutoExtract = false

	_, err := o.UploadAssets(context.Background(), job)
	if !errors.Is(err, domain.ErrThumbnailRequired) {
		t.Fatalf("expected ErrThumbnailRequired, got %v", err)
	}
}

func TestUploadAssetsExtractorUnavailable(t *testing.T) {
	o := testOrchestrator(&stubPlatform{}, &stubExtractor{available: false})
	job := baseJob(t)
	job.ThumbnailPath = ""
	job.AutoExtract = true

	_, err := o.UploadAssets(context.Background(), job)
	if !errors.Is(err, domain.ErrExtractorUnavailable) {
		t.Fatalf("expected ErrExtractorUnavailable, got %v", err)
	}
}

func TestUploadAssetsExtractsAndCleansUpTempThumbnail(t *testing.T) {
	platform := &stubPlatform{}
	extractor := &stubExtractor{available: true}
	o := testOrchestrator(platform, extractor)

	job := baseJob(t)
	job.ThumbnailPath = ""
	job.AutoExtract = true

	if _, err := o.UploadAssets(context.Background(), job); err != nil {
		t.Fatalf("upload assets: %v", err)
	}
	if extractor.calls != 1 {
		t.Fatalf("extractor calls = %d", extractor.calls)
	}
	if len(platform.thumbnailPaths) != 1 {
		t.Fatalf("thumbnail uploads = %d", len(platform.thumbnailPaths))
	}
	if _, err := os.Stat(platform.thumbnailPaths[0]); !os.IsNotExist(err) {
		t.Fatalf("temp thumbnail %s should be removed after the workflow", platform.thumbnailPaths[0])
	}
}

func TestUploadAssetsCleansUpTempThumbnailOnFailure(t *testing.T) {
	platform := &stubPlatform{draftErr: fmt.Errorf("boom")}
	extractor := &stubExtractor{available: true}
	o := testOrchestrator(platform, extractor)

	job := baseJob(t)
	job.ThumbnailPath = ""
	job.AutoExtract = true

	if _, err := o.UploadAssets(context.Background(), job); err == nil {
		t.Fatalf("expected draft error")
	}
	if len(platform.thumbnailPaths) != 1 {
		t.Fatalf("thumbnail uploads = %d", len(platform.thumbnailPaths))
	}
	if _, err := os.Stat(platform.thumbnailPaths[0]); !os.IsNotExist(err) {
		t.Fatalf("temp thumbnail should be removed on the failure path too")
	}
}

func TestUploadAssetsAllOrNothing(t *testing.T) {
	platform := &stubPlatform{draftErr: fmt.Errorf("draft rejected")}
	o := testOrchestrator(platform, &stubExtractor{})

	res, err := o.UploadAssets(context.Background(), baseJob(t))
	if err == nil {
		t.Fatalf("expected error")
	}
	if res != nil {
		t.Fatalf("no partial results on failure, got %+v", res)
	}
}

func TestPollUntilReadyStopsAtTerminalStatus(t *testing.T) {
	const n = 3
	platform := &stubPlatform{statusSeq: []*domain.VideoStatusResult{
		inProgress(10), inProgress(40), inProgress(80), processed(),
	}}
	o := testOrchestrator(platform, &stubExtractor{})

	res, err := o.pollUntilReady(context.Background(), "vid-1", time.Millisecond, time.Minute, nil)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if res.Status != domain.StatusProcessed {
		t.Fatalf("status = %q", res.Status)
	}
	if platform.statusCalls != n+1 {
		t.Fatalf("status calls = %d, want %d", platform.statusCalls, n+1)
	}
}

func TestPollUntilReadyTimeoutReturnsLastStatus(t *testing.T) {
	platform := &stubPlatform{statusSeq: []*domain.VideoStatusResult{inProgress(55)}}
	o := testOrchestrator(platform, &stubExtractor{})

	start := time.Now()
	res, err := o.pollUntilReady(context.Background(), "vid-1", 5*time.Millisecond, 30*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("timeout is not an error, got %v", err)
	}
	if res.Status != domain.StatusInProgress || res.Progress != 55 {
		t.Fatalf("expected last observed non-terminal status, got %+v", res)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("returned before maxWait elapsed: %v", elapsed)
	}
}

func TestPollUntilReadyStopsOnFailedStatus(t *testing.T) {
	platform := &stubPlatform{statusSeq: []*domain.VideoStatusResult{
		inProgress(10),
		{VideoID: "vid-1", Status: domain.StatusFailed},
	}}
	o := testOrchestrator(platform, &stubExtractor{})

	res, err := o.pollUntilReady(context.Background(), "vid-1", time.Millisecond, time.Minute, nil)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if res.Status != domain.StatusFailed {
		t.Fatalf("status = %q", res.Status)
	}
	if platform.statusCalls != 2 {
		t.Fatalf("status calls = %d", platform.statusCalls)
	}
}

func TestUploadCompleteWaitsForProcessing(t *testing.T) {
	platform := &stubPlatform{statusSeq: []*domain.VideoStatusResult{inProgress(50), processed()}}
	o := testOrchestrator(platform, &stubExtractor{})

	var finalPercent int
	job := baseJob(t)
	job.WaitForProcessing = true
	job.Progress = func(phase domain.Phase, message string, percent int) { finalPercent = percent }

	res, err := o.UploadComplete(context.Background(), job)
	if err != nil {
		t.Fatalf("upload complete: %v", err)
	}
	if res.Phase != domain.PhaseCompleted {
		t.Fatalf("phase = %q", res.Phase)
	}
	if res.WebURL != "https://www.ganjingworld.com/video/ct-1" {
		t.Fatalf("web url = %q", res.WebURL)
	}
	if res.StreamURL != "https://stream.example.com/master.m3u8" {
		t.Fatalf("stream url = %q", res.StreamURL)
	}
	if res.CompletedAt.IsZero() {
		t.Fatalf("completed-at not stamped")
	}
	if finalPercent != 100 {
		t.Fatalf("final progress = %d", finalPercent)
	}
}

func TestUploadCompleteSnapshotWithoutWaiting(t *testing.T) {
	platform := &stubPlatform{statusSeq: []*domain.VideoStatusResult{inProgress(20)}}
	o := testOrchestrator(platform, &stubExtractor{})

	job := baseJob(t)
	job.WaitForProcessing = false

	res, err := o.UploadComplete(context.Background(), job)
	if err != nil {
		t.Fatalf("upload complete: %v", err)
	}
	if platform.statusCalls != 1 {
		t.Fatalf("status calls = %d, want a single snapshot", platform.statusCalls)
	}
	if res.Status.Status != domain.StatusInProgress {
		t.Fatalf("status = %q", res.Status.Status)
	}
	if res.StreamURL != "" {
		t.Fatalf("stream url should be empty before processing finishes")
	}
}

func TestUploadForcesExtractionAndWaiting(t *testing.T) {
	platform := &stubPlatform{statusSeq: []*domain.VideoStatusResult{processed()}}
	extractor := &stubExtractor{available: true}
	o := testOrchestrator(platform, extractor)

	job := baseJob(t)
	job.ThumbnailPath = ""
	job.AutoExtract = false
	job.WaitForProcessing = false

	res, err := o.Upload(context.Background(), job)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if extractor.calls != 1 {
		t.Fatalf("extractor calls = %d", extractor.calls)
	}
	if platform.statusCalls == 0 {
		t.Fatalf("upload must wait for processing")
	}
	if res.Phase != domain.PhaseCompleted {
		t.Fatalf("phase = %q", res.Phase)
	}
}

func TestPollUntilReadyPropagatesStatusError(t *testing.T) {
	platform := &stubPlatform{statusErr: fmt.Errorf("network down")}
	o := testOrchestrator(platform, &stubExtractor{})

	_, err := o.pollUntilReady(context.Background(), "vid-1", time.Millisecond, time.Minute, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
}
