package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"gjwuploader/internal/core/domain"
)

// Extractor produces single-frame JPEG thumbnails using the local ffmpeg
// binary. It implements ports.FrameExtractor.
type Extractor struct {
	binaryPath string
}

// NewExtractor locates ffmpeg on PATH. An extractor is still returned
// when the binary is missing; Available reports the outcome.
func NewExtractor() *Extractor {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return &Extractor{}
	}
	return &Extractor{binaryPath: path}
}

// Available reports whether ffmpeg exists on this machine.
func (e *Extractor) Available() bool {
	return e.binaryPath != ""
}

// ExtractFrame writes the frame at offsetSec seconds into the video to
// outPath.
func (e *Extractor) ExtractFrame(ctx context.Context, videoPath string, offsetSec float64, outPath string) error {
	if !e.Available() {
		return domain.ErrExtractorUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.binaryPath, frameArgs(videoPath, offsetSec, outPath)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w, stderr: %s", err, stderr.String())
	}
	if _, err := os.Stat(outPath); err != nil {
		return fmt.Errorf("ffmpeg produced no frame at %s", outPath)
	}
	return nil
}

// frameArgs builds the ffmpeg invocation: seek before the input for a fast
// keyframe seek, grab one frame, overwrite the output.
func frameArgs(videoPath string, offsetSec float64, outPath string) []string {
	return []string{
		"-ss", strconv.FormatFloat(offsetSec, 'f', -1, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		"-y",
		outPath,
	}
}
