package ganjing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gjwuploader/internal/core/domain"
)

// UploadThumbnail uploads an image and asks the platform to generate the
// given resize breakpoints. The whole file is buffered in memory; very
// large files are the caller's concern.
func (c *Client) UploadThumbnail(ctx context.Context, imagePath string, sizes []int) (*domain.ThumbnailResult, error) {
	data, err := readMediaFile(imagePath, "thumbnail")
	if err != nil {
		return nil, err
	}
	token, err := c.EnsureUploadToken(ctx)
	if err != nil {
		return nil, err
	}
	if len(sizes) == 0 {
		sizes = DefaultThumbnailSizes
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return nil, fmt.Errorf("build thumbnail form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build thumbnail form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build thumbnail form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadBaseURL+"/image/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("resizing-list", joinSizes(sizes))

	body, err := c.send(req, "upload thumbnail")
	if err != nil {
		return nil, err
	}
	if err := checkAPIError(body); err != nil {
		return nil, err
	}
	res, err := parseThumbnail(body)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("image_id", res.ImageID.String()).Int("variants", len(res.URLs)).Msg("thumbnail uploaded")
	return res, nil
}

// CreateDraft creates a draft content record on the channel. The metadata
// is validated locally before any request goes out.
func (c *Client) CreateDraft(ctx context.Context, channel domain.ChannelID, meta domain.VideoMetadata, posterURL, posterHDURL string) (*domain.ContentResult, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"channel_id":    channel.String(),
		"type":          "video",
		"category_id":   string(meta.Category),
		"title":         meta.Title,
		"description":   meta.Description,
		"visibility":    string(meta.Visibility),
		"lang":          meta.Language,
		"poster_url":    posterURL,
		"poster_hd_url": posterHDURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/video/create", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	// Draft creation authenticates with the raw access token.
	req.Header.Set("Authorization", c.currentAccessToken())

	respBody, err := c.send(req, "create draft")
	if err != nil {
		return nil, err
	}
	if err := checkAPIError(respBody); err != nil {
		return nil, err
	}
	res, err := parseContent(respBody)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("content_id", res.ID.String()).Str("slug", res.Slug).Msg("draft created")
	return res, nil
}

// UploadVideo uploads the video file and binds it to an existing draft.
func (c *Client) UploadVideo(ctx context.Context, videoPath string, channel domain.ChannelID, content domain.ContentID) (*domain.VideoUploadResult, error) {
	data, err := readMediaFile(videoPath, "video")
	if err != nil {
		return nil, err
	}
	token, err := c.EnsureUploadToken(ctx)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(videoPath)
	meta, err := json.Marshal(map[string]string{
		"filename":   filename,
		"mime_type":  mimeTypeFor(videoPath),
		"channel_id": channel.String(),
		"content_id": content.String(),
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("metadata", string(meta)); err != nil {
		return nil, fmt.Errorf("build video form: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build video form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build video form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build video form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadBaseURL+"/video/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept-Language", c.language)

	body, err := c.send(req, "upload video")
	if err != nil {
		return nil, err
	}
	if err := checkAPIError(body); err != nil {
		return nil, err
	}
	res, err := parseVideoUpload(body)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("video_id", res.VideoID.String()).Str("filename", res.Filename).Msg("video uploaded")
	return res, nil
}

// GetStatus fetches the current transcoding state of a video.
func (c *Client) GetStatus(ctx context.Context, video domain.VideoID) (*domain.VideoStatusResult, error) {
	token, err := c.EnsureUploadToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.uploadBaseURL+"/video/status/"+video.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := c.send(req, "get status")
	if err != nil {
		return nil, err
	}
	if err := checkAPIError(body); err != nil {
		return nil, err
	}
	return parseStatus(body)
}

func readMediaFile(path, kind string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read %s file: %w", kind, err)
	}
	return data, nil
}

func mimeTypeFor(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "video/mp4"
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}
