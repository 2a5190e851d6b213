package ganjing

import (
	"encoding/json"
	"strconv"
	"strings"

	"gjwuploader/internal/core/domain"
)

// Result codes the platform treats as success inside a result envelope.
var okResultCodes = map[int]struct{}{0: {}, 200000: {}, 201000: {}}

// checkAPIError inspects a 2xx response body for the platform's various
// ways of reporting a logical failure. It must run before any field-level
// parsing: the platform happily returns HTTP 200 with an error encoded in
// the body.
func checkAPIError(raw []byte) error {
	var probe struct {
		Error      json.RawMessage `json:"error"`
		StatusCode int             `json:"status_code"`
		Result     *struct {
			ResultCode int `json:"result_code"`
		} `json:"result"`
		Message string          `json:"message"`
		Code    json.RawMessage `json:"code"`
		Msg     string          `json:"msg"`
		Data    json.RawMessage `json:"data"`
		Body    json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return domain.MalformedEnvelope("response is not a JSON object")
	}

	if present(probe.Error) {
		code := ""
		if probe.StatusCode != 0 {
			code = strconv.Itoa(probe.StatusCode)
		}
		return &domain.APIError{Code: code, Message: rawToString(probe.Error)}
	}
	if probe.Result != nil {
		if _, ok := okResultCodes[probe.Result.ResultCode]; !ok {
			return &domain.APIError{
				Code:    strconv.Itoa(probe.Result.ResultCode),
				Message: "request rejected by platform",
			}
		}
	}
	if probe.Message != "" && present(probe.Code) {
		return &domain.APIError{Code: rawToString(probe.Code), Message: probe.Message}
	}
	if probe.Msg != "" && probe.Msg != "success" {
		return &domain.APIError{Message: probe.Msg}
	}
	if probe.Data == nil && probe.Body == nil {
		return &domain.APIError{Message: "response carries neither data nor body payload"}
	}
	if probe.Data != nil && string(probe.Data) == "null" {
		return &domain.APIError{Message: "response data payload is null"}
	}
	return nil
}

// present distinguishes an absent key (nil) from a present-but-null one.
func present(raw json.RawMessage) bool {
	return raw != nil && string(raw) != "null"
}

func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func dataEnvelope(raw []byte) (json.RawMessage, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, domain.MalformedEnvelope("response is not a JSON object")
	}
	if !present(env.Data) {
		return nil, domain.MalformedEnvelope(`response has no "data" envelope`)
	}
	return env.Data, nil
}

func bodyEnvelope(raw []byte) (json.RawMessage, error) {
	var env struct {
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, domain.MalformedEnvelope("response is not a JSON object")
	}
	if !present(env.Body) {
		return nil, domain.MalformedEnvelope(`response has no "body" envelope`)
	}
	return env.Body, nil
}

func parseUploadToken(raw []byte) (string, error) {
	data, err := dataEnvelope(raw)
	if err != nil {
		return "", err
	}
	var payload struct {
		Token *string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", domain.MalformedEnvelope("data envelope is not an object")
	}
	if payload.Token == nil || *payload.Token == "" {
		return "", domain.MissingField("data.token")
	}
	return *payload.Token, nil
}

func parseAccessCredentials(raw []byte) (*domain.AccessCredentials, error) {
	data, err := dataEnvelope(raw)
	if err != nil {
		return nil, err
	}
	var payload struct {
		UserID       *string `json:"user_id"`
		Token        *string `json:"token"`
		RefreshToken *string `json:"refresh_token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, domain.MalformedEnvelope("data envelope is not an object")
	}
	if payload.UserID == nil {
		return nil, domain.MissingField("data.user_id")
	}
	if payload.Token == nil || *payload.Token == "" {
		return nil, domain.MissingField("data.token")
	}
	if payload.RefreshToken == nil {
		return nil, domain.MissingField("data.refresh_token")
	}
	return &domain.AccessCredentials{
		UserID:       *payload.UserID,
		Token:        *payload.Token,
		RefreshToken: *payload.RefreshToken,
	}, nil
}

func parseThumbnail(raw []byte) (*domain.ThumbnailResult, error) {
	body, err := bodyEnvelope(raw)
	if err != nil {
		return nil, err
	}
	var payload struct {
		ImageID       *string  `json:"image_id"`
		Filename      *string  `json:"filename"`
		ImageURL      []string `json:"image_url"`
		AnalyzedScore *struct {
			RawScore float64 `json:"raw_score"`
		} `json:"analyzed_score"`
		Extension string `json:"extension"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.MalformedEnvelope("body envelope is not an object")
	}
	if payload.ImageID == nil || *payload.ImageID == "" {
		return nil, domain.MissingField("body.image_id")
	}
	if payload.Filename == nil {
		return nil, domain.MissingField("body.filename")
	}
	if payload.ImageURL == nil {
		return nil, domain.MissingField("body.image_url")
	}

	res := &domain.ThumbnailResult{
		ImageID:   domain.ImageID(*payload.ImageID),
		Filename:  *payload.Filename,
		URLs:      payload.ImageURL,
		Extension: payload.Extension,
	}
	if payload.AnalyzedScore != nil {
		res.Score = payload.AnalyzedScore.RawScore
	}
	// Classify URL variants into the three convenience slots by substring,
	// first match wins per slot. A slot left empty just means the platform
	// did not generate that size.
	for _, u := range payload.ImageURL {
		if res.URL672 == "" && strings.Contains(u, "672.webp") {
			res.URL672 = u
		}
		if res.URL1280 == "" && strings.Contains(u, "1280.webp") {
			res.URL1280 = u
		}
		if res.URL1920 == "" && strings.Contains(u, "1920.webp") {
			res.URL1920 = u
		}
	}
	return res, nil
}

func parseContent(raw []byte) (*domain.ContentResult, error) {
	data, err := dataEnvelope(raw)
	if err != nil {
		return nil, err
	}
	var payload struct {
		ID            *string `json:"id"`
		OwnerID       *string `json:"owner_id"`
		Type          string  `json:"type"`
		CategoryID    string  `json:"category_id"`
		Slug          string  `json:"slug"`
		Title         string  `json:"title"`
		Description   string  `json:"description"`
		Visibility    string  `json:"visibility"`
		PosterURL     string  `json:"poster_url"`
		PosterHDURL   string  `json:"poster_hd_url"`
		CreatedAt     string  `json:"created_at"`
		TimeScheduled string  `json:"time_scheduled"`
		ViewCount     int     `json:"view_count"`
		LikeCount     int     `json:"like_count"`
		SaveCount     int     `json:"save_count"`
		CommentCount  int     `json:"comment_count"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, domain.MalformedEnvelope("data envelope is not an object")
	}
	if payload.ID == nil || *payload.ID == "" {
		return nil, domain.MissingField("data.id")
	}
	if payload.OwnerID == nil || *payload.OwnerID == "" {
		return nil, domain.MissingField("data.owner_id")
	}
	return &domain.ContentResult{
		ID:            domain.ContentID(*payload.ID),
		OwnerID:       domain.ChannelID(*payload.OwnerID),
		Type:          payload.Type,
		CategoryID:    payload.CategoryID,
		Slug:          payload.Slug,
		Title:         payload.Title,
		Description:   payload.Description,
		Visibility:    domain.Visibility(payload.Visibility),
		PosterURL:     payload.PosterURL,
		PosterHDURL:   payload.PosterHDURL,
		CreatedAt:     payload.CreatedAt,
		TimeScheduled: payload.TimeScheduled,
		ViewCount:     payload.ViewCount,
		LikeCount:     payload.LikeCount,
		SaveCount:     payload.SaveCount,
		CommentCount:  payload.CommentCount,
	}, nil
}

func parseVideoUpload(raw []byte) (*domain.VideoUploadResult, error) {
	body, err := bodyEnvelope(raw)
	if err != nil {
		return nil, err
	}
	var payload struct {
		VideoID  *string `json:"video_id"`
		Filename *string `json:"filename"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.MalformedEnvelope("body envelope is not an object")
	}
	if payload.VideoID == nil || *payload.VideoID == "" {
		return nil, domain.MissingField("body.video_id")
	}
	if payload.Filename == nil {
		return nil, domain.MissingField("body.filename")
	}
	return &domain.VideoUploadResult{
		VideoID:  domain.VideoID(*payload.VideoID),
		Filename: *payload.Filename,
	}, nil
}

// parseStatus decodes a status response. The platform drops the status
// field from the body once transcoding finishes, so an absent status is
// read as processed at 100% rather than as an error. Observed upstream
// behavior, not formally documented; could change without notice.
func parseStatus(raw []byte) (*domain.VideoStatusResult, error) {
	body, err := bodyEnvelope(raw)
	if err != nil {
		return nil, err
	}
	var payload struct {
		VideoID     *string `json:"video_id"`
		Filename    string  `json:"filename"`
		Status      *string `json:"status"`
		Progress    *int    `json:"progress"`
		URL         string  `json:"url"`
		DurationSec *string `json:"duration_sec"`
		Width       int     `json:"width"`
		Height      int     `json:"height"`
		Loudness    string  `json:"loudness"`
		Thumb       *struct {
			BaseURL string `json:"base_url"`
			Sizes   []int  `json:"sizes"`
		} `json:"thumb"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.MalformedEnvelope("body envelope is not an object")
	}
	if payload.VideoID == nil || *payload.VideoID == "" {
		return nil, domain.MissingField("body.video_id")
	}

	res := &domain.VideoStatusResult{
		VideoID:  domain.VideoID(*payload.VideoID),
		Filename: payload.Filename,
	}
	switch {
	case payload.Status == nil:
		res.Status = domain.StatusProcessed
		res.Progress = 100
	default:
		res.Status = domain.ParseProcessingStatus(*payload.Status)
		if payload.Progress != nil {
			res.Progress = *payload.Progress
		} else if res.Status == domain.StatusProcessed {
			res.Progress = 100
		}
	}

	if res.Status == domain.StatusProcessed &&
		(payload.URL != "" || payload.DurationSec != nil || payload.Thumb != nil) {
		media := &domain.MediaInfo{
			StreamURL: payload.URL,
			Width:     payload.Width,
			Height:    payload.Height,
			Loudness:  payload.Loudness,
		}
		if payload.DurationSec != nil {
			d, err := strconv.ParseFloat(*payload.DurationSec, 64)
			if err != nil {
				return nil, &domain.ParseError{Path: "body.duration_sec", Reason: "not a numeric string"}
			}
			media.DurationSec = d
		}
		if payload.Thumb != nil {
			media.Thumb = &domain.ThumbInfo{
				BaseURL: payload.Thumb.BaseURL,
				Sizes:   payload.Thumb.Sizes,
			}
		}
		res.Media = media
	}
	return res, nil
}
