package domain

import "time"

// ThumbnailResult is the parsed outcome of a thumbnail upload.
// URL672/URL1280/URL1920 hold the matching entry from URLs when the
// platform generated that size variant; they stay empty otherwise, which
// is not an error.
type ThumbnailResult struct {
	ImageID   ImageID
	Filename  string
	URLs      []string
	URL672    string
	URL1280   string
	URL1920   string
	Score     float64
	Extension string
}

// ContentResult is the parsed outcome of draft creation.
type ContentResult struct {
	ID            ContentID
	OwnerID       ChannelID
	Type          string
	CategoryID    string
	Slug          string
	Title         string
	Description   string
	Visibility    Visibility
	PosterURL     string
	PosterHDURL   string
	CreatedAt     string
	TimeScheduled string
	ViewCount     int
	LikeCount     int
	SaveCount     int
	CommentCount  int
}

// VideoUploadResult is the parsed outcome of a video file upload.
type VideoUploadResult struct {
	VideoID  VideoID
	Filename string
}

// ThumbInfo describes the platform-generated thumbnail set for a
// processed video.
type ThumbInfo struct {
	BaseURL string
	Sizes   []int
}

// MediaInfo carries the fields the status endpoint reports only once a
// video is fully processed. A nil MediaInfo means the platform has not
// published them yet.
type MediaInfo struct {
	StreamURL   string
	DurationSec float64
	Width       int
	Height      int
	Loudness    string
	Thumb       *ThumbInfo
}

// VideoStatusResult is the parsed outcome of a status check.
type VideoStatusResult struct {
	VideoID  VideoID
	Filename string
	Status   ProcessingStatus
	Progress int
	Media    *MediaInfo
}

// UploadToken is a short-lived token gating upload and status calls.
type UploadToken struct {
	Value     string
	ExpiresAt time.Time
}

// Valid reports whether the token exists and has not expired at now.
func (t UploadToken) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// AccessCredentials is the parsed outcome of an access-token refresh.
type AccessCredentials struct {
	UserID       string
	Token        string
	RefreshToken string
}

// CompleteUploadResult aggregates every step of a finished workflow plus
// quick-access ids derived from them.
type CompleteUploadResult struct {
	Thumbnail *ThumbnailResult
	Content   *ContentResult
	Video     *VideoUploadResult
	Status    *VideoStatusResult

	ContentID ContentID
	VideoID   VideoID
	ImageID   ImageID
	WebURL    string
	StreamURL string

	Phase       Phase
	CompletedAt time.Time
}
