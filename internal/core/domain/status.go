package domain

// ProcessingStatus is the transcoding state of an uploaded video.
type ProcessingStatus string

const (
	StatusUploading  ProcessingStatus = "uploading"
	StatusInProgress ProcessingStatus = "in_progress"
	StatusProcessed  ProcessingStatus = "processed"
	StatusFailed     ProcessingStatus = "failed"
	StatusUnknown    ProcessingStatus = "unknown"
)

// ParseProcessingStatus maps a raw status string onto the known set.
// Strings the platform has not documented map to StatusUnknown rather
// than failing, so a new upstream state does not break parsing.
func ParseProcessingStatus(s string) ProcessingStatus {
	switch ProcessingStatus(s) {
	case StatusUploading, StatusInProgress, StatusProcessed, StatusFailed:
		return ProcessingStatus(s)
	default:
		return StatusUnknown
	}
}

// Terminal reports whether the status ends the polling loop.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusProcessed || s == StatusFailed
}
