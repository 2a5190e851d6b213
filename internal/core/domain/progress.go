package domain

// Phase is the orchestrator's position in the upload workflow. Phases are
// strictly ordered; Failed is reachable from any of them.
type Phase string

const (
	PhaseNotStarted           Phase = "not_started"
	PhaseGettingToken         Phase = "getting_token"
	PhaseUploadingThumbnail   Phase = "uploading_thumbnail"
	PhaseCreatingDraft        Phase = "creating_draft"
	PhaseUploadingVideo       Phase = "uploading_video"
	PhaseCheckingStatus       Phase = "checking_status"
	PhaseWaitingForProcessing Phase = "waiting_for_processing"
	PhaseCompleted            Phase = "completed"
	PhaseFailed               Phase = "failed"
)

// ProgressFunc receives workflow progress. It is invoked synchronously at
// each phase transition; percent is in 0-100. A nil ProgressFunc is allowed
// and means no reporting.
type ProgressFunc func(phase Phase, message string, percent int)
