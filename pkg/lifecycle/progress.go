package lifecycle

// Phase names a lifecycle operation's progress checkpoint.
type Phase string

const (
	PhaseValidating  Phase = "validating"
	PhaseUploading   Phase = "uploading"
	PhaseBroadcast   Phase = "broadcasting"
	PhaseSubmitted   Phase = "submitted"
	PhaseConfirmed   Phase = "confirmed"
	PhaseIssuing     Phase = "issuing-credential"
	PhaseCompleted   Phase = "completed"
	PhaseFailed      Phase = "failed"
)

// Progress reports a lifecycle operation's checkpoint, per spec §4.6's
// onProgress contract.
type Progress struct {
	Phase      Phase
	Percentage int
	Message    string
	Details    map[string]interface{}
}

// OnProgress receives progress reports. A nil OnProgress is valid: every
// call site guards against it.
type OnProgress func(Progress)

func report(cb OnProgress, phase Phase, pct int, message string, details map[string]interface{}) {
	if cb == nil {
		return
	}
	cb(Progress{Phase: phase, Percentage: pct, Message: message, Details: details})
}
