package renderer

// frameState tracks where a frame is in its lifecycle. RenderFrame advances
// through the states in order and returns to frameStateIdle whether the frame
// presented or was skipped; frameStateRecovering is entered when the surface
// is lost and persists until a frame presents or the retry budget runs out.
type frameState int

const (
	frameStateIdle frameState = iota
	frameStateCameraUpdated
	frameStateBatchesCollected
	frameStateUploaded
	frameStateSubmitted
	frameStatePresented
	frameStateRecovering
)

func (s frameState) String() string {
	switch s {
	case frameStateIdle:
		return "idle"
	case frameStateCameraUpdated:
		return "camera_updated"
	case frameStateBatchesCollected:
		return "batches_collected"
	case frameStateUploaded:
		return "uploaded"
	case frameStateSubmitted:
		return "submitted"
	case frameStatePresented:
		return "presented"
	case frameStateRecovering:
		return "recovering"
	default:
		return "unknown"
	}
}
