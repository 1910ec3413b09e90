package pipeline

// State is the orchestrator's position in one run. Transitions are strictly
// sequential; Failed is terminal and reachable from any non-terminal state.
type State string

const (
	StateIdle       State = "Idle"
	StateAcquiring  State = "Acquiring"
	StateExtracting State = "Extracting"
	StateFiltering  State = "Filtering"
	StateAnalyzing  State = "AnalyzingDefects"
	StateAssembling State = "Assembling"
	StateDone       State = "Done"
	StateFailed     State = "Failed"
)

func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
