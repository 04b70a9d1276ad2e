package capture

// State is a phase of the capture state machine.
type State int

const (
	Idle State = iota
	Staging
	ResourceWait
	Rasterizing
	Done
	Failed
)

var stateNames = [...]string{
	Idle:         "idle",
	Staging:      "staging",
	ResourceWait: "resource-wait",
	Rasterizing:  "rasterizing",
	Done:         "done",
	Failed:       "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether s ends an export.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
