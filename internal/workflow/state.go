package workflow

import "fmt"

// State is the lifecycle position of a single workflow run.
type State string

const (
	StateIdle        State = "idle"
	StateValidating  State = "validating"
	StateCompressing State = "compressing"
	StateAnalyzing   State = "analyzing"
	StateGenerating  State = "generating"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// transitions is the allowed edge set of the workflow state machine. The
// image and prompt flows share it; a flow that skips a stage simply never
// visits it. Failed and succeeded are left by an explicit user action
// (resubmit or reset), never automatically.
var transitions = map[State][]State{
	StateIdle:        {StateValidating, StateAnalyzing},
	StateValidating:  {StateCompressing, StateGenerating, StateFailed},
	StateCompressing: {StateIdle, StateFailed},
	StateAnalyzing:   {StateIdle, StateFailed},
	StateGenerating:  {StateSucceeded, StateFailed},
	StateSucceeded:   {StateIdle, StateValidating, StateAnalyzing},
	StateFailed:      {StateIdle, StateValidating, StateAnalyzing},
}

// machine holds the current state and enforces the transition table. Flows
// embed it; they are owned by a single goroutine so there is no locking.
type machine struct {
	state State
}

func newMachine() machine {
	return machine{state: StateIdle}
}

// State reports the current workflow state.
func (m *machine) State() State {
	return m.state
}

func (m *machine) advance(to State) error {
	for _, next := range transitions[m.state] {
		if next == to {
			m.state = to
			return nil
		}
	}
	return fmt.Errorf("illegal workflow transition %s -> %s", m.state, to)
}

func (m *machine) reset() {
	m.state = StateIdle
}
