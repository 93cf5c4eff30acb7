package cleaner

import "strings"

// GateState is the state of one confirmation gate.
type GateState int

const (
	// StatePending means no answer has been given yet.
	StatePending GateState = iota
	// StateApproved means the user answered affirmatively.
	StateApproved
	// StateRejected means the user declined; the caller must skip the
	// mutation and log the cancellation.
	StateRejected
)

// String returns the state name for logging.
func (s GateState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateApproved:
		return "approved"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

// Gate is a single yes/no decision point in front of a mutating action.
type Gate struct {
	state GateState
}

// NewGate returns a gate in the Pending state.
func NewGate() *Gate {
	return &Gate{state: StatePending}
}

// State returns the current state.
func (g *Gate) State() GateState {
	return g.state
}

// Submit feeds one answer line into the gate. Only a case-insensitive
// "y" or "yes" approves; anything else, including an empty line,
// rejects.
func (g *Gate) Submit(answer string) GateState {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "y" || answer == "yes" {
		g.state = StateApproved
	} else {
		g.state = StateRejected
	}
	return g.state
}

// Prompter asks the user one question and returns the raw answer line.
// warning marks amplified second-tier prompts so the UI can render them
// more aggressively.
type Prompter func(question string, warning bool) (string, error)

// Approve runs a single confirmation gate.
func Approve(question string, ask Prompter) (bool, error) {
	answer, err := ask(question, false)
	if err != nil {
		return false, err
	}
	return NewGate().Submit(answer) == StateApproved, nil
}

// ApproveLarge runs the confirmation flow for an operation of the given
// aggregate size. When size reaches threshold, a second independent gate
// with an amplified warning must also approve before the action may run.
// threshold <= 0 disables the second tier.
func ApproveLarge(question, amplified string, size, threshold int64, ask Prompter) (bool, error) {
	ok, err := Approve(question, ask)
	if err != nil || !ok {
		return false, err
	}

	if threshold <= 0 || size < threshold {
		return true, nil
	}

	answer, err := ask(amplified, true)
	if err != nil {
		return false, err
	}
	return NewGate().Submit(answer) == StateApproved, nil
}
