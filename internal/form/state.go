// Package form provides the topic form controller: it submits a topic to a
// Generator and tracks which of the status, result and error panels is shown.
//
// The UI state is an explicit tagged union (Idle, Pending, Success, Failure).
// Panel visibility and trigger enablement are derived from it in one place,
// so inconsistent panel combinations cannot be represented.
package form

import "fmt"

// Fallback messages shown on the error panel.
const (
	// FallbackServerMessage is shown when the server reports a failure without a message.
	FallbackServerMessage = "Failed to generate"
	// FallbackMessage is shown when a failure carries no message at all.
	FallbackMessage = "Something went wrong"
)

// Phase identifies the active member of State.
type Phase int

const (
	// PhaseIdle is the initial state: no panel is visible.
	PhaseIdle Phase = iota
	// PhasePending means a submission is in flight.
	PhasePending
	// PhaseSuccess means the last submission produced a downloadable file.
	PhaseSuccess
	// PhaseFailure means the last submission failed.
	PhaseFailure
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhasePending:
		return "PENDING"
	case PhaseSuccess:
		return "SUCCESS"
	case PhaseFailure:
		return "FAILURE"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Result is a successful generation: the file name and where to download it.
type Result struct {
	Filename    string
	DownloadURL string
}

// State is the form's UI state. The zero value is Idle.
// Build values with Idle, Pending, Succeeded and Failed.
type State struct {
	phase   Phase
	result  Result
	message string
}

// Idle returns the idle state.
func Idle() State { return State{phase: PhaseIdle} }

// Pending returns the pending state.
func Pending() State { return State{phase: PhasePending} }

// Succeeded returns the success state carrying r.
func Succeeded(r Result) State { return State{phase: PhaseSuccess, result: r} }

// Failed returns the failure state carrying msg.
func Failed(msg string) State { return State{phase: PhaseFailure, message: msg} }

// Phase returns the active member.
func (s State) Phase() Phase { return s.phase }

// Result returns the generation result when s is a success state.
func (s State) Result() (Result, bool) {
	return s.result, s.phase == PhaseSuccess
}

// Message returns the error message when s is a failure state.
func (s State) Message() (string, bool) {
	return s.message, s.phase == PhaseFailure
}

// Panels reports which panels are visible.
type Panels struct {
	Status bool
	Result bool
	Error  bool
}

// Panels derives panel visibility from the state. At most one panel is visible.
func (s State) Panels() Panels {
	switch s.phase {
	case PhasePending:
		return Panels{Status: true}
	case PhaseSuccess:
		return Panels{Result: true}
	case PhaseFailure:
		return Panels{Error: true}
	default:
		return Panels{}
	}
}

// TriggerDisabled reports whether the submit control is disabled.
func (s State) TriggerDisabled() bool {
	return s.phase == PhasePending
}

// String returns a compact description of the state for logs.
func (s State) String() string {
	switch s.phase {
	case PhaseSuccess:
		return fmt.Sprintf("SUCCESS(%s)", s.result.Filename)
	case PhaseFailure:
		return fmt.Sprintf("FAILURE(%q)", s.message)
	default:
		return s.phase.String()
	}
}
