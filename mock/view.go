package mock

import (
	"sync"

	"github.com/fwojciec/pagegist"
)

var _ pagegist.View = (*View)(nil)

// Transition is a status update recorded by View.
type Transition struct {
	State   pagegist.State
	Message string
}

// View records every status update and summary it receives.
type View struct {
	mu          sync.Mutex
	transitions []Transition
	summaries   []string
}

func (v *View) SetStatus(state pagegist.State, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.transitions = append(v.transitions, Transition{State: state, Message: message})
}

func (v *View) SetSummary(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.summaries = append(v.summaries, text)
}

// Transitions returns the recorded status updates in order.
func (v *View) Transitions() []Transition {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Transition(nil), v.transitions...)
}

// States returns only the states of the recorded status updates.
func (v *View) States() []pagegist.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]pagegist.State, len(v.transitions))
	for i, tr := range v.transitions {
		out[i] = tr.State
	}
	return out
}

// Summaries returns the recorded summary renders in order.
func (v *View) Summaries() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.summaries...)
}
