package ui

import (
	"github.com/bornholm/feedsearch/pkg/search"
)

// State is a snapshot of the search lifecycle. Transitions return a new
// value and never modify the receiver.
type State struct {
	Results []search.Result `json:"results"`
	Loading bool            `json:"loading"`
	Error   string          `json:"error,omitempty"`
}

type View int

const (
	ViewResults View = iota
	ViewLoading
	ViewError
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	default:
		return "results"
	}
}

func InitialState() State {
	return State{
		Results: []search.Result{},
	}
}

// View returns what a render of the state shows. Loading takes precedence
// over the error, which takes precedence over the results.
func (s State) View() View {
	switch {
	case s.Loading:
		return ViewLoading
	case s.Error != "":
		return ViewError
	default:
		return ViewResults
	}
}

func (s State) begin() State {
	return State{
		Results: s.Results,
		Loading: true,
	}
}

// succeed expects results already numbered by the caller.
func (s State) succeed(results []search.Result) State {
	return State{
		Results: results,
	}
}

func (s State) fail(message string) State {
	return State{
		Results: s.Results,
		Error:   message,
	}
}
