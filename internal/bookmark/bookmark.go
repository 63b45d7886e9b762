// Package bookmark holds the per-item save state shown next to every article.
package bookmark

import "errors"

type State string

const (
	Unsaved State = "unsaved"
	Saving  State = "saving"
	Saved   State = "saved"
)

var ErrInvalidTransition = errors.New("invalid bookmark transition")

// Outcome is what the store reported for a save attempt.
type Outcome int

const (
	Inserted Outcome = iota
	Duplicate
	Failed
)

type Machine struct {
	state        State
	folderID     string
	alreadySaved bool
}

func New() *Machine {
	return &Machine{state: Unsaved}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) FolderID() string {
	return m.folderID
}

// AlreadySaved reports whether the item reached Saved through a duplicate insert.
func (m *Machine) AlreadySaved() bool {
	return m.alreadySaved
}

// Select starts a save into folderID. An empty folderID means no folder.
func (m *Machine) Select(folderID string) error {
	if m.state != Unsaved {
		return ErrInvalidTransition
	}
	m.state = Saving
	m.folderID = folderID
	return nil
}

// Resolve finishes a save. Duplicate goes to Saved like a fresh insert; Failed
// returns to Unsaved so the user can retry.
func (m *Machine) Resolve(outcome Outcome) error {
	if m.state != Saving {
		return ErrInvalidTransition
	}
	m.settle(outcome)
	return nil
}

// Settle runs one whole save attempt into folderID on a fresh machine. Used
// where the request carries both the choice and the store's answer.
func Settle(folderID string, outcome Outcome) *Machine {
	m := &Machine{state: Saving, folderID: folderID}
	m.settle(outcome)
	return m
}

func (m *Machine) settle(outcome Outcome) {
	switch outcome {
	case Inserted:
		m.state = Saved
	case Duplicate:
		m.state = Saved
		m.alreadySaved = true
	default:
		m.state = Unsaved
		m.folderID = ""
	}
}
