package tracker

import (
	"errors"
	"sync"

	"github.com/mauv0809/courtside/internal/volleyball"
)

// CourtSize is the number of on-court positions.
const CourtSize = 6

const empty = -1

var (
	// ErrInvalidSlot is returned when a slot index is outside 0..CourtSize-1.
	ErrInvalidSlot = errors.New("invalid court slot")
	// ErrDuplicateRecord is returned when the roster holds the same id twice.
	ErrDuplicateRecord = errors.New("duplicate record id in roster")
)

// Tracker partitions a fixed roster into six court slots and a bench, and
// routes counter edits to the player in the selected slot.
//
// Records live in a single arena; court and bench only hold arena indexes.
// It is safe for concurrent use.
type Tracker struct {
	mu sync.Mutex

	records []volleyball.Record
	index   map[string]int
	court   [CourtSize]int
	bench   []int

	selectedSlot  int
	selectedBench string

	dirty    bool
	revision uint64
	stats    []volleyball.Stat
}

// SlotView is the presentation state of one court slot.
type SlotView struct {
	Index    int    `json:"index"`
	PlayerID string `json:"playerId,omitempty"`
	Name     string `json:"name,omitempty"`
	Selected bool   `json:"selected"`
}

// BenchView is the presentation state of one benched player.
type BenchView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// CounterView is one live counter of the selected occupant.
type CounterView struct {
	Key          volleyball.StatKey `json:"key"`
	Label        string             `json:"label"`
	Value        int                `json:"value"`
	CanIncrement bool               `json:"canIncrement"`
	CanDecrement bool               `json:"canDecrement"`
}

// View is a read snapshot for the presentation layer. It shares no memory
// with the tracker.
type View struct {
	Slots           []SlotView         `json:"slots"`
	Bench           []BenchView        `json:"bench"`
	SelectedSlot    *int               `json:"selectedSlot"`
	SelectedBenchID string             `json:"selectedBenchId,omitempty"`
	Occupant        *volleyball.Record `json:"occupant"`
	Counters        []CounterView      `json:"counters"`
	Dirty           bool               `json:"dirty"`
}

// SaveState is what the persistence collaborator reads.
type SaveState struct {
	Records  []volleyball.Record
	Dirty    bool
	Revision uint64
}
