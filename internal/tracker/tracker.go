package tracker

import (
	"fmt"

	"github.com/mauv0809/courtside/internal/volleyball"
)

// New builds a tracker over a working copy of roster. Every player starts on
// the bench in roster order and all slots start empty.
func New(roster []volleyball.Record) (*Tracker, error) {
	return NewWithStats(roster, volleyball.DefaultStats)
}

// NewWithStats is New with a custom display stat table.
func NewWithStats(roster []volleyball.Record, stats []volleyball.Stat) (*Tracker, error) {
	t := &Tracker{
		records:      make([]volleyball.Record, len(roster)),
		index:        make(map[string]int, len(roster)),
		bench:        make([]int, 0, len(roster)),
		selectedSlot: empty,
		stats:        append([]volleyball.Stat(nil), stats...),
	}
	copy(t.records, roster)
	for i, rec := range t.records {
		if _, ok := t.index[rec.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
		}
		t.index[rec.ID] = i
		t.bench = append(t.bench, i)
	}
	for i := range t.court {
		t.court[i] = empty
	}
	return t, nil
}

// SelectSlot marks a court slot as selected.
func (t *Tracker) SelectSlot(slot int) error {
	if slot < 0 || slot >= CourtSize {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selectedSlot = slot
	return nil
}

// ClearSlot drops the slot selection.
func (t *Tracker) ClearSlot() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selectedSlot = empty
}

// SelectBenchPlayer marks a bench player as selected. The id is not checked
// here; Substitute ignores ids that are not on the bench.
func (t *Tracker) SelectBenchPlayer(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selectedBench = id
}

// ClearBenchSelection drops the bench selection.
func (t *Tracker) ClearBenchSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selectedBench = ""
}

// occupantLocked returns the arena index of the selected slot's player.
func (t *Tracker) occupantLocked() (int, bool) {
	if t.selectedSlot == empty {
		return 0, false
	}
	idx := t.court[t.selectedSlot]
	return idx, idx != empty
}

// IncrementStat adds one to a counter of the selected occupant. It reports
// false and changes nothing when no occupied slot is selected.
func (t *Tracker) IncrementStat(key volleyball.StatKey) (bool, error) {
	return t.updateStat(key, func(v int) int { return v + 1 })
}

// DecrementStat subtracts one from a counter of the selected occupant,
// flooring at zero.
func (t *Tracker) DecrementStat(key volleyball.StatKey) (bool, error) {
	return t.updateStat(key, func(v int) int { return max(v-1, 0) })
}

func (t *Tracker) updateStat(key volleyball.StatKey, next func(int) int) (bool, error) {
	if _, err := volleyball.ParseStatKey(string(key)); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	idx, ok := t.occupantLocked()
	if !ok {
		return false, nil
	}

	rec := t.records[idx]
	current, err := rec.Get(key)
	if err != nil {
		return false, err
	}
	if err := rec.Set(key, next(current)); err != nil {
		return false, err
	}

	records := make([]volleyball.Record, len(t.records))
	copy(records, t.records)
	records[idx] = rec
	t.records = records
	t.dirty = true
	t.revision++
	return true, nil
}

// Substitute moves the selected bench player into the selected slot. A
// displaced occupant goes to the end of the bench. Without a valid bench
// selection or slot selection it does nothing and reports false.
func (t *Tracker) Substitute() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.selectedSlot == empty {
		return false
	}
	incoming, ok := t.index[t.selectedBench]
	if !ok {
		return false
	}
	benchPos := -1
	for i, idx := range t.bench {
		if idx == incoming {
			benchPos = i
			break
		}
	}
	if benchPos == -1 {
		return false
	}

	displaced := t.court[t.selectedSlot]
	t.court[t.selectedSlot] = incoming
	t.selectedBench = ""

	bench := make([]int, 0, len(t.bench))
	bench = append(bench, t.bench[:benchPos]...)
	bench = append(bench, t.bench[benchPos+1:]...)
	if displaced != empty {
		bench = append(bench, displaced)
	}
	t.bench = bench
	return true
}

// Dirty reports whether counters changed since the last save.
func (t *Tracker) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

// Statistics returns a copy of every record.
func (t *Tracker) Statistics() []volleyball.Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyRecordsLocked()
}

func (t *Tracker) copyRecordsLocked() []volleyball.Record {
	out := make([]volleyball.Record, len(t.records))
	copy(out, t.records)
	return out
}

// SaveState snapshots the records for persistence.
func (t *Tracker) SaveState() SaveState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return SaveState{
		Records:  t.copyRecordsLocked(),
		Dirty:    t.dirty,
		Revision: t.revision,
	}
}

// MarkSaved clears the dirty flag if nothing changed since revision was read.
func (t *Tracker) MarkSaved(revision uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.revision != revision {
		return false
	}
	t.dirty = false
	return true
}

// CourtIDs returns the record id in each slot, "" for empty slots.
func (t *Tracker) CourtIDs() [CourtSize]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var ids [CourtSize]string
	for i, idx := range t.court {
		if idx != empty {
			ids[i] = t.records[idx].ID
		}
	}
	return ids
}

// BenchIDs returns the bench record ids in bench order.
func (t *Tracker) BenchIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, len(t.bench))
	for i, idx := range t.bench {
		ids[i] = t.records[idx].ID
	}
	return ids
}

// View returns the presentation snapshot.
func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	v := View{
		Slots:           make([]SlotView, CourtSize),
		Bench:           make([]BenchView, 0, len(t.bench)),
		SelectedBenchID: t.selectedBench,
		Counters:        make([]CounterView, 0, len(t.stats)),
		Dirty:           t.dirty,
	}
	if t.selectedSlot != empty {
		slot := t.selectedSlot
		v.SelectedSlot = &slot
	}
	for i, idx := range t.court {
		sv := SlotView{Index: i, Selected: i == t.selectedSlot}
		if idx != empty {
			sv.PlayerID = t.records[idx].ID
			sv.Name = t.records[idx].Name
		}
		v.Slots[i] = sv
	}
	for _, idx := range t.bench {
		rec := t.records[idx]
		v.Bench = append(v.Bench, BenchView{ID: rec.ID, Name: rec.Name, Selected: rec.ID == t.selectedBench})
	}

	idx, occupied := t.occupantLocked()
	if occupied {
		rec := t.records[idx]
		v.Occupant = &rec
	}
	for _, stat := range t.stats {
		cv := CounterView{Key: stat.Key, Label: stat.Label}
		if occupied {
			cv.Value, _ = t.records[idx].Get(stat.Key)
			cv.CanIncrement = true
			cv.CanDecrement = cv.Value > 0
		}
		v.Counters = append(v.Counters, cv)
	}
	return v
}
