package engine

import (
	"github.com/starford/ansuz/internal/bib"
	"github.com/starford/ansuz/internal/fingerprint"
)

// Tracker owns the process-lifetime fingerprint table used for diff-mode
// classification. It starts empty and is rebuilt on every force pass.
// Fingerprints of entries that disappear from the source are never evicted;
// re-adding an identical entry later is treated as unchanged.
type Tracker struct {
	table map[string]string
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{table: make(map[string]string)}
}

// Classify selects the entries requiring processing. With forceAll the
// table is cleared and repopulated and every entry is selected, establishing
// a fresh baseline. Otherwise an entry is selected when its fingerprint is
// new or differs from the recorded one; the table is updated either way so
// a later identical pass is a no-op.
func (t *Tracker) Classify(entries []*bib.Entry, forceAll bool) []*bib.Entry {
	if forceAll {
		t.table = make(map[string]string, len(entries))
		for _, e := range entries {
			t.table[e.Key] = fingerprint.Entry(e)
		}
		return entries
	}

	var selected []*bib.Entry
	for _, e := range entries {
		fp := fingerprint.Entry(e)
		if prev, ok := t.table[e.Key]; !ok || prev != fp {
			selected = append(selected, e)
		}
		t.table[e.Key] = fp
	}
	return selected
}
