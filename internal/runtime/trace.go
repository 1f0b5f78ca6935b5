package runtime

import "github.com/aretw0/argtree/pkg/domain"

// Trace is the append-only log of consumed tokens and the nodes that claimed them.
type Trace struct {
	entries []domain.TraceEntry
}

// NewTrace creates an empty trace sized for n tokens.
func NewTrace(n int) *Trace {
	return &Trace{entries: make([]domain.TraceEntry, 0, n)}
}

// Record appends the token span for index before any node is known.
func (t *Trace) Record(index int, token string) {
	t.entries = append(t.entries, domain.TraceEntry{Index: index, Token: token})
}

// Annotate fills in the identity of the node that matched the token at index.
// Unknown indices are ignored.
func (t *Trace) Annotate(index int, node *domain.Node) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Index == index {
			t.entries[i].NodeID = node.ID
			t.entries[i].Name = node.Name
			t.entries[i].Kind = node.Kind
			return
		}
	}
}

// ResolveBackReference scans backward for the most recent entry whose ID equals ref,
// or whose Name equals ref when the entry has no ID. It returns the distance (in
// entries) from that entry to the last entry of the log.
func (t *Trace) ResolveBackReference(ref string) (int, bool) {
	last := len(t.entries) - 1
	for i := last; i >= 0; i-- {
		e := t.entries[i]
		if !e.Matched() {
			continue
		}
		if e.NodeID == ref || (e.NodeID == "" && e.Name == ref) {
			return last - i, true
		}
	}
	return 0, false
}

// Position returns the positional counter of the token at index, which must be the
// most recently recorded one. Positions are 1-based: without a back-reference the
// first token is slot 1, with one the token right after the referenced match is slot 1.
func (t *Trace) Position(index int, indexedBy string) (int, bool) {
	if indexedBy == "" {
		return index + 1, true
	}
	distance, ok := t.ResolveBackReference(indexedBy)
	if !ok {
		return 0, false
	}
	return distance, true
}

// Len returns the number of recorded entries.
func (t *Trace) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the log.
func (t *Trace) Entries() []domain.TraceEntry {
	return append([]domain.TraceEntry(nil), t.entries...)
}
