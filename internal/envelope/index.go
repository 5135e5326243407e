package envelope

import (
	"slices"

	"github.com/google/uuid"
)

// Index is an id-keyed view of a user's envelopes. Mutations apply the row the
// backend returned instead of re-fetching the whole collection.
type Index struct {
	byID map[uuid.UUID]*Envelope
}

func NewIndex(envs ...*Envelope) *Index {
	ix := &Index{byID: make(map[uuid.UUID]*Envelope, len(envs))}
	for _, e := range envs {
		ix.Apply(e)
	}

	return ix
}

// Apply inserts or replaces e. A row older than the one held is ignored, and a
// trashed row is dropped.
func (ix *Index) Apply(e *Envelope) {
	if e == nil {
		return
	}

	if e.DeletedAt != nil {
		delete(ix.byID, e.ID)
		return
	}

	if cur, ok := ix.byID[e.ID]; ok && cur.Version > e.Version {
		return
	}

	ix.byID[e.ID] = e
}

func (ix *Index) Remove(id uuid.UUID) {
	delete(ix.byID, id)
}

func (ix *Index) Get(id uuid.UUID) (*Envelope, bool) {
	e, ok := ix.byID[id]
	return e, ok
}

func (ix *Index) Len() int {
	return len(ix.byID)
}

// Sorted returns the envelopes ordered by field, ties broken by id.
func (ix *Index) Sorted(by SortField, ascending bool) []*Envelope {
	out := make([]*Envelope, 0, len(ix.byID))
	for _, e := range ix.byID {
		out = append(out, e)
	}

	slices.SortFunc(out, func(a, b *Envelope) int {
		var c int

		switch by {
		case SortAmount:
			c = a.InitialAmount.Cmp(b.InitialAmount)
		case SortDate:
			c = a.Date.Compare(b.Date)
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}

		if !ascending {
			c = -c
		}

		if c == 0 {
			return slices.Compare(a.ID[:], b.ID[:])
		}

		return c
	})

	return out
}
