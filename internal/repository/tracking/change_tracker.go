package tracking

import (
	"fmt"
	"reflect"

	"notetaking-be/internal/entity"

	"gorm.io/gorm"
)

type EntityState int

const (
	Detached EntityState = iota
	Unchanged
	Added
	Modified
	Deleted
)

func (s EntityState) String() string {
	switch s {
	case Unchanged:
		return "Unchanged"
	case Added:
		return "Added"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	default:
		return "Detached"
	}
}

// Trackable is any aggregate that embeds entity.Entity.
type Trackable interface {
	Base() *entity.Entity
}

// Persister knows how to write one entity type. Insert returns an assign
// func that copies store-generated keys back onto the entity; it is only
// called once the surrounding transaction has committed.
type Persister interface {
	Table() string
	Key(e Trackable) (interface{}, bool)
	Snapshot(e Trackable) interface{}
	Insert(tx *gorm.DB, e Trackable) (rows int64, assign func(), err error)
	Update(tx *gorm.DB, e Trackable, original interface{}) (int64, error)
}

type Entry struct {
	Entity    Trackable
	State     EntityState
	Persister Persister

	original interface{}
}

// Original is the snapshot taken when the entry was last loaded or committed.
func (e *Entry) Original() interface{} {
	return e.original
}

type ChangeTracker struct {
	entries  []*Entry
	byEntity map[Trackable]*Entry
	identity map[string]*Entry
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		byEntity: make(map[Trackable]*Entry),
		identity: make(map[string]*Entry),
	}
}

func identityKey(p Persister, key interface{}) string {
	return fmt.Sprintf("%s:%v", p.Table(), key)
}

// Attach starts tracking a loaded entity as Unchanged. When an entity with
// the same key is already tracked the tracked instance is returned instead,
// so one unit of work never holds two copies of the same row.
func (t *ChangeTracker) Attach(e Trackable, p Persister) Trackable {
	if entry, ok := t.byEntity[e]; ok {
		return entry.Entity
	}
	if key, ok := p.Key(e); ok {
		if existing, found := t.identity[identityKey(p, key)]; found {
			return existing.Entity
		}
	}

	entry := &Entry{Entity: e, State: Unchanged, Persister: p, original: p.Snapshot(e)}
	t.track(entry)
	return e
}

// Add tracks a new entity; it is inserted on the next SaveChanges.
func (t *ChangeTracker) Add(e Trackable, p Persister) {
	if entry, ok := t.byEntity[e]; ok {
		if entry.State == Deleted {
			entry.State = Modified
		}
		return
	}
	t.track(&Entry{Entity: e, State: Added, Persister: p})
}

// Remove marks a tracked entity Deleted. Removing an entity that was added
// in the same unit of work simply stops tracking it.
func (t *ChangeTracker) Remove(e Trackable, p Persister) {
	entry, ok := t.byEntity[e]
	if !ok {
		entry = &Entry{Entity: e, State: Unchanged, Persister: p, original: p.Snapshot(e)}
		t.track(entry)
	}

	if entry.State == Added {
		t.detach(entry)
		return
	}
	entry.State = Deleted
}

func (t *ChangeTracker) Entry(e Trackable) (*Entry, bool) {
	entry, ok := t.byEntity[e]
	return entry, ok
}

// Entries returns tracked entries in tracking order.
func (t *ChangeTracker) Entries() []*Entry {
	out := make([]*Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// DetectChanges flags Unchanged entries whose mapped row no longer matches
// their snapshot.
func (t *ChangeTracker) DetectChanges() {
	for _, entry := range t.entries {
		if entry.State != Unchanged {
			continue
		}
		if !reflect.DeepEqual(entry.Persister.Snapshot(entry.Entity), entry.original) {
			entry.State = Modified
		}
	}
}

// EntriesWithEvents returns, in tracking order, the entries whose entity
// holds at least one pending domain event.
func (t *ChangeTracker) EntriesWithEvents() []*Entry {
	var out []*Entry
	for _, entry := range t.entries {
		if entry.Entity.Base().HasDomainEvents() {
			out = append(out, entry)
		}
	}
	return out
}

// HasChanges reports whether any entry would be written by a flush.
func (t *ChangeTracker) HasChanges() bool {
	for _, entry := range t.entries {
		if entry.State == Added || entry.State == Modified || entry.State == Deleted {
			return true
		}
	}
	return false
}

// AcceptChanges is called after a successful commit.
func (t *ChangeTracker) AcceptChanges() {
	for _, entry := range t.entries {
		entry.State = Unchanged
		entry.original = entry.Persister.Snapshot(entry.Entity)
		if key, ok := entry.Persister.Key(entry.Entity); ok {
			t.identity[identityKey(entry.Persister, key)] = entry
		}
	}
}

func (t *ChangeTracker) track(entry *Entry) {
	t.entries = append(t.entries, entry)
	t.byEntity[entry.Entity] = entry
	if key, ok := entry.Persister.Key(entry.Entity); ok {
		t.identity[identityKey(entry.Persister, key)] = entry
	}
}

func (t *ChangeTracker) detach(entry *Entry) {
	delete(t.byEntity, entry.Entity)
	if key, ok := entry.Persister.Key(entry.Entity); ok {
		k := identityKey(entry.Persister, key)
		if t.identity[k] == entry {
			delete(t.identity, k)
		}
	}
	for i, e := range t.entries {
		if e == entry {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}
	entry.State = Detached
}
