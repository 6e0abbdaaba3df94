package interner

import "sync"

// ID identifies an interned string. The zero ID is the empty string.
type ID uint32

// Empty is the ID of the empty string.
const Empty ID = 0

// Interner maps strings to stable integer identifiers. It is safe for
// concurrent use; lookups take a read lock only.
type Interner struct {
	mu      sync.RWMutex
	ids     map[string]ID
	strings []string
}

// New creates an Interner with the empty string pre-interned.
func New() *Interner {
	return &Interner{
		ids:     map[string]ID{"": Empty},
		strings: []string{""},
	}
}

// Intern returns the ID for s, assigning a new one if necessary.
func (in *Interner) Intern(s string) ID {
	in.mu.RLock()
	id, ok := in.ids[s]
	in.mu.RUnlock()
	if ok {
		return id
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[s]; ok {
		return id
	}
	id = ID(len(in.strings))
	in.strings = append(in.strings, s)
	in.ids[s] = id
	return id
}

// InternBytes interns the string form of b.
func (in *Interner) InternBytes(b []byte) ID {
	return in.Intern(string(b))
}

// Lookup returns the string for id. It panics on an id this interner
// never produced.
func (in *Interner) Lookup(id ID) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.strings) {
		panic("interner: unknown id")
	}
	return in.strings[id]
}

// Len reports how many distinct strings have been interned.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings)
}
