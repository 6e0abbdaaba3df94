package doc

import "fmt"

// GroupID identifies a group. The zero value means no group.
type GroupID uint32

// Arena hands out group ids for one formatting pass and records the
// mode each group was printed in.
type Arena struct {
	names []string
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewGroupID returns a fresh id. The name is kept for debugging.
func (a *Arena) NewGroupID(name string) GroupID {
	a.names = append(a.names, name)
	return GroupID(len(a.names))
}

// Len returns the number of ids handed out.
func (a *Arena) Len() int {
	return len(a.names)
}

// Name returns the debug name of id.
func (a *Arena) Name(id GroupID) string {
	a.check(id)
	return a.names[id-1]
}

func (a *Arena) check(id GroupID) {
	if id == 0 || int(id) > len(a.names) {
		panic(fmt.Sprintf("doc: group id %d was not produced by this arena", id))
	}
}
