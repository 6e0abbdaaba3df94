package interner

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntern(t *testing.T) {
	in := New()

	a := in.Intern("foo")
	b := in.Intern("bar")
	require.NotEqual(t, a, b)
	require.Equal(t, a, in.Intern("foo"))
	require.Equal(t, a, in.InternBytes([]byte("foo")))
	require.Equal(t, "bar", in.Lookup(b))
	require.Equal(t, Empty, in.Intern(""))
	require.Equal(t, 3, in.Len())
}

func TestInternConcurrent(t *testing.T) {
	in := New()

	var wg sync.WaitGroup
	ids := make([][]ID, 8)
	for w := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				ids[w] = append(ids[w], in.Intern(fmt.Sprintf("s%d", i)))
			}
		}()
	}
	wg.Wait()

	for w := 1; w < len(ids); w++ {
		require.Equal(t, ids[0], ids[w])
	}
	require.Equal(t, 101, in.Len())
}

func TestLookupUnknown(t *testing.T) {
	require.Panics(t, func() {
		New().Lookup(42)
	})
}
