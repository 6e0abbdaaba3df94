package span

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	a := New(4, 8)
	b := New(2, 5)
	require.Equal(t, New(2, 8), a.Join(b))
	require.Equal(t, New(2, 8), b.Join(a))
	require.True(t, New(0, 10).Contains(a))
	require.False(t, a.Contains(b))
	require.True(t, New(0, 2).IsBefore(b))
	require.Equal(t, New(5, 4), b.Between(a))
	require.Equal(t, 4, a.Len())
}

func TestLocate(t *testing.T) {
	src := "<?php\n$a = 1;\n\necho $a;\n"
	lines := NewLines(src)

	require.Equal(t, Location{Line: 1, Column: 1}, lines.Locate(0))
	require.Equal(t, Location{Line: 2, Column: 1}, lines.Locate(6))
	require.Equal(t, Location{Line: 2, Column: 6}, lines.Locate(11))
	require.Equal(t, Location{Line: 4, Column: 6}, lines.Locate(20))
	require.Equal(t, Position(15), lines.LineStart(4))
	require.Equal(t, 5, lines.Count())
}
