package set

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func sorted(s *HashSet) []string {
	res := s.Members()
	sort.Strings(res)
	return res
}

func TestHashSet(t *testing.T) {
	s := NewHashSet("the", "a", "of", "the")
	require.Equal(t, 3, s.Size())
	require.True(t, s.Contains("of"))
	require.False(t, s.Contains("and"))

	require.True(t, s.Add("and"))
	require.False(t, s.Add("and"))
	require.True(t, s.Remove("a"))
	require.False(t, s.Remove("a"))
	require.Equal(t, []string{"and", "of", "the"}, sorted(s))
}

func TestSetAlgebra(t *testing.T) {
	a := NewHashSet("x", "y", "z")
	b := NewHashSet("y", "z", "w")
	require.Equal(t, []string{"y", "z"}, sorted(a.Intersect(b)))
	require.Equal(t, []string{"w", "x", "y", "z"}, sorted(a.Union(b)))
	require.Equal(t, []string{"x"}, sorted(a.Diff(b)))
}
