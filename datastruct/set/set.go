package set

import (
	"mpcontainers/datastruct/dict"
	"mpcontainers/lib/hashfn"
)

type Consumer func(string) bool

// HashSet 是基于 dict.Table 的字符串集合
type HashSet struct {
	m *dict.Table[string, struct{}]
}

func NewHashSet(members ...string) *HashSet {
	res := &HashSet{m: dict.New[string, struct{}](hashfn.FNV, dict.Equal[string], dict.Equal[struct{}])}
	for _, str := range members {
		res.Add(str)
	}
	return res
}

func (s *HashSet) Size() int {
	return s.m.Len()
}

func (s *HashSet) Add(val string) (ok bool) {
	return s.m.Put(val, struct{}{})
}

func (s *HashSet) Contains(val string) bool {
	return s.m.Contains(val)
}

func (s *HashSet) Remove(val string) (ok bool) {
	return s.m.Remove(val)
}

func (s *HashSet) ForEach(c Consumer) {
	s.m.ForEach(func(key string, _ struct{}) bool {
		return c(key)
	})
}

func (s *HashSet) Members() []string {
	return s.m.Keys()
}

func (s *HashSet) Intersect(s1 *HashSet) *HashSet {
	if s == nil {
		panic("HashSet is nil")
	}
	res := NewHashSet()
	s.ForEach(func(member string) bool {
		if s1.Contains(member) {
			res.Add(member)
		}
		return true
	})
	return res
}

func (s *HashSet) Union(s1 *HashSet) *HashSet {
	if s == nil {
		panic("HashSet is nil")
	}
	res := NewHashSet()
	addFunc := func(member string) bool {
		res.Add(member)
		return true
	}
	s.ForEach(addFunc)
	s1.ForEach(addFunc)
	return res
}

func (s *HashSet) Diff(s1 *HashSet) *HashSet {
	if s == nil {
		panic("HashSet is nil")
	}
	res := NewHashSet()
	s.ForEach(func(member string) bool {
		if !s1.Contains(member) {
			res.Add(member)
		}
		return true
	})
	return res
}
