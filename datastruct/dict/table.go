package dict

import (
	"errors"

	"github.com/dolthub/maphash"
)

var (
	ErrInvalidBucketCount = errors.New("bucket count must be a power of two greater than 1")
	ErrBucketLimit        = errors.New("bucket count exceeds limit")
)

type entry[K any, V any] struct {
	key   K
	value V
	next  *entry[K, V]
}

// Table 是使用拉链法解决冲突的哈希表，不是线程安全的。
// 桶数始终为 2 的整数次幂，下标为 hash(key) & (桶数 - 1)。
type Table[K any, V any] struct {
	buckets      []*entry[K, V]
	totalBuckets int
	usedBuckets  int
	length       int
	maxLoad      float64

	hash        HashFunc[K]
	keyEquals   EqualsFunc[K]
	valueEquals EqualsFunc[V]

	cloneKey     func(K) K
	cloneValue   func(V) V
	releaseKey   func(K)
	releaseValue func(V)
}

func New[K any, V any](hash HashFunc[K], keyEquals EqualsFunc[K], valueEquals EqualsFunc[V], opts ...Option) *Table[K, V] {
	if hash == nil || keyEquals == nil || valueEquals == nil {
		panic("Nil strategy function")
	}
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}
	if !ValidLoadFactor(s.loadFactor) {
		panic("Load factor out of range")
	}
	return &Table[K, V]{
		buckets:      make([]*entry[K, V], DefaultBuckets),
		totalBuckets: DefaultBuckets,
		maxLoad:      s.loadFactor,
		hash:         hash,
		keyEquals:    keyEquals,
		valueEquals:  valueEquals,
		cloneKey:     hookAs[func(K) K](s.keyCloner, "key cloner"),
		cloneValue:   hookAs[func(V) V](s.valueCloner, "value cloner"),
		releaseKey:   hookAs[func(K)](s.keyReleaser, "key releaser"),
		releaseValue: hookAs[func(V)](s.valueReleaser, "value releaser"),
	}
}

// NewComparable 使用 maphash 计算哈希值，使用 == 判断相等
func NewComparable[K comparable, V comparable](opts ...Option) *Table[K, V] {
	hasher := maphash.NewHasher[K]()
	return New[K, V](hasher.Hash, Equal[K], Equal[V], opts...)
}

func (t *Table[K, V]) Len() int {
	t.mustBeValid()
	return t.length
}

func (t *Table[K, V]) IsEmpty() bool {
	t.mustBeValid()
	return t.length == 0
}

func (t *Table[K, V]) IsValid() bool {
	return t != nil && t.buckets != nil
}

func (t *Table[K, V]) TotalBuckets() int {
	t.mustBeValid()
	return t.totalBuckets
}

func (t *Table[K, V]) UsedBuckets() int {
	t.mustBeValid()
	return t.usedBuckets
}

func (t *Table[K, V]) LoadFactor() float64 {
	t.mustBeValid()
	return float64(t.usedBuckets) / float64(t.totalBuckets)
}

func (t *Table[K, V]) Get(key K) (value V, ok bool) {
	if ref := t.GetRef(key); ref != nil {
		return *ref, true
	}
	return
}

// GetRef 返回 value 的引用，下一次修改 Table 之后该引用不再有效
func (t *Table[K, V]) GetRef(key K) *V {
	t.mustBeValid()
	for e := t.buckets[t.indexOf(key)]; e != nil; e = e.next {
		if t.keyEquals(e.key, key) {
			return &e.value
		}
	}
	return nil
}

func (t *Table[K, V]) Contains(key K) bool {
	return t.GetRef(key) != nil
}

func (t *Table[K, V]) ContainsValue(value V) bool {
	t.mustBeValid()
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			if t.valueEquals(e.value, value) {
				return true
			}
		}
	}
	return false
}

// Put 在 key 不存在时插入新的 entry 并返回 true，否则覆盖原有的 value 并返回 false
func (t *Table[K, V]) Put(key K, value V) (inserted bool) {
	t.mustBeValid()
	for t.overloaded() && t.totalBuckets < MaxBuckets {
		t.rehash(t.totalBuckets << 1)
	}
	if t.cloneValue != nil {
		value = t.cloneValue(value)
	}
	index := t.indexOf(key)
	head := t.buckets[index]
	for e := head; e != nil; e = e.next {
		if t.keyEquals(e.key, key) {
			old := e.value
			e.value = value
			if t.releaseValue != nil {
				t.releaseValue(old)
			}
			return false
		}
	}
	if t.cloneKey != nil {
		key = t.cloneKey(key)
	}
	t.buckets[index] = &entry[K, V]{
		key:   key,
		value: value,
		next:  head,
	}
	if head == nil {
		t.usedBuckets++
	}
	t.length++
	return true
}

func (t *Table[K, V]) Remove(key K) (ok bool) {
	t.mustBeValid()
	index := t.indexOf(key)
	var prev *entry[K, V]
	for e := t.buckets[index]; e != nil; prev, e = e, e.next {
		if !t.keyEquals(e.key, key) {
			continue
		}
		if prev == nil {
			t.buckets[index] = e.next
		} else {
			prev.next = e.next
		}
		t.release(e)
		if t.buckets[index] == nil {
			t.usedBuckets--
		}
		t.length--
		return true
	}
	return false
}

// RemoveValue 移除所有 value 与给定值相等的 entry，返回移除的个数
func (t *Table[K, V]) RemoveValue(value V) int {
	t.mustBeValid()
	removed := 0
	for i, head := range t.buckets {
		if head == nil {
			continue
		}
		// prev 只指向未被移除的 entry
		var prev *entry[K, V]
		e := head
		for e != nil {
			next := e.next
			if t.valueEquals(e.value, value) {
				if prev == nil {
					t.buckets[i] = next
				} else {
					prev.next = next
				}
				t.release(e)
				removed++
			} else {
				prev = e
			}
			e = next
		}
		if t.buckets[i] == nil {
			t.usedBuckets--
		}
	}
	t.length -= removed
	return removed
}

// Resize 按新的桶数重新分布所有 entry，nBuckets 必须是大于 1 的 2 的整数次幂
func (t *Table[K, V]) Resize(nBuckets int) error {
	t.mustBeValid()
	if nBuckets <= 1 || nBuckets&(nBuckets-1) != 0 {
		return ErrInvalidBucketCount
	}
	if nBuckets > MaxBuckets {
		return ErrBucketLimit
	}
	t.rehash(nBuckets)
	return nil
}

func (t *Table[K, V]) ForEach(p Processor[K, V]) {
	t.mustBeValid()
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			if !p(e.key, e.value) {
				return
			}
		}
	}
}

// ForEachInBucket 按链表顺序遍历下标为 index 的桶
func (t *Table[K, V]) ForEachInBucket(index int, p Processor[K, V]) {
	t.mustBeValid()
	if index < 0 || index >= t.totalBuckets {
		panic("Bucket index out of boundary")
	}
	for e := t.buckets[index]; e != nil; e = e.next {
		if !p(e.key, e.value) {
			return
		}
	}
}

func (t *Table[K, V]) Keys() []K {
	res := make([]K, 0, t.Len())
	t.ForEach(func(key K, _ V) bool {
		res = append(res, key)
		return true
	})
	return res
}

// Clear 销毁所有 entry，保留当前大小的桶数组
func (t *Table[K, V]) Clear() {
	t.mustBeValid()
	for i, head := range t.buckets {
		for e := head; e != nil; {
			next := e.next
			t.release(e)
			e = next
		}
		t.buckets[i] = nil
	}
	t.length = 0
	t.usedBuckets = 0
}

// Free 之后 Table 失效，除 IsValid 外的任何调用都会 panic
func (t *Table[K, V]) Free() {
	t.Clear()
	t.buckets = nil
	t.totalBuckets = 0
}

func (t *Table[K, V]) mustBeValid() {
	if t == nil {
		panic("Nil HashTable")
	}
	if t.buckets == nil {
		panic("HashTable is invalid")
	}
}

func (t *Table[K, V]) indexOf(key K) int {
	return int(t.hash(key) & uint64(t.totalBuckets-1))
}

// overloaded 判断再占用一个桶之后负载因子是否达到上限
func (t *Table[K, V]) overloaded() bool {
	return float64(t.usedBuckets+1)/float64(t.totalBuckets) >= t.maxLoad
}

func (t *Table[K, V]) rehash(nBuckets int) {
	buckets := make([]*entry[K, V], nBuckets)
	mask := uint64(nBuckets - 1)
	used, length := 0, 0
	for _, head := range t.buckets {
		for e := head; e != nil; {
			next := e.next
			index := t.hash(e.key) & mask
			if buckets[index] == nil {
				used++
			}
			e.next = buckets[index]
			buckets[index] = e
			length++
			e = next
		}
	}
	t.buckets = buckets
	t.totalBuckets = nBuckets
	t.usedBuckets = used
	t.length = length
}

func (t *Table[K, V]) release(e *entry[K, V]) {
	if t.releaseKey != nil {
		t.releaseKey(e.key)
	}
	if t.releaseValue != nil {
		t.releaseValue(e.value)
	}
	var zero entry[K, V]
	*e = zero
}
