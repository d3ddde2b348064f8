package dict

// HashFunc 将 key 映射为哈希值，相等的 key 必须得到相同的哈希值
type HashFunc[K any] func(K) uint64

// EqualsFunc 判断两个 key 或两个 value 是否相等
type EqualsFunc[T any] func(a, b T) bool

// Processor 返回 false 时停止遍历
type Processor[K any, V any] func(K, V) bool

type HashMap[K any, V any] interface {
	Len() int
	IsEmpty() bool
	IsValid() bool
	Get(key K) (value V, ok bool)
	GetRef(key K) *V
	Contains(key K) bool
	ContainsValue(value V) bool
	Put(key K, value V) (inserted bool)
	Remove(key K) (ok bool)
	RemoveValue(value V) int
	Resize(nBuckets int) error
	ForEach(p Processor[K, V])
	Keys() []K
	Clear()
	Free()
}

func Equal[T comparable](a, b T) bool {
	return a == b
}

var _ HashMap[string, int] = (*Table[string, int])(nil)
