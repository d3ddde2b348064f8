package list

// Consumer 返回 false 时停止遍历
type Consumer[T any] func(int, T) bool

type List[T any] interface {
	Len() int
	IsEmpty() bool
	IsValid() bool
	PushBack(val T)
	PopBack() (val T, ok bool)
	Get(index int) *T
	Front() *T
	Back() *T
	Set(index int, val T) bool
	ForEach(c Consumer[T])
	Clear()
	Free()
}

var _ List[int] = (*Vector[int])(nil)
