package list

const (
	growthRate      = 2
	defaultCapacity = 16
)

// Vector 是容量按倍数增长的动态数组
type Vector[T any] struct {
	array  []T
	length int
}

func NewVector[T any]() *Vector[T] {
	return &Vector[T]{array: make([]T, defaultCapacity)}
}

func (v *Vector[T]) Len() int {
	return v.length
}

func (v *Vector[T]) Cap() int {
	return len(v.array)
}

func (v *Vector[T]) IsEmpty() bool {
	return v.length == 0
}

func (v *Vector[T]) IsValid() bool {
	return v != nil && v.array != nil
}

// Resize 分配新的数组并复制尽可能多的元素，超出新容量的元素被丢弃
func (v *Vector[T]) Resize(capacity int) {
	v.mustBeValid()
	if capacity < 1 {
		panic("Capacity must be positive")
	}
	array := make([]T, capacity)
	v.length = copy(array, v.array[:v.length])
	v.array = array
}

// Clear 将所有元素置零，容量不变
func (v *Vector[T]) Clear() {
	v.mustBeValid()
	var zero T
	for v.length > 0 {
		v.length--
		v.array[v.length] = zero
	}
}

func (v *Vector[T]) Free() {
	v.array = nil
	v.length = 0
}

func (v *Vector[T]) PushBack(val T) {
	v.mustBeValid()
	if v.length >= len(v.array) {
		v.Resize(len(v.array) * growthRate)
	}
	v.array[v.length] = val
	v.length++
}

func (v *Vector[T]) PopBack() (val T, ok bool) {
	v.mustBeValid()
	if v.length == 0 {
		return
	}
	v.length--
	val = v.array[v.length]
	var zero T
	v.array[v.length] = zero
	return val, true
}

// Get 返回下标处元素的引用，越界时返回 nil
func (v *Vector[T]) Get(index int) *T {
	v.mustBeValid()
	if index < 0 || index >= v.length {
		return nil
	}
	return &v.array[index]
}

func (v *Vector[T]) Front() *T {
	return v.Get(0)
}

func (v *Vector[T]) Back() *T {
	return v.Get(v.length - 1)
}

func (v *Vector[T]) Set(index int, val T) bool {
	ref := v.Get(index)
	if ref == nil {
		return false
	}
	*ref = val
	return true
}

func (v *Vector[T]) ForEach(c Consumer[T]) {
	v.mustBeValid()
	for i := 0; i < v.length; i++ {
		if !c(i, v.array[i]) {
			break
		}
	}
}

// Slice 返回共享底层数组的切片，下一次修改 Vector 之后不再有效
func (v *Vector[T]) Slice() []T {
	v.mustBeValid()
	return v.array[:v.length]
}

func (v *Vector[T]) mustBeValid() {
	if v == nil {
		panic("Vector is nil")
	}
	if v.array == nil {
		panic("Vector is invalid")
	}
}
