package list

import (
	"testing"
)

func TestPushBack(t *testing.T) {
	v := NewVector[int]()
	if !v.IsValid() || !v.IsEmpty() || v.Cap() != defaultCapacity {
		t.Fatal("bad initial vector")
	}
	for i := 0; i < 40; i++ {
		v.PushBack(i)
	}
	if v.Len() != 40 {
		t.Errorf("len = %d, want 40", v.Len())
	}
	if v.Cap() != 64 {
		t.Errorf("cap = %d, want 64", v.Cap())
	}
	for i := 0; i < 40; i++ {
		if got := *v.Get(i); got != i {
			t.Errorf("get(%d) = %d", i, got)
		}
	}
}

func TestPopBack(t *testing.T) {
	v := NewVector[string]()
	if _, ok := v.PopBack(); ok {
		t.Error("pop from empty vector should fail")
	}
	v.PushBack("a")
	v.PushBack("b")
	if val, ok := v.PopBack(); !ok || val != "b" {
		t.Errorf("pop = %q, %v", val, ok)
	}
	if v.array[1] != "" {
		t.Error("popped slot should be zeroed")
	}
	if v.Len() != 1 {
		t.Errorf("len = %d, want 1", v.Len())
	}
}

func TestAccessors(t *testing.T) {
	v := NewVector[int]()
	if v.Front() != nil || v.Back() != nil || v.Get(-1) != nil {
		t.Error("empty vector should not have elements")
	}
	for i := 1; i <= 3; i++ {
		v.PushBack(i * 10)
	}
	if *v.Front() != 10 || *v.Back() != 30 {
		t.Errorf("front=%d back=%d", *v.Front(), *v.Back())
	}
	if !v.Set(1, 99) || *v.Get(1) != 99 {
		t.Error("set failed")
	}
	if v.Set(3, 1) {
		t.Error("set out of bounds should fail")
	}
	sum := 0
	v.ForEach(func(i int, val int) bool {
		sum += val
		return i < 1
	})
	if sum != 109 {
		t.Errorf("ForEach sum = %d, want 109", sum)
	}
}

func TestResizeAndClear(t *testing.T) {
	v := NewVector[int]()
	for i := 0; i < 10; i++ {
		v.PushBack(i)
	}
	v.Resize(4)
	if v.Len() != 4 || v.Cap() != 4 || *v.Back() != 3 {
		t.Errorf("after shrink: len=%d cap=%d", v.Len(), v.Cap())
	}
	v.Clear()
	if !v.IsEmpty() || v.Cap() != 4 || v.array[0] != 0 {
		t.Error("clear should zero elements and keep capacity")
	}
	v.Free()
	if v.IsValid() {
		t.Error("vector should be invalid after free")
	}
}
