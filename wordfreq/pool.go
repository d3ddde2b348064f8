package wordfreq

import (
	"context"
	"errors"

	pool "github.com/jolestar/go-commons-pool/v2"

	"mpcontainers/datastruct/dict"
)

type countTable = dict.Table[string, int]

// tableFactory 为每个并发计数任务提供临时的 Table，归还时清空但保留桶数组
type tableFactory struct {
	newTable func() *countTable
}

func newTablePool(ctx context.Context, size int, newTable func() *countTable) *pool.ObjectPool {
	cfg := pool.NewDefaultPoolConfig()
	cfg.MaxTotal = size
	cfg.MaxIdle = size
	return pool.NewObjectPool(ctx, &tableFactory{newTable: newTable}, cfg)
}

func (f *tableFactory) MakeObject(_ context.Context) (*pool.PooledObject, error) {
	return pool.NewPooledObject(f.newTable()), nil
}

func (f *tableFactory) DestroyObject(_ context.Context, obj *pool.PooledObject) error {
	m, ok := obj.Object.(*countTable)
	if !ok {
		return errors.New("type mismatch")
	}
	m.Free()
	return nil
}

func (f *tableFactory) ValidateObject(_ context.Context, obj *pool.PooledObject) bool {
	m, ok := obj.Object.(*countTable)
	return ok && m.IsValid()
}

func (f *tableFactory) ActivateObject(_ context.Context, _ *pool.PooledObject) error {
	return nil
}

func (f *tableFactory) PassivateObject(_ context.Context, obj *pool.PooledObject) error {
	m, ok := obj.Object.(*countTable)
	if !ok {
		return errors.New("type mismatch")
	}
	m.Clear()
	return nil
}
