package dict

const (
	// DefaultBuckets 必须是 2 的整数次幂
	DefaultBuckets    = 16
	DefaultLoadFactor = 0.75
	// MinLoadFactor 限制桶数组最多约为已用桶数的 1024 倍
	MinLoadFactor = 1.0 / 1024
	// MaxBuckets 是自动扩容和 Resize 允许的最大桶数
	MaxBuckets = 1 << 30
)

type Option func(*settings)

type settings struct {
	loadFactor    float64
	keyCloner     any
	valueCloner   any
	keyReleaser   any
	valueReleaser any
}

func defaultSettings() *settings {
	return &settings{loadFactor: DefaultLoadFactor}
}

// ValidLoadFactor 判断 f 是否落在 [MinLoadFactor, 1] 内
func ValidLoadFactor(f float64) bool {
	return f >= MinLoadFactor && f <= 1
}

// WithLoadFactor 设置最大负载因子，取值范围 [MinLoadFactor, 1]
func WithLoadFactor(f float64) Option {
	return func(s *settings) {
		s.loadFactor = f
	}
}

// WithKeyCloner 使 Table 在创建新 entry 时持有 key 的副本
func WithKeyCloner[K any](clone func(K) K) Option {
	return func(s *settings) {
		s.keyCloner = clone
	}
}

// WithValueCloner 使 Table 在每次 Put 时持有 value 的副本
func WithValueCloner[V any](clone func(V) V) Option {
	return func(s *settings) {
		s.valueCloner = clone
	}
}

// WithKeyReleaser 在 entry 被销毁时调用
func WithKeyReleaser[K any](release func(K)) Option {
	return func(s *settings) {
		s.keyReleaser = release
	}
}

// WithValueReleaser 在 value 被覆盖或 entry 被销毁时调用
func WithValueReleaser[V any](release func(V)) Option {
	return func(s *settings) {
		s.valueReleaser = release
	}
}

func hookAs[F any](hook any, name string) F {
	var zero F
	if hook == nil {
		return zero
	}
	f, ok := hook.(F)
	if !ok {
		panic(name + " type mismatch")
	}
	return f
}
