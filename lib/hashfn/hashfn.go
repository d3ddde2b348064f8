// Package hashfn 提供可以传给 dict.New 的哈希函数
package hashfn

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/dchest/siphash"
	"golang.org/x/exp/constraints"
)

const (
	offset32 = uint32(2166136261)
	prime32  = uint32(16777619)
)

// FNV 是 32 位的 FNV-1 哈希，只考虑字节而不考虑字符
func FNV(key string) uint64 {
	hash := offset32
	for i := 0; i < len(key); i++ {
		hash *= prime32
		hash ^= uint32(key[i])
	}
	return uint64(hash)
}

// Poly31 计算 sum(key[i] * 31^i)
func Poly31(key string) uint64 {
	var hash, n uint64 = 0, 1
	for i := 0; i < len(key); i++ {
		hash += uint64(key[i]) * n
		n *= 31
	}
	return hash
}

// Xorshift 将每个字节混入 xorshift 状态，适合短的定长 key
func Xorshift(key string) uint64 {
	var pool uint64
	for i := 0; i < len(key); i++ {
		pool ^= uint64(key[i])
		pool ^= pool << 13
		pool ^= pool >> 7
		pool ^= pool << 17
	}
	return pool
}

func Identity[T constraints.Integer](key T) uint64 {
	return uint64(key)
}

// SipHasher 是带密钥的 SipHash-2-4，不同的密钥得到不同的桶分布
type SipHasher struct {
	k0 uint64
	k1 uint64
}

func NewSipHasher(key [16]byte) *SipHasher {
	return &SipHasher{
		k0: binary.LittleEndian.Uint64(key[:8]),
		k1: binary.LittleEndian.Uint64(key[8:]),
	}
}

// NewRandomSipHasher 使用随机密钥
func NewRandomSipHasher() *SipHasher {
	var key [16]byte
	if _, err := rand.Read(key[:]); err != nil {
		panic(err)
	}
	return NewSipHasher(key)
}

func (h *SipHasher) Hash(key string) uint64 {
	return siphash.Hash(h.k0, h.k1, []byte(key))
}

// ByName 根据配置中的名字返回字符串哈希函数
func ByName(name string) (func(string) uint64, error) {
	switch name {
	case "", "siphash":
		return NewRandomSipHasher().Hash, nil
	case "fnv":
		return FNV, nil
	case "poly31":
		return Poly31, nil
	case "xorshift":
		return Xorshift, nil
	}
	return nil, fmt.Errorf("unknown hash function '%s'", name)
}
