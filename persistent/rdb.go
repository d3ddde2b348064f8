package persistent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hdt3213/rdb/core"
	rdb "github.com/hdt3213/rdb/parser"

	"mpcontainers/datastruct/dict"
	"mpcontainers/lib/logger"
)

var ErrObjectNotFound = errors.New("object not found in rdb file")

// FieldEncoder 将一个 entry 转换为 hash 对象的 field 和 value
type FieldEncoder[K any, V any] func(K, V) (string, []byte)

// FieldDecoder 处理 hash 对象中的一个 field
type FieldDecoder func(field string, value []byte) error

// SaveRDB 将 m 写为 rdb 文件中名为 key 的 hash 对象。
// 先写入同目录下的临时文件，完成后重命名为 filename。
func SaveRDB[K any, V any](filename, key string, m *dict.Table[K, V], encode FieldEncoder[K, V]) error {
	tempFile, err := os.CreateTemp(filepath.Dir(filename), "*.rdb")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tempFile.Name())
	}()
	if err = writeRDB(tempFile, key, m, encode); err != nil {
		_ = tempFile.Close()
		return err
	}
	if err = tempFile.Close(); err != nil {
		return err
	}
	if err = os.Rename(tempFile.Name(), filename); err != nil {
		return err
	}
	logger.Infof("saved %d entries of '%s' to %s", m.Len(), key, filename)
	return nil
}

func writeRDB[K any, V any](file *os.File, key string, m *dict.Table[K, V], encode FieldEncoder[K, V]) error {
	encoderPtr := core.NewEncoder(file).EnableCompress()
	if err := encoderPtr.WriteHeader(); err != nil {
		return err
	}
	auxMap := map[string]string{
		"redis-ver":  "6.0.0",
		"redis-bits": "64",
		"ctime":      strconv.FormatInt(time.Now().Unix(), 10),
		"mp-buckets": strconv.Itoa(m.TotalBuckets()),
	}
	for k, v := range auxMap {
		if err := encoderPtr.WriteAux(k, v); err != nil {
			return err
		}
	}
	if err := encoderPtr.WriteDBHeader(0, 1, 0); err != nil {
		return err
	}
	hash := make(map[string][]byte, m.Len())
	m.ForEach(func(k K, v V) bool {
		field, value := encode(k, v)
		hash[field] = value
		return true
	})
	if err := encoderPtr.WriteHashMapObject(key, hash); err != nil {
		return err
	}
	return encoderPtr.WriteEnd()
}

// LoadRDB 读取 filename 中名为 key 的 hash 对象，对每个 field 调用 decode
func LoadRDB(filename, key string, decode FieldDecoder) error {
	rdbFile, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(rdbFile)
	found := false
	var decodeErr error
	decoder := rdb.NewDecoder(rdbFile)
	err = decoder.Parse(func(obj rdb.RedisObject) bool {
		if obj.GetKey() != key {
			return true
		}
		hashObj, ok := obj.(*rdb.HashObject)
		if !ok {
			decodeErr = fmt.Errorf("'%s' is not a hash object", key)
			return false
		}
		found = true
		for field, value := range hashObj.Hash {
			if decodeErr = decode(field, value); decodeErr != nil {
				return false
			}
		}
		return false
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	if decodeErr != nil {
		return decodeErr
	}
	if !found {
		return ErrObjectNotFound
	}
	return nil
}
