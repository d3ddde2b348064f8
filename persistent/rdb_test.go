package persistent

import (
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"mpcontainers/datastruct/dict"
)

func encodeCount(word string, count int) (string, []byte) {
	return word, []byte(strconv.Itoa(count))
}

func TestSaveAndLoad(t *testing.T) {
	m := dict.NewComparable[string, int]()
	for i := 0; i < 300; i++ {
		m.Put("word"+strconv.Itoa(i), i)
	}
	filename := filepath.Join(t.TempDir(), "dump.rdb")
	require.NoError(t, SaveRDB(filename, "wordfreq", m, encodeCount))

	loaded := dict.NewComparable[string, int]()
	err := LoadRDB(filename, "wordfreq", func(field string, value []byte) error {
		n, err := strconv.Atoi(string(value))
		if err != nil {
			return err
		}
		loaded.Put(field, n)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, m.Len(), loaded.Len())
	m.ForEach(func(k string, v int) bool {
		got, ok := loaded.Get(k)
		require.True(t, ok, k)
		require.Equal(t, v, got)
		return true
	})
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "dump.rdb")
	m := dict.NewComparable[string, int]()
	m.Put("a", 1)
	require.NoError(t, SaveRDB(filename, "wordfreq", m, encodeCount))

	err := LoadRDB(filename, "markov", func(string, []byte) error { return nil })
	require.ErrorIs(t, err, ErrObjectNotFound)

	bad := errors.New("bad field")
	err = LoadRDB(filename, "wordfreq", func(string, []byte) error { return bad })
	require.ErrorIs(t, err, bad)

	require.Error(t, LoadRDB(filepath.Join(dir, "missing.rdb"), "wordfreq", nil))
}
