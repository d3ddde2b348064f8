// Package wordfreq 统计文本中每个单词出现的次数
package wordfreq

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	pool "github.com/jolestar/go-commons-pool/v2"
	"golang.org/x/sync/errgroup"

	"mpcontainers/config"
	"mpcontainers/datastruct/dict"
	"mpcontainers/datastruct/list"
	"mpcontainers/datastruct/set"
	"mpcontainers/lib/hashfn"
	"mpcontainers/lib/logger"
	"mpcontainers/persistent"
)

const (
	rdbKey     = "wordfreq"
	trimmedSet = ".,;:!?\"'()[]{}<>-_*"
)

type WordCount struct {
	Word  string
	Count int
}

type Counter struct {
	mu        sync.Mutex
	counts    *countTable
	stopWords *set.HashSet
	tables    *pool.ObjectPool
}

// NewCounter 根据 config.Properties 中的哈希函数、负载因子和并发数创建 Counter，
// stopWords 可以为 nil
func NewCounter(ctx context.Context, stopWords *set.HashSet) (*Counter, error) {
	hash, err := hashfn.ByName(config.Properties.Hash)
	if err != nil {
		return nil, err
	}
	loadFactor := config.Properties.LoadFactor
	if !dict.ValidLoadFactor(loadFactor) {
		return nil, fmt.Errorf("load factor %v out of range [%v, 1]", loadFactor, dict.MinLoadFactor)
	}
	workers := config.Properties.Workers
	if workers < 1 {
		workers = 1
	}
	newTable := func() *countTable {
		return dict.New[string, int](hash, dict.Equal[string], dict.Equal[int], dict.WithLoadFactor(loadFactor))
	}
	return &Counter{
		counts:    newTable(),
		stopWords: stopWords,
		tables:    newTablePool(ctx, workers, newTable),
	}, nil
}

// LoadStopWords 读取以空白分隔的停用词
func LoadStopWords(r io.Reader) (*set.HashSet, error) {
	res := set.NewHashSet()
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		if word := normalize(scanner.Text()); word != "" {
			res.Add(word)
		}
	}
	return res, scanner.Err()
}

func normalize(word string) string {
	return strings.ToLower(strings.Trim(word, trimmedSet))
}

func (c *Counter) countInto(m *countTable, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := normalize(scanner.Text())
		if word == "" || c.stopWords != nil && c.stopWords.Contains(word) {
			continue
		}
		if ref := m.GetRef(word); ref != nil {
			*ref++
		} else {
			m.Put(word, 1)
		}
	}
	return scanner.Err()
}

// merge 将 src 中的计数累加到结果中，调用方需持有锁
func (c *Counter) merge(src *countTable) {
	src.ForEach(func(word string, n int) bool {
		if ref := c.counts.GetRef(word); ref != nil {
			*ref += n
		} else {
			c.counts.Put(word, n)
		}
		return true
	})
}

func (c *Counter) CountReader(r io.Reader) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countInto(c.counts, r)
}

// CountFiles 并发统计多个文件，每个文件使用从池中借出的临时 Table
func (c *Counter) CountFiles(ctx context.Context, filenames []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, filename := range filenames {
		filename := filename
		g.Go(func() error {
			return c.countFile(ctx, filename)
		})
	}
	return g.Wait()
}

func (c *Counter) countFile(ctx context.Context, filename string) error {
	obj, err := c.tables.BorrowObject(ctx)
	if err != nil {
		return fmt.Errorf("borrow table: %w", err)
	}
	defer func() {
		if err := c.tables.ReturnObject(ctx, obj); err != nil {
			logger.Warn(err)
		}
	}()
	scratch := obj.(*countTable)
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(file)
	if err = c.countInto(scratch, file); err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	logger.Debugf("%s: %d distinct words in %d buckets", filename, scratch.Len(), scratch.TotalBuckets())
	c.mu.Lock()
	defer c.mu.Unlock()
	c.merge(scratch)
	return nil
}

func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts.Len()
}

func (c *Counter) Count(word string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := c.counts.Get(word)
	return n
}

// Sorted 按次数降序、单词升序排列
func (c *Counter) Sorted() *list.Vector[WordCount] {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := list.NewVector[WordCount]()
	c.counts.ForEach(func(word string, n int) bool {
		res.PushBack(WordCount{Word: word, Count: n})
		return true
	})
	s := res.Slice()
	sort.Slice(s, func(i, j int) bool {
		if s[i].Count != s[j].Count {
			return s[i].Count > s[j].Count
		}
		return s[i].Word < s[j].Word
	})
	return res
}

func (c *Counter) PrintCounts(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var err error
	c.Sorted().ForEach(func(_ int, wc WordCount) bool {
		_, err = fmt.Fprintf(bw, "%s, %d\n", wc.Word, wc.Count)
		return err == nil
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// PrintBuckets 按桶输出所有 entry，用于观察哈希分布
func (c *Counter) PrintBuckets(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintf(bw, "{\n")
	for i := 0; i < c.counts.TotalBuckets(); i++ {
		_, _ = fmt.Fprintf(bw, "\tbucket-%d {\n", i)
		c.counts.ForEachInBucket(i, func(word string, n int) bool {
			_, _ = fmt.Fprintf(bw, "\t\t%s -> %d\n", word, n)
			return true
		})
		_, _ = fmt.Fprintf(bw, "\t}\n")
	}
	_, _ = fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}

func (c *Counter) Save(filename string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return persistent.SaveRDB(filename, rdbKey, c.counts, func(word string, n int) (string, []byte) {
		return word, []byte(strconv.Itoa(n))
	})
}

// Load 将 rdb 文件中的计数累加到当前结果
func (c *Counter) Load(filename string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return persistent.LoadRDB(filename, rdbKey, func(word string, value []byte) error {
		n, err := strconv.Atoi(string(value))
		if err != nil {
			return fmt.Errorf("count of '%s': %w", word, err)
		}
		if ref := c.counts.GetRef(word); ref != nil {
			*ref += n
		} else {
			c.counts.Put(word, n)
		}
		return nil
	})
}

// Close 关闭 Table 池并释放结果，之后 Counter 不可再用
func (c *Counter) Close(ctx context.Context) {
	c.tables.Close(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts.Free()
}
