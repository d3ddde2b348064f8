// Package markov 训练并使用字符级马尔可夫链生成文本
package markov

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"

	"mpcontainers/datastruct/dict"
	"mpcontainers/lib/hashfn"
	"mpcontainers/lib/logger"
	"mpcontainers/persistent"
)

// Letters 是模型使用的字母表，不在其中的字符都折叠为 '_'
const Letters = "_ abcdefghijklmnopqrstuvwxyz,.\n"

const (
	alphabetSize = len(Letters)
	rdbKey       = "markov"
)

// Probs 记录某个窗口之后每个字母出现的次数
type Probs struct {
	Counts [alphabetSize]int
	Total  int
}

type Model struct {
	pastChars int
	chain     *dict.Table[string, Probs]
}

func NewModel(pastChars int, opts ...dict.Option) (*Model, error) {
	if pastChars < 1 {
		return nil, fmt.Errorf("window of %d characters", pastChars)
	}
	return &Model{
		pastChars: pastChars,
		chain:     dict.New[string, Probs](hashfn.Xorshift, dict.Equal[string], dict.Equal[Probs], opts...),
	}, nil
}

func letterIndex(c byte) int {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if i := strings.IndexByte(Letters, c); i >= 0 {
		return i
	}
	return 0
}

// Fold 将字符映射到字母表中
func Fold(c byte) byte {
	return Letters[letterIndex(c)]
}

func (m *Model) startWindow() string {
	return strings.Repeat("_", m.pastChars)
}

func (m *Model) Train(r io.Reader) error {
	reader := bufio.NewReader(r)
	window := m.startWindow()
	for {
		c, err := reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		idx := letterIndex(c)
		probs := m.chain.GetRef(window)
		if probs == nil {
			m.chain.Put(window, Probs{})
			probs = m.chain.GetRef(window)
		}
		probs.Counts[idx]++
		probs.Total++
		window = window[1:] + Letters[idx:idx+1]
	}
	logger.Debugf("trained %d windows in %d buckets", m.chain.Len(), m.chain.TotalBuckets())
	return nil
}

func (m *Model) Len() int {
	return m.chain.Len()
}

func (m *Model) Probs(window string) (Probs, bool) {
	return m.chain.Get(window)
}

// Next 按窗口之后各字母的出现次数随机选取下一个字母，未见过的窗口返回 '_'
func (m *Model) Next(window string, rng *rand.Rand) byte {
	probs := m.chain.GetRef(window)
	if probs == nil || probs.Total == 0 {
		return Letters[0]
	}
	l := rng.Intn(probs.Total)
	for i, n := range probs.Counts {
		l -= n
		if l < 0 {
			return Letters[i]
		}
	}
	return Letters[0]
}

func (m *Model) Generate(w io.Writer, n int, seed uint64) error {
	rng := rand.New(rand.NewSource(seed))
	bw := bufio.NewWriter(w)
	window := m.startWindow()
	for i := 0; i < n; i++ {
		c := m.Next(window, rng)
		if err := bw.WriteByte(c); err != nil {
			return err
		}
		window = window[1:] + string(c)
	}
	return bw.Flush()
}

func (m *Model) Save(filename string) error {
	return persistent.SaveRDB(filename, rdbKey, m.chain, func(window string, probs Probs) (string, []byte) {
		fields := make([]string, alphabetSize)
		for i, n := range probs.Counts {
			fields[i] = strconv.Itoa(n)
		}
		return window, []byte(strings.Join(fields, ","))
	})
}

// Load 读取 Save 写入的模型，窗口长度必须一致
func (m *Model) Load(filename string) error {
	return persistent.LoadRDB(filename, rdbKey, func(window string, value []byte) error {
		if len(window) != m.pastChars {
			return fmt.Errorf("window '%s' does not have %d characters", window, m.pastChars)
		}
		fields := strings.Split(string(value), ",")
		if len(fields) != alphabetSize {
			return fmt.Errorf("window '%s' has %d counts", window, len(fields))
		}
		var probs Probs
		for i, field := range fields {
			n, err := strconv.Atoi(field)
			if err != nil {
				return fmt.Errorf("window '%s': %w", window, err)
			}
			probs.Counts[i] = n
			probs.Total += n
		}
		m.chain.Put(window, probs)
		return nil
	})
}

func (m *Model) Free() {
	m.chain.Free()
}
