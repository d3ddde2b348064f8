package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// ContainerProperties 保存两个示例程序共用的配置项
type ContainerProperties struct {
	LoadFactor   float64 `cfg:"load-factor"`
	Hash         string  `cfg:"hash"`
	Workers      int     `cfg:"workers"`
	StopWords    string  `cfg:"stopwords"`
	RDBFilename  string  `cfg:"dbfilename"`
	PastChars    int     `cfg:"past-chars"`
	OutputLength int     `cfg:"output-length"`
	Seed         uint64  `cfg:"seed"`
	LogDir       string  `cfg:"logdir"`
	Debug        bool    `cfg:"debug"`
}

var Properties *ContainerProperties

func defaultProperties() *ContainerProperties {
	return &ContainerProperties{
		LoadFactor:   0.9,
		Hash:         "siphash",
		Workers:      4,
		PastChars:    5,
		OutputLength: 1000000,
		Seed:         0xdeadbeef,
	}
}

func init() {
	Properties = defaultProperties()
}

func SetupConfigProperties(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(file)
	p, err := parse(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	Properties = p
	return nil
}

// parse 读取 "key value" 形式的配置，# 开头的行是注释，未出现的配置项保留默认值
func parse(reader io.Reader) (*ContainerProperties, error) {
	res := defaultProperties()
	m := make(map[string]string)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > 0 && line[0] == '#' {
			continue
		}
		pivot := strings.IndexAny(line, " ")
		if pivot > 0 && pivot < len(line)-1 {
			key := line[0:pivot]
			val := strings.Trim(line[pivot+1:], " ")
			m[strings.ToLower(key)] = val
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := fillProperties(res, m); err != nil {
		return nil, err
	}
	return res, nil
}

func fillProperties(p *ContainerProperties, m map[string]string) error {
	fields := reflect.TypeOf(p).Elem()
	values := reflect.ValueOf(p).Elem()
	n := fields.NumField()
	for i := 0; i < n; i++ {
		field := fields.Field(i)
		fieldVal := values.Field(i)
		key, ok := field.Tag.Lookup("cfg")
		if !ok {
			key = field.Name
		}
		val, ok := m[strings.ToLower(key)]
		if !ok {
			continue
		}
		switch field.Type.Kind() {
		case reflect.String:
			fieldVal.SetString(val)
		case reflect.Int:
			intV, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			fieldVal.SetInt(intV)
		case reflect.Uint64:
			uintV, err := strconv.ParseUint(val, 0, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			fieldVal.SetUint(uintV)
		case reflect.Float64:
			floatV, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			fieldVal.SetFloat(floatV)
		case reflect.Bool:
			fieldVal.SetBool("yes" == val)
		}
	}
	return nil
}
