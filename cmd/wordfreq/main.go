package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mpcontainers/config"
	"mpcontainers/datastruct/set"
	"mpcontainers/lib/logger"
	"mpcontainers/wordfreq"
)

var (
	configFile  = flag.String("c", "", "config file")
	showBuckets = flag.Bool("buckets", false, "print the bucket layout instead of sorted counts")
	loadFile    = flag.String("load", "", "rdb file with counts to start from")
	saveFile    = flag.String("save", "", "write counts to this rdb file (default: dbfilename from config)")
)

func main() {
	flag.Parse()
	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func setup() error {
	if *configFile != "" {
		if err := config.SetupConfigProperties(*configFile); err != nil {
			return err
		}
	}
	if config.Properties.Debug {
		logger.SetLevel(logger.DEBUG)
	}
	if config.Properties.LogDir != "" {
		return logger.Setup(&logger.Settings{
			Path: config.Properties.LogDir,
			Name: "wordfreq",
			Ext:  "log",
		})
	}
	return nil
}

func loadStopWords(filename string) (*set.HashSet, error) {
	if filename == "" {
		return nil, nil
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(file)
	return wordfreq.LoadStopWords(file)
}

func run(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer logger.Close()
	stopWords, err := loadStopWords(config.Properties.StopWords)
	if err != nil {
		return fmt.Errorf("stop words: %w", err)
	}
	ctx := context.Background()
	counter, err := wordfreq.NewCounter(ctx, stopWords)
	if err != nil {
		return err
	}
	defer counter.Close(ctx)
	if *loadFile != "" {
		if err = counter.Load(*loadFile); err != nil {
			return fmt.Errorf("load %s: %w", *loadFile, err)
		}
	}
	if len(args) == 0 {
		err = counter.CountReader(os.Stdin)
	} else {
		err = counter.CountFiles(ctx, args)
	}
	if err != nil {
		return err
	}
	logger.Infof("%d distinct words", counter.Len())
	if *showBuckets {
		err = counter.PrintBuckets(os.Stdout)
	} else {
		err = counter.PrintCounts(os.Stdout)
	}
	if err != nil {
		return err
	}
	filename := *saveFile
	if filename == "" {
		filename = config.Properties.RDBFilename
	}
	if filename != "" {
		return counter.Save(filename)
	}
	return nil
}
