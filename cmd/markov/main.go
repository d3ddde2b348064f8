package main

import (
	"flag"
	"fmt"
	"os"

	"mpcontainers/config"
	"mpcontainers/datastruct/dict"
	"mpcontainers/lib/logger"
	"mpcontainers/markov"
)

var (
	configFile = flag.String("c", "", "config file")
	loadFile   = flag.String("load", "", "rdb file with a trained model; no input file is needed")
	saveFile   = flag.String("save", "", "write the trained model to this rdb file")
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
			Name: "markov",
			Ext:  "log",
		})
	}
	return nil
}

func run(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer logger.Close()
	p := config.Properties
	if !dict.ValidLoadFactor(p.LoadFactor) {
		return fmt.Errorf("load factor %v out of range [%v, 1]", p.LoadFactor, dict.MinLoadFactor)
	}
	model, err := markov.NewModel(p.PastChars, dict.WithLoadFactor(p.LoadFactor))
	if err != nil {
		return err
	}
	defer model.Free()
	switch {
	case *loadFile != "":
		if err = model.Load(*loadFile); err != nil {
			return fmt.Errorf("load %s: %w", *loadFile, err)
		}
	case len(args) > 0:
		if err = train(model, args[0]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("program requires an input file")
	}
	logger.Infof("model has %d windows", model.Len())
	if *saveFile != "" {
		if err = model.Save(*saveFile); err != nil {
			return err
		}
	}
	return model.Generate(os.Stdout, p.OutputLength, p.Seed)
}

func train(model *markov.Model, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("input file could not be opened: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(file)
	return model.Train(file)
}
