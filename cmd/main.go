package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"sl/internal/config"
	"sl/internal/logger"
	"sl/internal/runner"
	"sl/pkg/color"
)

// Main entry point for the SL interpreter.
func main() {
	var (
		help       bool
		configFile string
		cfg        = config.Default()
	)

	flag.BoolVar(&help, "h", false, "Show help")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&cfg.NoColor, "n", false, "No color")
	flag.Float64Var(&cfg.GCInterval, "g", cfg.GCInterval, "Seconds between garbage collections (0 = every statement, <0 = never)")
	flag.IntVar(&cfg.MaxSteps, "s", 0, "Maximum steps before aborting (0 = unlimited)")
	flag.BoolVar(&cfg.DumpAST, "d", false, "Print the syntax tree before running")
	flag.StringVar(&configFile, "config", "", "YAML config file")

	flag.Parse()
	args := flag.Args()

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			logger.Init(cfg.Verbose, cfg.NoColor)
			log.Fatal("Failed to load config", "file", configFile, "error", err)
		}
		cfg = overrideFlags(fileCfg, cfg)
	}

	logger.Init(cfg.Verbose, cfg.NoColor)
	if help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if cfg.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	r := runner.Runner{Config: cfg, SourceFile: args[0]}
	outcome := r.Run()
	if outcome.Kind == runner.Failed {
		log.Debug("Run failed", "stage", outcome.Stage, "error", outcome.Err)
	}
	os.Exit(outcome.ExitCode())
}

// overrideFlags copies the explicitly set flags over the file settings
func overrideFlags(file, flags config.Config) config.Config {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			file.Verbose = flags.Verbose
		case "n":
			file.NoColor = flags.NoColor
		case "g":
			file.GCInterval = flags.GCInterval
		case "s":
			file.MaxSteps = flags.MaxSteps
		case "d":
			file.DumpAST = flags.DumpAST
		}
	})
	return file
}
