package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go-bikeshare/internal/config"
	"go-bikeshare/internal/pipeline"
	"go-bikeshare/internal/store"
	"go-bikeshare/pkg/utils"
)

// Build variables - set by ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var (
		configPath  string
		verbose     bool
		showVersion bool
		exportFmt   string
		noHistory   bool
	)
	flag.StringVar(&configPath, "config", "", "config file (default is ./bikeshare.yml)")
	flag.BoolVar(&verbose, "verbose", false, "log loader and query progress to stderr")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.StringVar(&exportFmt, "export", "", "write each report to the export directory as csv or json")
	flag.BoolVar(&noHistory, "no-history", false, "do not record queries in the history database")
	flag.Parse()

	if showVersion {
		fmt.Printf("bikeshare %s (%s)\n", version, commit)
		return
	}

	if exportFmt != "" {
		format, err := pipeline.ParseFormat(exportFmt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -export: %v\n", err)
			os.Exit(2)
		}
		exportFmt = format
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log.SetOutput(io.Discard)
	if verbose || cfg.Verbose {
		log.SetOutput(os.Stderr)
	}

	a := &app{
		prompt:   newPrompter(os.Stdin, os.Stdout),
		render:   newRenderer(os.Stdout),
		loader:   pipeline.NewLoader(cfg.Sources()),
		format:   exportFmt,
		pageSize: cfg.PageSize,
		timeout:  cfg.Timeout(),
	}

	if !noHistory && cfg.DBPath != "" {
		history, err := store.NewStore(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: query history disabled: %v\n", err)
		} else {
			defer history.Close()
			a.history = history
		}
	}
	if exportFmt != "" {
		a.output = utils.NewOutputManager(cfg.ExportDir)
	}

	if err := a.run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
