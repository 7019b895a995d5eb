// Copyright 2025 The SongServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the SongServe catalog demo and its msgpack IPC server.

SongServe keeps a toy music catalog in three in-memory structures: a byte trie
for exact-prefix title search, a max-heap for the most popular songs, and an
adjacency list of similar songs.

# Usage

Run the interactive walkthrough with the built-in seed:

	songserve

It asks for a prefix, lists matching titles, shows the three most popular
songs, then asks for a full title and lists the songs recorded as similar.

Seed from a file instead, with debug logs:

	songserve -data songs.toml -d

Serve msgpack requests over stdin/stdout:

	songserve -s

# Dataset files

Datasets are TOML (.toml) or msgpack (.msgpack, .mp):

	[[songs]]
	title = "Shape of You"
	popularity = 95

	[[edges]]
	a = "Shape of You"
	b = "Perfect"

Relative paths are looked up in the working directory, next to the
executable, then in the config directory.

# Configuration

	[server]
	max_prefix = 60
	max_top_k = 50
	watch = true

	[catalog]
	cache_size = 256

	[cli]
	top_k = 3
	color = true

The file is created with defaults under ~/.config/songserve/config.toml when
missing. In server mode it is watched and reloaded on change when
server.watch is set.

# Command Line Flags

	-version
	    Show current version
	-d  Enable debug logging
	-s  Run the msgpack IPC server instead of the walkthrough
	-data string
	    Dataset file (.toml or .msgpack), built-in seed when empty
	-config string
	    Config file path
	-top int
	    Number of popular songs to show (default from config)
	-no-color
	    Disable colored output
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/songserve/internal/cli"
	"github.com/bastiangx/songserve/internal/utils"
	"github.com/bastiangx/songserve/pkg/catalog"
	"github.com/bastiangx/songserve/pkg/config"
	"github.com/bastiangx/songserve/pkg/dataset"
	"github.com/bastiangx/songserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "songserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags, config and dataset into either the walkthrough or the server.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	serverMode := flag.Bool("s", false, "Run the msgpack IPC server on stdin/stdout")
	dataPath := flag.String("data", "", "Dataset file (.toml or .msgpack); built-in seed when empty")
	configPath := flag.String("config", "", "Path to config.toml")
	topK := flag.Int("top", -1, "Number of popular songs to show (default from config)")
	noColor := flag.Bool("no-color", false, "Disable colored output")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// logs go to stderr so server mode keeps stdout for the protocol
	log.SetOutput(os.Stderr)
	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activeConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(activeConfigPath))

	ds, err := loadDataset(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	songCatalog := catalog.New(appConfig.Catalog.CacheSize)
	songCatalog.Seed(ds)
	log.Debug("Catalog ready", "songs", len(ds.Songs), "edges", len(ds.Edges))

	if *serverMode {
		runServer(songCatalog, appConfig, activeConfigPath)
		return
	}

	limit := appConfig.CLI.TopK
	if *topK >= 0 {
		limit = *topK
	}
	color := appConfig.CLI.Color && !*noColor

	inputHandler := cli.NewInputHandler(songCatalog, limit, os.Stdin, os.Stdout, color)
	if err := inputHandler.Start(); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}

func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		log.Debug("No dataset given, using built-in seed")
		return dataset.Default(), nil
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}
	resolved, err := pathResolver.GetDataFile(path)
	if err != nil {
		return nil, err
	}
	return dataset.Load(resolved)
}

func runServer(c *catalog.Catalog, appConfig *config.Config, activeConfigPath string) {
	srv := server.NewServer(c, appConfig, activeConfigPath, os.Stdin, os.Stdout)

	if appConfig.Server.Watch && activeConfigPath != "" {
		watcher, err := config.Watch(activeConfigPath, srv.UpdateConfig)
		if err != nil {
			log.Warnf("Config hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	showStartupInfo(activeConfigPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// printVersion renders the version banner with lipgloss styles.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ SongServe ] prefix search, top songs and similar songs")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo prints basic server info on stderr.
func showStartupInfo(configPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
