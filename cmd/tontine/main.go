package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tontinelabs/tontine/config"
	"github.com/tontinelabs/tontine/internal/genesis"
	"github.com/tontinelabs/tontine/networking"
	"github.com/tontinelabs/tontine/node"
)

func main() {
	var (
		configPath  string
		genesisPath string
		network     string
		listenAddr  string
		bootnodes   string
		nodesPath   string
		dataDir     string
		mirror      bool
		reap        bool
		logLevel    string
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&genesisPath, "genesis", "genesis.json", "Path to genesis file")
	flag.StringVar(&network, "network", networking.DefaultNetworkName, "Network name (gossip topic namespace)")
	flag.StringVar(&listenAddr, "listen", "/ip4/0.0.0.0/udp/9000/quic-v1", "Listen address")
	flag.StringVar(&bootnodes, "bootnodes", "", "Comma-separated bootnode multiaddrs")
	flag.StringVar(&nodesPath, "nodes", "", "Path to a standalone bootnodes YAML file")
	flag.StringVar(&dataDir, "data-dir", "", "Database directory (empty for in-memory)")
	flag.BoolVar(&mirror, "mirror", false, "Run as a read-only mirror")
	flag.BoolVar(&reap, "reap", false, "Sweep lapsed participants every epoch")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Config file values are the base; explicitly-set flags win.
	cfg := &config.Config{
		Network:  network,
		Listen:   []string{listenAddr},
		DataDir:  dataDir,
		Mirror:   mirror,
		Reap:     reap,
		LogLevel: logLevel,
	}
	if bootnodes != "" {
		cfg.Bootnodes = strings.Split(bootnodes, ",")
	}
	if configPath != "" {
		fileCfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

		cfg.Keepers = fileCfg.Keepers
		if !set["network"] && fileCfg.Network != "" {
			cfg.Network = fileCfg.Network
		}
		if !set["listen"] && len(fileCfg.Listen) > 0 {
			cfg.Listen = fileCfg.Listen
		}
		if !set["bootnodes"] && len(fileCfg.Bootnodes) > 0 {
			cfg.Bootnodes = fileCfg.Bootnodes
		}
		if !set["data-dir"] && fileCfg.DataDir != "" {
			cfg.DataDir = fileCfg.DataDir
		}
		if !set["mirror"] {
			cfg.Mirror = fileCfg.Mirror
		}
		if !set["reap"] {
			cfg.Reap = fileCfg.Reap
		}
		if !set["log-level"] && fileCfg.LogLevel != "" {
			cfg.LogLevel = fileCfg.LogLevel
		}
	}
	if nodesPath != "" {
		extra, err := config.LoadBootnodes(nodesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load bootnodes: %v\n", err)
			os.Exit(1)
		}
		cfg.Bootnodes = append(cfg.Bootnodes, extra...)
	}

	// Setup logger
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	gen, err := genesis.LoadFromFile(genesisPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load genesis: %v\n", err)
		os.Exit(1)
	}

	keepers, err := cfg.KeeperAddresses()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid keeper address: %v\n", err)
		os.Exit(1)
	}

	nodeCfg := &node.Config{
		Genesis:     gen,
		Network:     cfg.Network,
		ListenAddrs: cfg.Listen,
		Bootnodes:   cfg.Bootnodes,
		DataDir:     cfg.DataDir,
		Mirror:      cfg.Mirror,
		Reap:        cfg.Reap,
		Keepers:     keepers,
		Logger:      logger,
	}

	// Create node
	ctx := context.Background()
	n, err := node.New(ctx, nodeCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create node: %v\n", err)
		os.Exit(1)
	}

	// Start node
	n.Start()

	logger.Info("tontine node running",
		"epoch", n.CurrentEpoch(),
		"peers", n.PeerCount(),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	n.Stop()
}
