package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/httpapi"
	"github.com/vovakirdan/tui-2048/internal/metrics"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagHTTPAddr    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the 2048 SSH server",
	Long: `Start an SSH server that allows users to connect and play 2048.

Each SSH connection gets its own game. Scores are stored per-server
(all users share the same leaderboard) under their SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ssh.host_key from config (generated if missing)

HTTP side-car:
  --http :8080 serves /healthz, /metrics, /api/scores and /api/stats.
  An empty address disables it.

Examples:
  t2048 serve                          # Listen on the configured address
  t2048 serve --ssh :2222              # Listen on port 2222
  t2048 serve --http :8080             # Also expose scores and metrics
  t2048 serve --idle-timeout 5m

Users can connect with:
  ssh localhost -p 2048`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP side-car address (empty disables)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg.LogLevel, "t2048-ssh")

	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}
	if cmd.Flags().Changed("http") {
		cfg.HTTP.Address = flagHTTPAddr
	}

	m := metrics.New()
	deps := tui.SSHDeps{
		Keys:     tui.NewKeyMapper(cfg.Keys),
		Theme:    tui.NewTheme(cfg.ThemeColors()),
		Metrics:  m,
		Logger:   logger,
		TickRate: cfg.TickRate,
	}

	var scores httpapi.ScoreSource
	store := openStore(cfg.DBPath, logger)
	if store != nil {
		defer store.Close()
		deps.Store = store
		scores = store
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: cfg.SSH.HostKey,
		IdleTimeout: cfg.SSH.IdleTimeout,
	}, deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.HTTP.Address != "" {
		api := httpapi.NewServer(cfg.HTTP.Address, scores, m, logger)
		api.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := api.Shutdown(shutdownCtx); err != nil {
				logger.Warn("HTTP shutdown failed", "error", err)
			}
		}()
	}

	logger.Info("Connect with: ssh localhost -p <port>", "address", cfg.SSH.Address)
	logger.Info("Press Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		stop()
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
