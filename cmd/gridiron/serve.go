package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridiron/internal/platform/tui"
	"github.com/vovakirdan/gridiron/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeSpeed  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the replay viewer over SSH",
	Long: `Start an SSH server that opens the replay viewer for every connection.

All sessions browse the same games database, so games stored by
simulate and slate show up for every viewer.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gridiron/host_key

Examples:
  gridiron serve                          # Listen on :23235 with auto-generated key
  gridiron serve --ssh :2222              # Listen on port 2222
  gridiron serve --db ./games.db --speed 8

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagServeSpeed, "speed", defaults.Speed, "Playback speed in plays per second")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		exitf("%v", err)
	}

	store, err := storage.Open(cfg.Sim.DBPath)
	if err != nil {
		exitf("opening games database: %v", err)
	}
	defer store.Close()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Speed:       flagServeSpeed,
	}, store, logger.WithPrefix("gridiron-ssh"))
	if err != nil {
		exitf("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving replays on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		exitf("%v", err)
	}
}
