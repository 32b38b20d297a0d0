package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/net/netutil"

	"github.com/kalambet/restora/internal/api"
	"github.com/kalambet/restora/internal/config"
	"github.com/kalambet/restora/internal/notify"
	"github.com/kalambet/restora/internal/reconcile"
	"github.com/kalambet/restora/internal/remote"
	"github.com/kalambet/restora/internal/restaurant"
	"github.com/kalambet/restora/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the restora server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running restora server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show restora server status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus(cmd.Context())
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCP()
	},
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "restora.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

func localURL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "restora version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg.Log.Level)

	// Refuse to start twice. A live health endpoint means another instance owns the port.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	probeCtx, probeCancel := context.WithTimeout(context.Background(), 2*time.Second)
	_, probeErr := remote.New(localURL(cfg.Server.Port), "").Health(probeCtx)
	probeCancel()
	if probeErr == nil {
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("restora is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("restora is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	repo := restaurant.NewRepository(store)
	if n, err := repo.SeedMenu(); err != nil {
		return fmt.Errorf("seeding menu: %w", err)
	} else if n > 0 {
		slog.Info("menu was empty, added house dishes", "items", n)
	}

	handler := api.NewRouter(api.Deps{
		Repo:    repo,
		Queue:   store,
		Token:   cfg.AdminToken,
		Started: time.Now(),
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	if cfg.Server.MaxConns > 0 {
		ln = netutil.LimitListener(ln, cfg.Server.MaxConns)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	// Deliver queued notification emails.
	worker := notify.NewWorker(store, notify.NewLogMailer(slog.Default()), cfg.Notify.PollInterval)
	go worker.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("restora listening", "addr", addr, "max_conns", cfg.Server.MaxConns)
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("restora is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop restora (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to restora (PID %d)", pid)
	return nil
}

func showStatus(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		// Still show partial status even if config fails.
		printError("config error: %v", err)
		return nil
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	uptime, err := client.Health(probeCtx)
	if err != nil {
		printStatus("Server", "stopped (%s)", cfg.Client.BaseURL)
	} else {
		printStatus("Server", "running at %s, up %s", cfg.Client.BaseURL, uptime)

		if items, err := client.ListMenu(probeCtx, restaurant.MenuFilter{}); err == nil {
			printStatus("Menu items", "%d", len(items))
		}
		if records, err := client.List(probeCtx, reconcile.Reviews); err == nil {
			printStatus("Reviews", "%d", len(records))
		}
		if records, err := client.List(probeCtx, reconcile.Reservations); err == nil {
			printStatus("Reservations", "%d", len(records))
		}
	}

	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	printStatus("Cache dir", "%s", cfg.Client.CacheDir)
	return nil
}

func runMCP() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// stdout carries the protocol; logs go to stderr only.
	setupLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Repo:  restaurant.NewRepository(store),
		Queue: store,
	})
	slog.Info("MCP server started (stdio transport)")
	if err := server.NewStdioServer(mcpSrv).Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP stdio server: %w", err)
	}
	return nil
}
