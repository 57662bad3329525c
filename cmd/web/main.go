package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/tomz197/snowshot/internal/config"
	"github.com/tomz197/snowshot/internal/difficulty"
	"github.com/tomz197/snowshot/internal/loop/server"
	"github.com/tomz197/snowshot/internal/loop/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	envErr := config.LoadDotEnv()
	logger := config.NewLogger(os.Stderr, config.GetEnv("LOG_LEVEL", "info"))
	if envErr != nil {
		logger.Fatal("failed to load .env", "err", envErr)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnvInt("SSH_DISPLAY_PORT", 2222)
	shutdownTimeout := config.GetEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second)

	registry, err := difficulty.Load(config.GetEnv("SNOWSHOT_DIFFICULTY_FILE", ""))
	if err != nil {
		logger.Fatal("failed to load difficulties", "err", err)
	}

	ctx, cancelServer := context.WithCancel(context.Background())
	lobby := server.NewServer(logger.With("component", "lobby"))
	go lobby.Run(ctx)

	page := strings.NewReplacer(
		"{{.SSHHost}}", sshHost,
		"{{.SSHPort}}", strconv.Itoa(sshPort),
	).Replace(htmlPage)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.Handle("/ws", web.NewHandler(web.Options{
		Lobby:    lobby,
		Registry: registry,
		Logger:   logger.With("component", "web"),
	}))

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting web server", "url", "http://"+addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Hijacked websocket connections are not tracked by srv.Shutdown; the
	// lobby notice makes each player close its own.
	lobby.Shutdown(shutdownTimeout)
	cancelServer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}
