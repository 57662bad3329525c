// Package loop runs a single-player game on a local terminal.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snowshot/internal/config"
	"github.com/tomz197/snowshot/internal/difficulty"
	"github.com/tomz197/snowshot/internal/draw"
	"github.com/tomz197/snowshot/internal/loop/client"
	"github.com/tomz197/snowshot/internal/loop/server"
)

// Options configures a local game.
type Options struct {
	Registry     *difficulty.Registry
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
}

// Run starts a private lobby and one client reading r and drawing to w.
// It blocks until the player quits.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = config.Discard()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameServer := server.NewServer(logger)
	go gameServer.Run(ctx)

	c := client.NewClient(gameServer, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     config.GetEnv("USER", "player"),
		Registry:     opts.Registry,
		Logger:       logger,
	})
	return c.Run()
}
