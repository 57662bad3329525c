package client

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snowshot/internal/difficulty"
	"github.com/tomz197/snowshot/internal/draw"
	"github.com/tomz197/snowshot/internal/game"
	"github.com/tomz197/snowshot/internal/input"
	"github.com/tomz197/snowshot/internal/loop/config"
	"github.com/tomz197/snowshot/internal/loop/server"
	"github.com/tomz197/snowshot/internal/random"
)

// Client handles rendering and input for a single connection. It owns one
// game.Session and is its only caller.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	session      *game.Session
	state        *ClientState
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	keys         []difficulty.Key
	rng          random.Source
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Registry     *difficulty.Registry // Defaults to the built-in table
	Rand         random.Source        // Spawn positions, hit letters, end lines
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	registry := opts.Registry
	if registry == nil {
		registry = difficulty.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = random.NewTime()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("client", handle.ID)

	session := game.NewSession(
		game.WithRegistry(registry),
		game.WithRand(rng),
		game.WithLogger(logger),
	)

	state := NewClientState()
	keys := registry.Keys()
	state.Selected = max(0, slices.Index(keys, session.LastDifficulty().Key))

	return &Client{
		server:       gs,
		handle:       handle,
		session:      session,
		state:        state,
		chunkWriter:  draw.NewChunkWriter(w, 0, 0),
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     handle.Username,
		termSizeFunc: termSizeFunc,
		keys:         keys,
		rng:          rng,
		log:          logger,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Apply input to the current screen
		switch c.state.GameState {
		case GameStateMenu:
			c.updateMenuState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateEnded:
			c.updateEndedState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		// Input of this frame is applied before time moves on
		c.handleEvents(c.session.Advance(c.state.delta))

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.inputStream.Closed() {
		c.state.Running = false
	}

	if c.state.Input.Any() {
		c.lastInput = time.Now()
		if c.state.isInactive {
			// The key only dismisses the warning.
			c.state.isInactive = false
			c.state.Input = input.Input{Number: -1}
		}
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive player", "user", c.username)
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.handleEvents(c.session.Pause())
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventTopScore:
				c.state.Message = fmt.Sprintf("New record! #%d on the leaderboard.", event.Rank)
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On size changes the next frame does a full clear.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(
		termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	st := c.state
	if renderWidth == st.renderWidth && renderHeight == st.renderHeight &&
		offsetCol == st.offsetCol && offsetRow == st.offsetRow {
		return
	}

	st.renderWidth, st.renderHeight = renderWidth, renderHeight
	st.offsetCol, st.offsetRow = offsetCol, offsetRow
	st.forceRedraw = true
	c.chunkWriter.SetOffset(offsetCol, offsetRow)

	fieldHeight := renderHeight - config.HUDRows - config.FooterRows
	st.field = draw.Rect{Col: 1, Row: config.HUDRows + 1, Width: renderWidth, Height: fieldHeight}.Inset(1)

	sprite := targetSprite(' ')
	c.session.SetArena(game.Arena{
		Width:        float64(st.field.Width),
		Height:       float64(st.field.Height),
		SpriteWidth:  float64(sprite.Width()),
		SpriteHeight: float64(sprite.Height()),
	})

	if snap := c.session.Snapshot(); snap.TargetVisible {
		c.placeTarget(snap.TargetX, snap.TargetY)
	}
}

// tooSmall reports whether the render area cannot fit the screens.
func (c *Client) tooSmall() bool {
	return c.state.renderWidth < config.MinTermWidth || c.state.renderHeight < config.MinTermHeight
}

// updateMenuState handles difficulty selection.
func (c *Client) updateMenuState() {
	in := c.state.Input
	n := len(c.keys)

	switch {
	case in.Up || in.Left:
		c.state.Selected = (c.state.Selected + n - 1) % n
	case in.Down || in.Right:
		c.state.Selected = (c.state.Selected + 1) % n
	}
	if in.Number >= 1 && in.Number <= n {
		c.state.Selected = in.Number - 1
	}

	switch {
	case in.Enter || in.Space:
		c.startRound(c.keys[c.state.Selected])
	case in.Pressed('q'):
		c.state.Running = false
	}
}

// updatePlayingState handles pause, restart, quit and hits.
func (c *Client) updatePlayingState() {
	in := c.state.Input
	switch {
	case in.Escape || in.Pressed('p'):
		c.handleEvents(c.session.TogglePause())
	case in.Pressed('r'):
		c.handleEvents(c.session.Restart())
	case in.Pressed('m') || in.Pressed('q'):
		c.handleEvents(c.session.Quit())
	default:
		c.checkHits()
	}
}

// checkHits registers a hit for a click on the target or its letter.
func (c *Client) checkHits() {
	if c.state.targetRect.Empty() {
		return
	}
	in := c.state.Input
	for _, click := range in.Clicks {
		col := click.Col - c.state.offsetCol
		row := click.Row - c.state.offsetRow
		if c.state.targetRect.Contains(col, row) {
			c.handleEvents(c.session.RegisterHit())
			return
		}
	}
	if c.state.HitKey != 0 && in.Pressed(c.state.HitKey) {
		c.handleEvents(c.session.RegisterHit())
	}
}

// updateEndedState handles the end screen choices.
func (c *Client) updateEndedState() {
	in := c.state.Input
	switch {
	case in.Enter || in.Space || in.Pressed('r'):
		c.handleEvents(c.session.Restart())
	case in.Escape || in.Pressed('m') || in.Pressed('q'):
		c.handleEvents(c.session.Quit())
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 || c.state.Input.Pressed('q') {
		c.state.Running = false
	}
}

// startRound starts a round with key, reporting an unknown key on the status line.
func (c *Client) startRound(key difficulty.Key) {
	events, err := c.session.Start(string(key))
	if err != nil {
		c.log.Warn("start rejected", "difficulty", key, "err", err)
		c.state.Message = err.Error()
		return
	}
	c.handleEvents(events)
}

// handleEvents updates presentation state from session events.
func (c *Client) handleEvents(events []game.Event) {
	for _, e := range events {
		switch e.Type {
		case game.EventRoundStarted:
			snap := c.session.Snapshot()
			c.state.Message = fmt.Sprintf("%s: Get %d kills in %ds.", snap.DifficultyLabel, snap.Goal, snap.SecondsLeft())
			c.state.EndLine = ""
			if i := slices.Index(c.keys, snap.DifficultyKey); i >= 0 {
				c.state.Selected = i
			}
		case game.EventTargetShown:
			c.state.HitKey = random.Pick(c.rng, []byte(config.HitKeys))
			c.placeTarget(e.X, e.Y)
		case game.EventTargetHidden:
			c.state.HitKey = 0
			c.state.targetRect = draw.Rect{}
		case game.EventHitRegistered:
			if e.Remaining > 0 {
				c.state.Message = fmt.Sprintf("Nice. %d to go.", e.Remaining)
			}
		case game.EventPausedChanged:
			if e.Paused {
				c.state.Message = "Paused. Take a breath."
			} else {
				c.state.Message = fmt.Sprintf("%s: Go!", c.session.Snapshot().DifficultyLabel)
			}
		case game.EventRoundEnded:
			c.finishRound(e)
		case game.EventReturnedToMenu:
			c.state.Message = ""
		}
	}
	if c.state.GameState != GameStateShutdown {
		c.state.GameState = stateForPhase(c.session.Phase())
	}
}

// finishRound picks the end screen text and reports the result to the lobby.
func (c *Client) finishRound(e game.Event) {
	snap := c.session.Snapshot()
	if e.Outcome == game.OutcomeWin {
		c.state.EndLine = winLine
		c.state.Message = fmt.Sprintf("Goal reached with %ds to spare.", snap.SecondsLeft())
	} else {
		c.state.EndLine = random.Pick(c.rng, loseLines)
		c.state.Message = fmt.Sprintf("%d of %d. So close. Or not.", e.Kills, snap.Goal)
	}

	c.server.RecordResult(server.Result{
		ClientID:   c.handle.ID,
		Difficulty: snap.DifficultyKey,
		Outcome:    e.Outcome,
		Kills:      e.Kills,
		TimeLeft:   snap.TimeRemaining,
	})
	c.log.Info("round finished", "user", c.username, "difficulty", snap.DifficultyKey,
		"outcome", e.Outcome, "kills", e.Kills, "left", snap.TimeRemaining)
}

// placeTarget maps a target position in percent to the cells its sprite covers.
func (c *Client) placeTarget(xPct, yPct int) {
	col, row := draw.PercentToCell(c.state.field, xPct, yPct)
	c.state.targetRect = targetSprite(' ').RectAt(col, row, c.state.field)
}
