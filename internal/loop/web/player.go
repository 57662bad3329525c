package web

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/snowshot/internal/game"
	"github.com/tomz197/snowshot/internal/loop/config"
	"github.com/tomz197/snowshot/internal/loop/server"
	"github.com/tomz197/snowshot/internal/protocol"
)

// inboxMsg is a decoded client frame, or the reason it could not be decoded.
type inboxMsg struct {
	cmd protocol.Command
	err error
}

// player is the actor for one connection. Only run touches the session and
// writes to the connection; readLoop feeds it through inbox.
type player struct {
	h       *Handler
	conn    *websocket.Conn
	session *game.Session
	handle  *server.ClientHandle
	inbox   chan inboxMsg
	done    chan struct{} // closed when readLoop exits
	quit    chan struct{} // closed when run exits
	last    time.Time     // wall time the session clock was last advanced to
	log     *log.Logger
}

func newPlayer(h *Handler, conn *websocket.Conn, name string) *player {
	handle := h.lobby.RegisterClient(name)
	logger := h.log.With("client", handle.ID)
	return &player{
		h:    h,
		conn: conn,
		session: game.NewSession(
			game.WithRegistry(h.registry),
			game.WithRand(h.newRand()),
			game.WithLogger(logger),
		),
		handle: handle,
		inbox:  make(chan inboxMsg, config.WebInboxSize),
		done:   make(chan struct{}),
		quit:   make(chan struct{}),
		log:    logger,
	}
}

// run owns the connection until the peer leaves, a write fails or the lobby
// shuts down.
func (p *player) run() {
	defer p.h.lobby.UnregisterClient(p.handle.ID)
	defer p.conn.Close()
	defer close(p.quit)

	go p.readLoop()

	ticker := time.NewTicker(config.WebStateInterval)
	defer ticker.Stop()
	pinger := time.NewTicker(config.WebPingPeriod)
	defer pinger.Stop()

	p.last = time.Now()
	if err := p.write(protocol.MsgWelcome, protocol.NewWelcome(p.h.registry)); err != nil {
		return
	}
	if err := p.sendState(); err != nil {
		return
	}

	for {
		var err error
		select {
		case <-p.done:
			return
		case m := <-p.inbox:
			err = p.receive(m)
		case now := <-ticker.C:
			if err = p.advance(now); err == nil {
				err = p.sendState()
			}
		case ev, ok := <-p.handle.EventsCh:
			if !ok {
				return
			}
			if err = p.lobbyEvent(ev); err == nil && ev.Type == server.EventServerShutdown {
				p.close(websocket.CloseGoingAway, "server shutting down")
				return
			}
		case <-pinger.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(config.WebWriteWait))
			err = p.conn.WriteMessage(websocket.PingMessage, nil)
		}
		if err != nil {
			p.log.Debug("connection write failed", "err", err)
			return
		}
	}
}

// readLoop decodes frames into the inbox until the connection fails.
func (p *player) readLoop() {
	defer close(p.done)

	_ = p.conn.SetReadDeadline(time.Now().Add(config.WebPongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(config.WebPongWait))
	})

	for {
		_, msg, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.log.Debug("read failed", "err", err)
			}
			return
		}

		select {
		case p.inbox <- decode(msg):
		case <-p.quit:
			return
		}
	}
}

func decode(msg []byte) inboxMsg {
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return inboxMsg{err: err}
	}
	if env.T != protocol.MsgCommand {
		return inboxMsg{err: fmt.Errorf("unexpected message type %q", env.T)}
	}
	cmd, err := protocol.DecodePayload[protocol.Command](env)
	if err != nil {
		return inboxMsg{err: err}
	}
	if !cmd.Action.Valid() {
		return inboxMsg{err: fmt.Errorf("%w: %q", protocol.ErrUnknownAction, cmd.Action)}
	}
	return inboxMsg{cmd: cmd}
}

// receive applies one inbox message. The session clock is first brought up
// to the arrival time so the command is judged against the current round.
func (p *player) receive(m inboxMsg) error {
	if m.err != nil {
		return p.write(protocol.MsgError, protocol.Error{Message: m.err.Error()})
	}
	if err := p.advance(time.Now()); err != nil {
		return err
	}

	events, err := p.apply(m.cmd)
	if err != nil {
		p.log.Debug("command rejected", "action", m.cmd.Action, "err", err)
		if werr := p.write(protocol.MsgError, protocol.Error{Message: err.Error()}); werr != nil {
			return werr
		}
	}
	if err := p.sendEvents(events); err != nil {
		return err
	}
	return p.sendState()
}

func (p *player) apply(cmd protocol.Command) ([]game.Event, error) {
	s := p.session
	switch cmd.Action {
	case protocol.ActionStart:
		return s.Start(cmd.Difficulty)
	case protocol.ActionRestart:
		if cmd.Difficulty != "" {
			return s.RestartWith(cmd.Difficulty)
		}
		return s.Restart(), nil
	case protocol.ActionPause:
		return s.Pause(), nil
	case protocol.ActionResume:
		return s.Resume(), nil
	case protocol.ActionTogglePause:
		return s.TogglePause(), nil
	case protocol.ActionHit:
		return s.RegisterHit(), nil
	case protocol.ActionQuit:
		return s.Quit(), nil
	}
	return nil, fmt.Errorf("%w: %q", protocol.ErrUnknownAction, cmd.Action)
}

// advance moves the session clock to now and forwards the resulting events.
func (p *player) advance(now time.Time) error {
	d := now.Sub(p.last)
	if d <= 0 {
		return nil
	}
	p.last = now
	return p.sendEvents(p.session.Advance(d))
}

func (p *player) sendEvents(events []game.Event) error {
	for _, e := range events {
		if e.Type == game.EventRoundEnded {
			p.report(e)
		}
		if err := p.write(protocol.MsgEvent, protocol.NewEvent(e)); err != nil {
			return err
		}
	}
	return nil
}

func (p *player) report(e game.Event) {
	snap := p.session.Snapshot()
	p.h.lobby.RecordResult(server.Result{
		ClientID:   p.handle.ID,
		Difficulty: snap.DifficultyKey,
		Outcome:    e.Outcome,
		Kills:      e.Kills,
		TimeLeft:   snap.TimeRemaining,
	})
}

func (p *player) sendState() error {
	return p.write(protocol.MsgState, protocol.NewState(p.session.Snapshot()))
}

func (p *player) lobbyEvent(ev server.ClientEvent) error {
	switch ev.Type {
	case server.EventTopScore:
		return p.write(protocol.MsgEvent, protocol.Event{Type: protocol.EventTopScore, Rank: ev.Rank})
	case server.EventServerShutdown:
		return p.write(protocol.MsgEvent, protocol.Event{Type: protocol.EventServerShutdown})
	}
	return nil
}

func (p *player) write(t string, payload any) error {
	b, err := protocol.Encode(t, payload)
	if err != nil {
		return err
	}
	_ = p.conn.SetWriteDeadline(time.Now().Add(config.WebWriteWait))
	return p.conn.WriteMessage(websocket.TextMessage, b)
}

func (p *player) close(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	err := p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(config.WebWriteWait))
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		p.log.Debug("close failed", "err", err)
	}
}
