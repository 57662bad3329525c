package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/snowshot/internal/draw"
	"github.com/tomz197/snowshot/internal/game"
	"github.com/tomz197/snowshot/internal/loop/config"
	"github.com/tomz197/snowshot/internal/loop/server"
)

const winLine = "Merry Christmas. Target neutralized. Victory achieved."

var loseLines = []string{
	"Too slow. Santa saw everything.",
	"That was... not your finest hour.",
	"Skill issue. (It happens.)",
	"The target popped up. You popped off... incorrectly.",
}

// ASCII art title (figlet "small" font)
var titleArt = []string{
	` ___ _  _  _____      _____ _  _  ___ _____ `,
	`/ __| \| |/ _ \ \    / / __| || |/ _ \_   _|`,
	`\__ \ .' | (_) \ \/\/ /\__ \ __ | (_) || |  `,
	`|___/_|\_|\___/ \_/\_/ |___/_||_|\___/ |_|  `,
}

// targetSprite returns the zombie with letter on its chest.
func targetSprite(letter byte) draw.Sprite {
	return draw.Sprite{
		`(x_x)`,
		`/|` + string(letter) + `|\`,
		` / \ `,
	}
}

// currentView describes what the frame shows.
func (c *Client) currentView() view {
	return view{
		state:    c.state.GameState,
		paused:   c.session.Paused(),
		inactive: c.state.isInactive,
		tooSmall: c.tooSmall(),
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen transitions, do a full terminal clear so text from the
	// previous screen doesn't persist.
	v := c.currentView()
	redraw := c.state.forceRedraw || v != c.state.prevView
	if redraw {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.state.prevView = v
		c.state.forceRedraw = false
		c.state.drawnTarget = draw.Rect{}
	}

	c.drawUI(v, redraw)

	return c.chunkWriter.Flush()
}

// drawUI draws the screen for v.
func (c *Client) drawUI(v view, redraw bool) {
	width := c.state.renderWidth
	height := c.state.renderHeight
	centerX := width / 2
	centerY := height / 2

	if v.tooSmall {
		c.drawTooSmallScreen(centerX, centerY)
		return
	}

	if v.state == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if v.inactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	lobby := c.server.GetSnapshot()
	snap := c.session.Snapshot()

	switch v.state {
	case GameStateMenu:
		c.drawMenuScreen(centerX, centerY, lobby)
	case GameStatePlaying:
		c.drawPlayingScreen(snap, redraw)
	case GameStateEnded:
		c.drawEndScreen(centerX, centerY, snap)
	}

	// Live players (bottom right)
	players := fmt.Sprintf("Players: %-4d", lobby.Players)
	c.chunkWriter.WriteAt(width-len(players), height, players)
}

// drawTooSmallScreen asks for a bigger terminal.
func (c *Client) drawTooSmallScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-1, "Terminal too small")
	cw.WriteCentered(centerX, centerY+1, fmt.Sprintf("Need at least %dx%d", config.MinTermWidth, config.MinTermHeight))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"Disconnecting in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteCentered(centerX, centerY, fit(msg, c.state.renderWidth))

	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawMenuScreen draws the title and difficulty selection.
func (c *Client) drawMenuScreen(centerX, centerY int, lobby *server.LobbySnapshot) {
	cw := c.chunkWriter
	row := max(1, centerY-12)

	if c.state.renderWidth > len(titleArt[0])+2 && c.state.renderHeight >= 28 {
		for i, line := range titleArt {
			cw.WriteCentered(centerX, row+i, line)
		}
		row += len(titleArt) + 1
	} else {
		cw.WriteCentered(centerX, row, "SNOWSHOT")
		row += 2
	}

	cw.WriteCentered(centerX, row, fit("~ Pop the zombie before the clock runs out ~", c.state.renderWidth))
	row += 2

	profiles := c.session.Registry().Profiles()
	for i, p := range profiles {
		line := fmt.Sprintf("%d. %-6s  %2d kills in %2ds", i+1, p.Label, p.KillGoal, int(p.RoundDuration/time.Second))
		if i == c.state.Selected {
			cw.WriteColored(centerX-len(line)/2-2, row+i, draw.ColorBrightCyan+draw.ColorBold, "> "+line+" <")
		} else {
			cw.WriteCentered(centerX, row+i, "  "+line+"  ")
		}
	}
	row += len(profiles) + 1

	controlLines := []string{
		"Up / Down  . . . Choose",
		"ENTER / SPACE  .  Start",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteCentered(centerX, row+i, line)
	}
	row += len(controlLines) + 1

	// Blinking start prompt
	prompt := ">>  Press ENTER to Start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	cw.WriteCentered(centerX, row, prompt)
	row += 2

	if c.state.Message != "" {
		cw.WriteColored(centerX-len(c.state.Message)/2, row, draw.ColorRed, c.state.Message)
		row += 2
	}

	c.drawLeaderboard(centerX, row, lobby)
}

// drawLeaderboard lists the best wins of this server session.
func (c *Client) drawLeaderboard(centerX, row int, lobby *server.LobbySnapshot) {
	if len(lobby.TopScores) == 0 || row+len(lobby.TopScores) >= c.state.renderHeight {
		return
	}
	cw := c.chunkWriter
	cw.WriteCentered(centerX, row, "Top wins")
	for i, e := range lobby.TopScores {
		line := fmt.Sprintf("%d. %-*s %-6s %2ds left", i+1, config.MaxUsernameLength, e.Username,
			c.labelFor(e), int((e.TimeLeft+time.Second-1)/time.Second))
		cw.WriteCentered(centerX, row+1+i, line)
	}
}

func (c *Client) labelFor(e server.TopScoreEntry) string {
	if p, err := c.session.Registry().Get(string(e.Difficulty)); err == nil {
		return p.Label
	}
	return string(e.Difficulty)
}

// drawPlayingScreen draws the HUD, the field and the target.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingScreen(snap game.Snapshot, redraw bool) {
	cw := c.chunkWriter
	width := c.state.renderWidth
	height := c.state.renderHeight

	if redraw {
		draw.Border(cw, c.state.field.Inset(-1))
		hint := "Esc/P pause  R restart  M menu  Click the zombie or type its letter"
		cw.WriteAt(2, height, fit(hint, width-16))
	}

	// Difficulty and kills (top left)
	kills := fmt.Sprintf("%-6s  Kills: %2d/%-2d", snap.DifficultyLabel, snap.Kills, snap.Goal)
	cw.WriteAt(2, 1, kills)

	// Countdown (top right)
	secs := snap.SecondsLeft()
	timeText := fmt.Sprintf("Time: %3ds", secs)
	color := draw.ColorReset
	if secs <= config.WarnSeconds {
		color = draw.ColorRed + draw.ColorBold
	}
	cw.WriteColored(width-len(timeText), 1, color, timeText)

	// Status line
	cw.WriteAt(2, 2, padRight(c.state.Message, width-2))

	c.drawTarget(snap)

	if snap.Paused {
		field := c.state.field
		cw.WriteColored(field.CenterCol()-3, field.CenterRow()-1, draw.ColorBold, "PAUSED")
		cw.WriteCentered(field.CenterCol(), field.CenterRow()+1, fit("Esc/P to resume", field.Width))
	}
}

// drawTarget erases the previously painted target and paints the current one.
func (c *Client) drawTarget(snap game.Snapshot) {
	cw := c.chunkWriter
	want := draw.Rect{}
	if snap.TargetVisible {
		want = c.state.targetRect
	}
	if c.state.drawnTarget != want && !c.state.drawnTarget.Empty() {
		draw.Fill(cw, c.state.drawnTarget)
	}
	if !want.Empty() {
		targetSprite(c.state.HitKey).Draw(cw, want, draw.ColorGreen)
	}
	c.state.drawnTarget = want
}

// drawEndScreen draws the win/lose screen.
func (c *Client) drawEndScreen(centerX, centerY int, snap game.Snapshot) {
	cw := c.chunkWriter
	row := centerY - 5

	if snap.Outcome == game.OutcomeWin {
		cw.WriteColored(centerX-4, row, draw.ColorGreen+draw.ColorBold, "YOU WIN!")
	} else {
		cw.WriteColored(centerX-4, row, draw.ColorRed+draw.ColorBold, "YOU LOSE")
	}

	cw.WriteCentered(centerX, row+2, fit(c.state.EndLine, c.state.renderWidth))

	stats := fmt.Sprintf("%s  Kills: %d/%d", snap.DifficultyLabel, snap.Kills, snap.Goal)
	cw.WriteCentered(centerX, row+4, stats)
	cw.WriteCentered(centerX, row+5, fit(c.state.Message, c.state.renderWidth))

	cw.WriteCentered(centerX, row+8, "ENTER / R . . Play again")
	cw.WriteCentered(centerX, row+9, "M / Esc  . . Back to menu")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))

	cw.WriteCentered(centerX, centerY+4, "Press Q to disconnect now")
}

// fit truncates s to at most width bytes.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(s) > width {
		return s[:width]
	}
	return s
}

// padRight pads or truncates s to exactly width bytes.
func padRight(s string, width int) string {
	s = fit(s, width)
	return s + strings.Repeat(" ", max(0, width-len(s)))
}
