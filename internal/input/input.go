package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// Click is a mouse press at a 1-based terminal cell.
type Click struct {
	Col int
	Row int
}

// Input represents the keys and clicks received since the last frame.
type Input struct {
	Quit   bool    // Ctrl-C
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Space  bool
	Enter  bool
	Escape bool
	Number int     // Last digit pressed, -1 if none
	Clicks []Click // Left-button presses in arrival order
	Runes  []byte  // Printable ASCII letters, lower-cased
	Raw    []byte  // Everything read this frame
}

// Any reports whether anything at all was received.
func (in Input) Any() bool {
	return len(in.Raw) > 0
}

// Pressed reports whether letter c (lower case) was typed this frame.
func (in Input) Pressed(c byte) bool {
	for _, r := range in.Runes {
		if r == c {
			return true
		}
	}
	return false
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // Unfinished escape sequence held over from the last drain
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes them. An escape sequence cut off at the end of the drain is held
// for the next call; if nothing arrives by then it is decoded as plain keys.
func ReadInput(s *Stream) Input {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return s.decode(buf, true)
			}
			buf = append(buf, b)
		default:
			return s.decode(buf, len(buf) == 0)
		}
	}
}

func (s *Stream) decode(buf []byte, flush bool) Input {
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}
	if !flush {
		var tail []byte
		buf, tail = splitIncomplete(buf)
		if len(tail) > 0 {
			s.pending = append([]byte(nil), tail...)
		}
	}
	return Parse(buf)
}

// maxPending bounds how long a held escape sequence may grow.
const maxPending = 32

// splitIncomplete separates a trailing escape sequence that may still be
// arriving ("ESC", "ESC [", or an unterminated "ESC [ <" mouse report).
func splitIncomplete(buf []byte) (complete, tail []byte) {
	i := bytes.LastIndexByte(buf, '\x1b')
	if i < 0 || len(buf)-i > maxPending {
		return buf, nil
	}
	seq := buf[i:]
	switch {
	case len(seq) == 1, len(seq) == 2 && seq[1] == '[':
		return buf[:i], seq
	case len(seq) >= 3 && seq[1] == '[' && seq[2] == '<':
		if _, _, st := parseSGRMouse(seq[3:]); st == mouseIncomplete {
			return buf[:i], seq
		}
	}
	return buf, nil
}

// Parse decodes a chunk of terminal input: arrow keys, SGR mouse reports
// (ESC [ < b ; col ; row M) and single-byte keys.
func Parse(buf []byte) Input {
	in := Input{Number: -1, Raw: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				in.Up = true
				i += 2
				continue
			case 'B':
				in.Down = true
				i += 2
				continue
			case 'C':
				in.Right = true
				i += 2
				continue
			case 'D':
				in.Left = true
				i += 2
				continue
			case '<':
				if n, click, st := parseSGRMouse(buf[i+3:]); st == mouseOK {
					if click != nil {
						in.Clicks = append(in.Clicks, *click)
					}
					i += 2 + n
					continue
				}
			}
		}

		applyByte(&in, b)
	}
	return in
}

func applyByte(in *Input, b byte) {
	switch {
	case b == 0x03:
		in.Quit = true
	case b == ' ':
		in.Space = true
	case b == '\n' || b == '\r':
		in.Enter = true
	case b == '\x1b':
		in.Escape = true
	case b >= '0' && b <= '9':
		in.Number = int(b - '0')
	case b >= 'a' && b <= 'z':
		in.Runes = append(in.Runes, b)
	case b >= 'A' && b <= 'Z':
		in.Runes = append(in.Runes, b+('a'-'A'))
	}
}

type mouseStatus int

const (
	mouseOK mouseStatus = iota
	// Valid so far but not terminated
	mouseIncomplete
	mouseInvalid
)

// parseSGRMouse decodes "b;col;rowM" or "b;col;rowm" following ESC [ <.
// It returns the bytes consumed and, for a left-button press, the click.
func parseSGRMouse(buf []byte) (int, *Click, mouseStatus) {
	var fields [3]int
	field, start := 0, 0
	for i, b := range buf {
		switch {
		case b >= '0' && b <= '9':
			continue
		case b == ';' && field < 2:
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0, nil, mouseInvalid
			}
			fields[field] = v
			field++
			start = i + 1
		case (b == 'M' || b == 'm') && field == 2:
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0, nil, mouseInvalid
			}
			fields[2] = v
			// Button 0 without motion or modifier bits is a plain left press.
			if b == 'M' && fields[0] == 0 {
				return i + 1, &Click{Col: fields[1], Row: fields[2]}, mouseOK
			}
			return i + 1, nil, mouseOK
		default:
			return 0, nil, mouseInvalid
		}
	}
	return 0, nil, mouseIncomplete
}
