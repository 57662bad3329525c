package protocol

import (
	"errors"
	"testing"
)

func TestEncodeDecodeCommand(t *testing.T) {
	b, err := Encode(MsgCommand, Command{Action: ActionStart, Difficulty: "hard"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got, want := string(b), `{"t":"command","p":{"action":"start","difficulty":"hard"}}`; got != want {
		t.Errorf("Encode() = %s, want %s", got, want)
	}

	env, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}
	if env.T != MsgCommand {
		t.Fatalf("env.T = %q, want %q", env.T, MsgCommand)
	}
	cmd, err := DecodePayload[Command](env)
	if err != nil {
		t.Fatalf("DecodePayload() error = %v", err)
	}
	if cmd.Action != ActionStart || cmd.Difficulty != "hard" {
		t.Errorf("cmd = %+v", cmd)
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode("", Error{}); !errors.Is(err, ErrEmptyType) {
		t.Errorf("Encode(empty type) error = %v, want ErrEmptyType", err)
	}
	if _, err := Encode(MsgState, nil); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("Encode(nil payload) error = %v, want ErrEmptyPayload", err)
	}
	if _, err := Encode(MsgState, make(chan int)); err == nil {
		t.Error("Encode(chan) succeeded, want error")
	}
}

func TestDecodeEnvelopeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrEmptyMessage},
		{"missing type", `{"p":{}}`, ErrEmptyType},
		{"garbage", `{not json`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(tt.in))
			if err == nil {
				t.Fatal("DecodeEnvelope() succeeded, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodePayloadErrors(t *testing.T) {
	if _, err := DecodePayload[Command](Envelope{T: MsgCommand}); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("missing payload error = %v, want ErrEmptyPayload", err)
	}
	if _, err := DecodePayload[Command](Envelope{T: MsgCommand, P: []byte("null")}); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("null payload error = %v, want ErrEmptyPayload", err)
	}
	if _, err := DecodePayload[Command](Envelope{T: MsgCommand, P: []byte(`{"action":3}`)}); err == nil {
		t.Error("mistyped payload decoded without error")
	}
}

func TestActionValid(t *testing.T) {
	for _, a := range []Action{ActionStart, ActionPause, ActionResume, ActionTogglePause, ActionHit, ActionRestart, ActionQuit} {
		if !a.Valid() {
			t.Errorf("%q.Valid() = false", a)
		}
	}
	for _, a := range []Action{"", "jump", "START"} {
		if a.Valid() {
			t.Errorf("%q.Valid() = true", a)
		}
	}
}
