package game

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		kills, goal int
		want        Outcome
	}{
		{0, 8, OutcomeLose},
		{7, 8, OutcomeLose},
		{8, 8, OutcomeWin},
		{9, 8, OutcomeWin},
		{16, 16, OutcomeWin},
	}

	for _, tt := range tests {
		if got := Evaluate(tt.kills, tt.goal); got != tt.want {
			t.Errorf("Evaluate(%d, %d) = %v, want %v", tt.kills, tt.goal, got, tt.want)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeWin.String() != "win" || OutcomeLose.String() != "lose" || OutcomeNone.String() != "" {
		t.Errorf("unexpected outcome strings: %q %q %q", OutcomeWin, OutcomeLose, OutcomeNone)
	}
	if PhaseMenu.String() != "menu" || PhasePlaying.String() != "playing" || PhaseEnded.String() != "ended" {
		t.Errorf("unexpected phase strings: %q %q %q", PhaseMenu, PhasePlaying, PhaseEnded)
	}
}
