package cleaner

import (
	"errors"
	"testing"
)

func TestGateInitialState(t *testing.T) {
	g := NewGate()
	if g.State() != StatePending {
		t.Errorf("new gate state = %v, want pending", g.State())
	}
}

func TestGateSubmit(t *testing.T) {
	tests := []struct {
		answer string
		want   GateState
	}{
		{"y", StateApproved},
		{"Y", StateApproved},
		{"yes", StateApproved},
		{"YES", StateApproved},
		{" yes ", StateApproved},
		{"n", StateRejected},
		{"no", StateRejected},
		{"", StateRejected},
		{"   ", StateRejected},
		{"yeah", StateRejected},
		{"q", StateRejected},
	}

	for _, tt := range tests {
		t.Run("answer_"+tt.answer, func(t *testing.T) {
			g := NewGate()
			if got := g.Submit(tt.answer); got != tt.want {
				t.Errorf("Submit(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func answers(lines ...string) Prompter {
	i := 0
	return func(question string, warning bool) (string, error) {
		if i >= len(lines) {
			return "", errors.New("no more answers")
		}
		line := lines[i]
		i++
		return line, nil
	}
}

func TestApprove(t *testing.T) {
	ok, err := Approve("remove?", answers("y"))
	if err != nil || !ok {
		t.Errorf("Approve with 'y' = (%v, %v), want approved", ok, err)
	}

	ok, err = Approve("remove?", answers(""))
	if err != nil || ok {
		t.Errorf("Approve with empty answer = (%v, %v), want rejected", ok, err)
	}
}

func TestApproveLargeBelowThreshold(t *testing.T) {
	asked := 0
	ask := func(question string, warning bool) (string, error) {
		asked++
		return "y", nil
	}

	ok, err := ApproveLarge("remove?", "really?", 100, 1000, ask)
	if err != nil || !ok {
		t.Fatalf("ApproveLarge = (%v, %v), want approved", ok, err)
	}
	if asked != 1 {
		t.Errorf("below threshold should ask once, asked %d times", asked)
	}
}

func TestApproveLargeTwoTier(t *testing.T) {
	var warnings []bool
	ask := func(question string, warning bool) (string, error) {
		warnings = append(warnings, warning)
		return "y", nil
	}

	ok, err := ApproveLarge("remove?", "really?", 5000, 1000, ask)
	if err != nil || !ok {
		t.Fatalf("ApproveLarge = (%v, %v), want approved", ok, err)
	}
	if len(warnings) != 2 {
		t.Fatalf("at threshold should ask twice, asked %d times", len(warnings))
	}
	if warnings[0] || !warnings[1] {
		t.Errorf("second gate must carry the amplified warning, got %v", warnings)
	}
}

func TestApproveLargeSecondTierRejects(t *testing.T) {
	ok, err := ApproveLarge("remove?", "really?", 5000, 1000, answers("y", "n"))
	if err != nil {
		t.Fatalf("ApproveLarge error: %v", err)
	}
	if ok {
		t.Error("second-tier rejection must block the action")
	}
}

func TestApproveLargeFirstTierRejects(t *testing.T) {
	asked := 0
	ask := func(question string, warning bool) (string, error) {
		asked++
		return "n", nil
	}

	ok, _ := ApproveLarge("remove?", "really?", 5000, 1000, ask)
	if ok {
		t.Error("first-tier rejection must block the action")
	}
	if asked != 1 {
		t.Errorf("rejected first tier should not reach the second, asked %d times", asked)
	}
}
