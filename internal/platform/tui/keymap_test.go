package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-defence/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name       string
		msg        tea.KeyMsg
		wantPlayer core.PlayerID
		wantAction core.Action
	}{
		{"a", runeKey('a'), core.Player1, core.ActionLeft},
		{"d", runeKey('d'), core.Player1, core.ActionRight},
		{"w", runeKey('w'), core.Player1, core.ActionShoot},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.Player1, core.ActionShoot},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.Player2, core.ActionLeft},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.Player2, core.ActionRight},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.Player2, core.ActionShoot},
		{"p", runeKey('p'), core.Player1, core.ActionPause},
		{"r", runeKey('r'), core.Player1, core.ActionRestart},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.Player1, core.ActionBack},
		{"b", runeKey('b'), core.Player1, core.ActionBack},
		{"q", runeKey('q'), core.Player1, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.Player1, core.ActionQuit},
		{"unbound", runeKey('x'), core.Player1, core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, action := km.MapKey(tc.msg)
			if action != tc.wantAction {
				t.Errorf("MapKey(%q) action = %v, expected %v", tc.msg.String(), action, tc.wantAction)
			}
			if action != core.ActionNone && id != tc.wantPlayer {
				t.Errorf("MapKey(%q) player = %d, expected %d", tc.msg.String(), id, tc.wantPlayer)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('?'), MenuActionHelp},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
		}
	}
}

func TestHoldTrackerWindow(t *testing.T) {
	h := NewHoldTracker(100*time.Millisecond, 100*time.Millisecond)
	t0 := time.Unix(0, 0)

	h.Press(core.Player1, core.ActionLeft, t0)

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{50 * time.Millisecond, true},
		{99 * time.Millisecond, true},
		{100 * time.Millisecond, false},
		{150 * time.Millisecond, false},
	}

	for _, tc := range tests {
		frame := core.NewMultiInputFrame()
		h.Apply(&frame, t0.Add(tc.at))
		if got := frame.Player1().Has(core.ActionLeft); got != tc.want {
			t.Errorf("held at %v = %v, expected %v", tc.at, got, tc.want)
		}
	}
}

func TestHoldTrackerRepeatExtends(t *testing.T) {
	h := NewHoldTracker(100*time.Millisecond, 100*time.Millisecond)
	t0 := time.Unix(0, 0)

	h.Press(core.Player2, core.ActionShoot, t0)
	h.Press(core.Player2, core.ActionShoot, t0.Add(80*time.Millisecond))

	frame := core.NewMultiInputFrame()
	h.Apply(&frame, t0.Add(150*time.Millisecond))
	if !frame.Player2().Has(core.ActionShoot) {
		t.Error("repeated press should keep the key held")
	}
	if frame.Player1().Has(core.ActionShoot) {
		t.Error("held key leaked to the other player")
	}
}

func TestHoldTrackerDeliversEveryPress(t *testing.T) {
	h := NewHoldTracker(0, 0)
	t0 := time.Unix(0, 0)

	h.Press(core.Player1, core.ActionShoot, t0)

	frame := core.NewMultiInputFrame()
	h.Apply(&frame, t0.Add(time.Second))
	if !frame.Player1().Has(core.ActionShoot) {
		t.Error("a press must reach at least one frame")
	}

	frame = core.NewMultiInputFrame()
	h.Apply(&frame, t0.Add(time.Second))
	if frame.Player1().Has(core.ActionShoot) {
		t.Error("an expired press should be released after delivery")
	}
}

func TestHoldTrackerOppositeDirectionReleases(t *testing.T) {
	h := NewHoldTracker(time.Second, time.Second)
	t0 := time.Unix(0, 0)

	h.Press(core.Player1, core.ActionLeft, t0)
	h.Press(core.Player1, core.ActionShoot, t0)
	h.Press(core.Player1, core.ActionRight, t0.Add(10*time.Millisecond))

	if h.Held(core.Player1, core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !h.Held(core.Player1, core.ActionRight) || !h.Held(core.Player1, core.ActionShoot) {
		t.Error("right and shoot should be held")
	}

	h.Reset()
	if h.Held(core.Player1, core.ActionRight) {
		t.Error("Reset should release everything")
	}
}

func TestHoldTrackerFireOutlastsRepeatDelay(t *testing.T) {
	h := NewHoldTracker(150*time.Millisecond, 500*time.Millisecond)
	t0 := time.Unix(0, 0)

	// A held key: one press, silence until autorepeat starts, then repeats.
	presses := []time.Duration{0, 400 * time.Millisecond, 433 * time.Millisecond, 466 * time.Millisecond}
	h.Press(core.Player1, core.ActionShoot, t0)
	h.Press(core.Player1, core.ActionLeft, t0)

	next := 1
	for at := time.Duration(0); at <= 466*time.Millisecond; at += 16 * time.Millisecond {
		for next < len(presses) && presses[next] <= at {
			h.Press(core.Player1, core.ActionShoot, t0.Add(presses[next]))
			next++
		}
		frame := core.NewMultiInputFrame()
		h.Apply(&frame, t0.Add(at))
		if !frame.Player1().Has(core.ActionShoot) {
			t.Fatalf("fire released at %v before autorepeat started", at)
		}
	}

	if h.Held(core.Player1, core.ActionLeft) {
		t.Error("movement should use the shorter window")
	}

	frame := core.NewMultiInputFrame()
	h.Apply(&frame, t0.Add(966*time.Millisecond))
	if frame.Player1().Has(core.ActionShoot) {
		t.Error("fire should release once repeats stop")
	}
}
