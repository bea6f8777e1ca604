package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestHeatStyle(t *testing.T) {
	tests := []struct {
		share float64
		want  lipgloss.TerminalColor
	}{
		{1, Error},
		{0.75, Error},
		{0.6, Warning},
		{0.1, Success},
		{0, TextMuted},
	}

	for _, tt := range tests {
		if got := HeatStyle(tt.share).GetForeground(); got != tt.want {
			t.Errorf("HeatStyle(%v) foreground = %v, want %v", tt.share, got, tt.want)
		}
	}
}

func TestCenterBoth(t *testing.T) {
	got := CenterBoth("x", 5, 3)
	if w, h := lipgloss.Width(got), lipgloss.Height(got); w != 5 || h != 3 {
		t.Errorf("CenterBoth size = %dx%d, want 5x3", w, h)
	}
	if want := "     \n  x  \n     "; got != want {
		t.Errorf("CenterBoth = %q, want %q", got, want)
	}
}
