package core

import (
	"testing"
	"time"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 20)
	if r.Right() != 12 {
		t.Errorf("Right() = %d, expected 12", r.Right())
	}
	if r.Bottom() != 23 {
		t.Errorf("Bottom() = %d, expected 23", r.Bottom())
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		rate     int
		expected time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-4, time.Second / 60},
	}
	for _, tc := range tests {
		cfg := RuntimeConfig{TickRate: tc.rate}
		if got := cfg.FrameInterval(); got != tc.expected {
			t.Errorf("FrameInterval() with rate %d = %v, expected %v", tc.rate, got, tc.expected)
		}
	}
}

func TestColorString(t *testing.T) {
	if ColorMagenta.String() != "purple" {
		t.Errorf("String() = %q, expected purple", ColorMagenta.String())
	}
	if Color(200).String() != "unknown" {
		t.Errorf("String() for out of range color = %q", Color(200).String())
	}
	if ColorDefault.Glyph() != '.' || ColorCyan.Glyph() != 'C' {
		t.Errorf("Glyph() = %q/%q, expected '.'/'C'", ColorDefault.Glyph(), ColorCyan.Glyph())
	}
}
