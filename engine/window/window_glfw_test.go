package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestSizeLimitOrDontCare(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "unset maps to DontCare", limit: 0, want: glfw.DontCare},
		{name: "negative maps to DontCare", limit: -10, want: glfw.DontCare},
		{name: "configured limit passes through", limit: 800, want: 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sizeLimitOrDontCare(tt.limit); got != tt.want {
				t.Errorf("sizeLimitOrDontCare(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}

func TestSizeLimitOptionsSetConstraints(t *testing.T) {
	w := &engineWindow{}
	for _, option := range []WindowBuilderOption{
		WithMinWidth(320),
		WithMinHeight(240),
		WithMaxWidth(3840),
		WithMaxHeight(2160),
	} {
		option(w)
	}

	if w.minWidth != 320 || w.minHeight != 240 {
		t.Errorf("min constraints = (%d, %d), want (320, 240)", w.minWidth, w.minHeight)
	}
	if w.maxWidth != 3840 || w.maxHeight != 2160 {
		t.Errorf("max constraints = (%d, %d), want (3840, 2160)", w.maxWidth, w.maxHeight)
	}
}
