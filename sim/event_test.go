package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectEvent(t *testing.T) {
	tests := []struct {
		name  string
		x1    float64
		rates RateConfig
		want  EventKind
	}{
		{"low sample hops", 0.25, RateConfig{0.5, 0.5}, Hop},
		{"high sample rotates", 0.75, RateConfig{0.5, 0.5}, Rotate},
		{"zero sample is a no-op", 0, RateConfig{0.5, 0.5}, NoEvent},
		{"sample on the hop boundary is a no-op", 0.5, RateConfig{0.5, 0.5}, NoEvent},
		{"unnormalized rates", 0.1, RateConfig{3, 7}, Hop},
		{"unnormalized rates rotate", 0.5, RateConfig{3, 7}, Rotate},
		{"hop only", 0.999, RateConfig{1, 0}, Hop},
		{"rotate only", 0.001, RateConfig{0, 1}, Rotate},
		{"degenerate rates", 0.5, RateConfig{0, 0}, NoEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectEvent(tt.x1, tt.rates))
		})
	}
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "none", NoEvent.String())
	assert.Equal(t, "hop", Hop.String())
	assert.Equal(t, "rotate", Rotate.String())
	assert.Equal(t, "none", EventKind(99).String())
}
