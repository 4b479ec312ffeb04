package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Why We Love Go!", "why-we-love-go"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Already-slugged-title", "already-slugged-title"},
		{"2026 Pricing Update", "2026-pricing-update"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "title %q", tt.title)
	}
}
