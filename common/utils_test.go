package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 5))
	assert.Equal(t, "fallback", Coalesce("", "fallback"))
	assert.Equal(t, 0, Coalesce[int]())
	assert.Equal(t, ColorRed, Coalesce(ColorTransparent, ColorRed, ColorWhite))
}
