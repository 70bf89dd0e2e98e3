package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreadKey(t *testing.T) {
	a, b := ThreadKey(7, 3)
	assert.Equal(t, int64(3), a)
	assert.Equal(t, int64(7), b)

	a, b = ThreadKey(3, 7)
	assert.Equal(t, int64(3), a)
	assert.Equal(t, int64(7), b)
}
