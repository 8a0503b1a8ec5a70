package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyConwayRules(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 8; n++ {
		assert.Equal(t, n == 2 || n == 3, ApplyConwayRules(n, true), "live cell with %d neighbours", n)
		assert.Equal(t, n == 3, ApplyConwayRules(n, false), "dead cell with %d neighbours", n)
	}
}
