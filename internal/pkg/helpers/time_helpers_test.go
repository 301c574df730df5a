package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5*time.Minute, ParseDuration("5m", time.Hour))
	assert.Equal(t, 90*time.Second, ParseDuration("1m30s", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}
