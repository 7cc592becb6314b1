package tracing

import (
	"context"
	"testing"

	"go-jobboard-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), logger.Log, Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampleRatio(t *testing.T) {
	assert.Equal(t, 0.0, sampleRatio(0))
	assert.Equal(t, 0.0, sampleRatio(-3))
	assert.Equal(t, 0.5, sampleRatio(0.5))
	assert.Equal(t, 1.0, sampleRatio(7))
}
