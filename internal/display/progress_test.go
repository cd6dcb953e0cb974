package display

import (
	"bytes"
	"testing"

	"github.com/alimgiray/gitaudit/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassProgress(t *testing.T) {
	var buf bytes.Buffer
	progress := NewPassProgress(&buf)

	var observer services.PassObserver = progress
	for _, pass := range services.HistoryPasses {
		observer.PassStarted(pass)
		observer.PassFinished(pass, services.ParseStats{})
	}
	require.NoError(t, progress.Finish())

	assert.Contains(t, buf.String(), "4/4")
	assert.Contains(t, buf.String(), "Reading paths history")
}
