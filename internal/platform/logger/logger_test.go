package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParsesLevel(t *testing.T) {
	l, err := New("warn")
	require.NoError(t, err)
	require.NotNil(t, l)

	_, err = New("loud")
	assert.Error(t, err)
}

func TestNopLoggerAcceptsCalls(t *testing.T) {
	l := NewNop()
	l.Info("registered", "patient", "id-1")
	l.Warn("area saturated", "area", "pediatric")
	l.Error("boom")
	l.Debug("tick", "minute", 10)
	l.Event("PATIENT_DISPATCHED", "id-1", "dispatched")
	l.Sync()
}
