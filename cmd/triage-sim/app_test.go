package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavieroyarzun/triage-sim/internal/infra/storage"
	"github.com/xavieroyarzun/triage-sim/internal/platform/config"
	"github.com/xavieroyarzun/triage-sim/internal/platform/logger"
)

func TestDemoDispatchOrder(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runDemo(&out, logger.NewNop(), 1_000_000))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	var dispatched []string
	for _, l := range lines {
		if strings.HasPrefix(l, "Patient:") {
			dispatched = append(dispatched, l)
		}
	}
	require.Len(t, dispatched, 3)
	assert.Contains(t, dispatched[0], "id: id-001")
	assert.Contains(t, dispatched[1], "id: id-002")
	assert.Contains(t, dispatched[2], "id: id-003")
	assert.Contains(t, dispatched[2], "category: 2")
	assert.Contains(t, dispatched[2], "area: adult emergency")
}

func TestSimulateCommandRendersReport(t *testing.T) {
	var out bytes.Buffer
	app := buildApp(&out)

	err := app.Run([]string{"triage-sim", "--log-level", "error", "simulate",
		"--patients", "0", "--start", "1000", "--metrics"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Total patients treated: 0")
	assert.Contains(t, text, "Patients who exceeded the maximum wait: 0")
	assert.Contains(t, text, "C5: 0.00 minutes")
	assert.Contains(t, text, "triage_ticks_total 1440")
}

func TestSimulateWritesAuditTrail(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	var out bytes.Buffer
	app := buildApp(&out)

	err := app.Run([]string{"triage-sim", "--log-level", "error", "--audit-db", dbPath, "simulate",
		"--patients", "6", "--seed", "3", "--start", "1000", "--run-id", "run-test"})
	require.NoError(t, err)

	db, err := storage.InitSQLite(dbPath)
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	run, err := storage.NewSQLiteRunRepository(db).Get(ctx, "run-test")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.True(t, run.Finished)
	assert.Equal(t, 6, run.Treated)

	counts, err := storage.NewSQLiteEventRepository(db).CountByType(ctx, "run-test")
	require.NoError(t, err)
	assert.Equal(t, 1440, counts["TIME_TICK"])
	assert.Equal(t, 6, counts["PATIENT_ARRIVED"])
	assert.Equal(t, 6, counts["PATIENT_DISPATCHED"])
}

func TestInvalidConfigFlagFails(t *testing.T) {
	var out bytes.Buffer
	app := buildApp(&out)
	err := app.Run([]string{"triage-sim", "--log-level", "chatty", "demo"})
	assert.Error(t, err)
}

func TestDefaultActionRunsDemoThenDay(t *testing.T) {
	t.Setenv(config.EnvPatients, "0")
	t.Setenv(config.EnvStart, "1000")

	var out bytes.Buffer
	app := buildApp(&out)
	require.NoError(t, app.Run([]string{"triage-sim", "--log-level", "error"}))

	text := out.String()
	demo := strings.Index(text, "Dispatching patients:")
	day := strings.Index(text, "24-hour simulation")
	require.GreaterOrEqual(t, demo, 0)
	require.Greater(t, day, demo)
	assert.Contains(t, text[day:], "Total patients treated: 0")
}

func TestInterruptContextCancelsOnSignal(t *testing.T) {
	ctx, stop := interruptContext()
	defer stop()

	self, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, self.Signal(os.Interrupt))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled by interrupt")
	}
}
