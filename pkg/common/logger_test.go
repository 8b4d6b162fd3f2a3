package common

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "liyu1981.xyz/prioribin-service/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestGetLoggerWithCategory(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	GetLoggerWith(LoggerNameWasteCore, zap.String(LoggerFieldCategory, LoggerCategoryRegistry)).
		Info("Bin registered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, LoggerNameWasteCore, entry["logger"])
	assert.Equal(t, LoggerCategoryRegistry, entry["category"])
	assert.Equal(t, "Bin registered", entry["msg"])
}

func TestLoggingLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.WarnLevel)

	GetLogger().Info("dropped")
	assert.Empty(t, buf.String())
}

func TestGetLoggerConcurrent(t *testing.T) {
	SetTestLoggerNop()

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			GetLoggerWith(LoggerNameWasteCore, zap.Int("worker", i)).Info("concurrent")
			GetLogger().Debug("concurrent")
		}()
	}
	wg.Wait()

	assert.NotNil(t, getLogger())
}
