package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "chart switched",
		Data:    logrus.Fields{"section": "section-3", "from": "bar"},
		Caller:  &runtime.Frame{File: "/src/app/studio/pkg/chart/switch.go", Line: 42},
	}
	entry.Logger = logrus.New()
	entry.Logger.SetReportCaller(true)

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2026-01-02 03:04:05] [WARN] [switch.go:42] chart switched from=bar section=section-3\n", string(out))
}

func TestKratosLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&CustomFormatter{})
	l.SetLevel(logrus.DebugLevel)

	h := log.NewHelper(NewKratosLogger(l))
	h.Infow(log.DefaultMessageKey, "report created", "id", "r1")
	h.Debugf("%d sections", 5)

	out := buf.String()
	assert.Contains(t, out, "[INFO] [] report created id=r1")
	assert.Contains(t, out, "[DEBU] [] 5 sections")
}

func TestKratosLogger_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, toLogrusLevel(log.LevelDebug))
	assert.Equal(t, logrus.InfoLevel, toLogrusLevel(log.LevelInfo))
	assert.Equal(t, logrus.WarnLevel, toLogrusLevel(log.LevelWarn))
	assert.Equal(t, logrus.ErrorLevel, toLogrusLevel(log.LevelError))
	assert.Equal(t, logrus.FatalLevel, toLogrusLevel(log.LevelFatal))
}

func TestKratosLogger_UnpairedKeyvals(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&CustomFormatter{})

	require.NoError(t, NewKratosLogger(l).Log(log.LevelInfo, "orphan"))
	assert.Contains(t, buf.String(), "orphan=KEYVALS UNPAIRED")
}

func TestInitLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "logs", "studio.log")
	require.NoError(t, InitLogger("warn", path))
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())

	Log.Info("dropped")
	Log.Warn("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestInitLogger_BadLevelFallsBackToInfo(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, InitLogger("loud", ""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
