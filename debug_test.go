package battery

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureDebug(t *testing.T, enabled bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := globalDebug
	SetDebug(enabled)
	debugLogger.SetOutput(&buf)
	t.Cleanup(func() {
		SetDebug(prev)
		debugLogger.SetOutput(os.Stderr)
	})
	return &buf
}

func TestLogfSilentByDefault(t *testing.T) {
	buf := captureDebug(t, false)
	Logf("hello %d", 1)
	if buf.Len() != 0 {
		t.Errorf("Logf wrote %q with debug off", buf.String())
	}
}

func TestLogfPrefixed(t *testing.T) {
	buf := captureDebug(t, true)
	Logf("hello %d", 1)
	if got := buf.String(); got != "[battery] hello 1\n" {
		t.Errorf("Logf wrote %q", got)
	}
}

func TestDebugLogStats(t *testing.T) {
	buf := captureDebug(t, true)
	s := &Stage{}
	s.debugLog(debugStats{triangles: 12, tweens: 2})
	if !strings.Contains(buf.String(), "triangles: 12") || !strings.Contains(buf.String(), "tweens: 2") {
		t.Errorf("debugLog wrote %q", buf.String())
	}
}

func TestDebugDisposedPanics(t *testing.T) {
	captureDebug(t, true)
	parent := NewContainer("parent")
	child := NewContainer("child")
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "disposed node \"child\"") {
			t.Errorf("panic = %v", r)
		}
	}()
	parent.AddChild(child)
}

func TestAnimatorLogsTransitions(t *testing.T) {
	buf := captureDebug(t, true)
	a, _, _ := newTestAnimator(DefaultConfig().Animation)
	a.PageChange(PageHome)
	if !strings.Contains(buf.String(), "hidden -> entering") {
		t.Errorf("log = %q", buf.String())
	}
}
