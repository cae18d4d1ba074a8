package battery

import (
	"fmt"
	"log"
	"os"
	"time"
)

// globalDebug mirrors the most recently set debug flag so that code without a
// Stage pointer (nodes, the navigator) can check it cheaply.
var globalDebug bool

// SetDebug enables or disables debug logging and disposed-node checks.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugLogger writes prefixed lines to stderr.
var debugLogger = log.New(os.Stderr, "[battery] ", 0)

// Logf prints a debug line when debug mode is on.
func Logf(format string, args ...any) {
	if !globalDebug {
		return
	}
	debugLogger.Printf(format, args...)
}

// debugStats holds per-frame timing. Only populated in debug mode.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	triangles  int
	tweens     int
	pending    int
}

// debugLog prints frame stats to stderr.
func (s *Stage) debugLog(stats debugStats) {
	if !globalDebug {
		return
	}
	debugLogger.Printf("update: %v | draw: %v | triangles: %d | tweens: %d | pending tasks: %d",
		stats.updateTime, stats.drawTime, stats.triangles, stats.tweens, stats.pending)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("battery debug: %s on disposed node %q", op, n.Name))
	}
}
