package modular

import (
	"log/slog"
	"os"
	"time"
)

// logger receives debug output. Replace it with SetLogger.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// SetLogger routes the engine's log output to l. A nil l silences it.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// frameStats holds per-frame render metrics. Only collected in debug mode.
type frameStats struct {
	camera   string
	cropTime time.Duration
	drawn    int
}

func logFrameStats(stats frameStats) {
	logger.Info("frame rendered",
		slog.String("camera", stats.camera),
		slog.Duration("crop", stats.cropTime),
		slog.Int("drawn", stats.drawn),
	)
}

// debugMaxTreeDepth is the depth past which attaching a node logs a warning.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := TreeNode(n); p != nil; p = p.Parent() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold",
			slog.Int("depth", depth),
			slog.Int("threshold", debugMaxTreeDepth),
			slog.String("node", n.Name),
		)
	}
}

// debugMaxChildCount is the child count past which attaching logs a warning.
const debugMaxChildCount = 1000

func debugCheckChildCount(owner TreeNode) {
	if c := owner.childSet().list.Len(); c > debugMaxChildCount {
		logger.Warn("child count exceeds threshold",
			slog.Int("children", c),
			slog.Int("threshold", debugMaxChildCount),
			slog.String("owner", ownerName(owner)),
		)
	}
}

func ownerName(t TreeNode) string {
	switch v := t.(type) {
	case *Node:
		return v.Name
	case *Scene:
		return "scene"
	case *HUD:
		return "hud"
	case *ControlRoom:
		return "control room"
	default:
		return "unknown"
	}
}
