package bootstrap

import (
	"log/slog"
)

// ExpansionMonitor provides hooks to observe an expansion run.
// Implement this interface to trace frontiers and map growth per round.
type ExpansionMonitor interface {
	Start(label string, seeds []string)
	RoundStart(label string, step int, frontier []string)
	TermSkipped(label string, step int, term string)
	RoundFinish(label string, step int, size int)
	Finish(label string, scores *ScoreMap)
}

// noopMonitor is a no-op implementation of ExpansionMonitor
type noopMonitor struct{}

var _ ExpansionMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string) {}

func (n *noopMonitor) RoundStart(_ string, _ int, _ []string) {}

func (n *noopMonitor) TermSkipped(_ string, _ int, _ string) {}

func (n *noopMonitor) RoundFinish(_ string, _ int, _ int) {}

func (n *noopMonitor) Finish(_ string, _ *ScoreMap) {}

// NoopMonitor returns a monitor that ignores every event.
func NoopMonitor() ExpansionMonitor {
	return &noopMonitor{}
}

// logMonitor reports expansion progress through slog.
type logMonitor struct {
	logger *slog.Logger
}

var _ ExpansionMonitor = (*logMonitor)(nil)

// NewLogMonitor returns a monitor that logs the seed set, each frontier and
// the running map size. Frontier contents and skips are logged at debug level.
func NewLogMonitor(logger *slog.Logger) ExpansionMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &logMonitor{logger: logger}
}

func (m *logMonitor) Start(label string, seeds []string) {
	m.logger.Info("starting expansion", "label", label, "seeds", seeds)
}

func (m *logMonitor) RoundStart(label string, step int, frontier []string) {
	m.logger.Debug("expanding frontier", "label", label, "depth", step, "size", len(frontier), "frontier", frontier)
}

func (m *logMonitor) TermSkipped(label string, step int, term string) {
	m.logger.Debug("term not in vocabulary", "label", label, "depth", step, "term", term)
}

func (m *logMonitor) RoundFinish(label string, step int, size int) {
	m.logger.Info("current set size", "label", label, "depth", step, "size", size)
}

func (m *logMonitor) Finish(label string, scores *ScoreMap) {
	m.logger.Info("expansion complete", "label", label, "terms", scores.Len())
}
