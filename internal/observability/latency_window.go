package observability

import (
	"slices"
	"sync"
	"time"
)

// stageTargets lists the stages served at /v1/perf/latency, in display
// order, with the p95 each one is expected to stay under.
var stageTargets = []struct {
	name   string
	target time.Duration
}{
	{StageCompletion, 2500 * time.Millisecond},
	{StageChatTotal, 3000 * time.Millisecond},
}

type StageStats struct {
	Stage       string `json:"stage"`
	Samples     int    `json:"samples"`
	LastMS      int64  `json:"last_ms"`
	AvgMS       int64  `json:"avg_ms"`
	P95MS       int64  `json:"p95_ms"`
	MaxMS       int64  `json:"max_ms"`
	TargetP95MS int64  `json:"target_p95_ms"`
}

type LatencySnapshot struct {
	GeneratedAt time.Time    `json:"generated_at"`
	WindowSize  int          `json:"window_size"`
	Stages      []StageStats `json:"stages"`
}

// latencyWindow holds the most recent durations of each known stage.
// Unknown stage names are ignored.
type latencyWindow struct {
	mu    sync.Mutex
	size  int
	rings map[string][]time.Duration
	pos   map[string]int
}

func newLatencyWindow(size int) *latencyWindow {
	if size <= 0 {
		size = 256
	}
	w := &latencyWindow{
		size:  size,
		rings: make(map[string][]time.Duration, len(stageTargets)),
		pos:   make(map[string]int, len(stageTargets)),
	}
	for _, st := range stageTargets {
		w.rings[st.name] = make([]time.Duration, 0, size)
	}
	return w
}

func (w *latencyWindow) Observe(stage string, d time.Duration) {
	if d < 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	ring, ok := w.rings[stage]
	if !ok {
		return
	}
	if len(ring) < w.size {
		w.rings[stage] = append(ring, d)
		return
	}
	// pos points at the oldest sample once the ring is full.
	i := w.pos[stage]
	ring[i] = d
	w.pos[stage] = (i + 1) % w.size
}

func (w *latencyWindow) Snapshot() LatencySnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := LatencySnapshot{
		GeneratedAt: time.Now().UTC(),
		WindowSize:  w.size,
		Stages:      make([]StageStats, 0, len(stageTargets)),
	}
	for _, st := range stageTargets {
		ring := w.rings[st.name]
		if len(ring) == 0 {
			continue
		}
		last := ring[len(ring)-1]
		if len(ring) == w.size {
			last = ring[(w.pos[st.name]+w.size-1)%w.size]
		}

		sorted := slices.Clone(ring)
		slices.Sort(sorted)
		var sum time.Duration
		for _, d := range sorted {
			sum += d
		}
		// Nearest-rank p95: the smallest sample covering 95% of the window.
		rank := (len(sorted)*95 + 99) / 100

		snap.Stages = append(snap.Stages, StageStats{
			Stage:       st.name,
			Samples:     len(sorted),
			LastMS:      last.Milliseconds(),
			AvgMS:       (sum / time.Duration(len(sorted))).Milliseconds(),
			P95MS:       sorted[rank-1].Milliseconds(),
			MaxMS:       sorted[len(sorted)-1].Milliseconds(),
			TargetP95MS: st.target.Milliseconds(),
		})
	}
	return snap
}
