package browse

import (
	"sync"
	"time"

	"go.uber.org/zap"

	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

// Phase is the reveal state of the current result set.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRevealing
	PhaseComplete
)

// DefaultBatchSize is how many listings one reveal step exposes.
const DefaultBatchSize = 12

// frameDelay approximates one display refresh at 60Hz. The revealer yields
// between batches so a large result set never renders in a single pass.
const frameDelay = 16 * time.Millisecond

// Scheduler defers a step to the next refresh opportunity. The returned
// cancel function discards the step if it has not yet run.
type Scheduler func(fn func()) (cancel func())

func timerScheduler(fn func()) func() {
	t := time.AfterFunc(frameDelay, fn)
	return func() { t.Stop() }
}

// Revealer exposes a result array to the display layer in cumulative
// fixed-size prefixes. A new array delivered mid-reveal supersedes the old
// one: the pending step is cancelled and batching restarts from the new
// array's first batch.
type Revealer struct {
	mu        sync.Mutex
	batchSize int
	schedule  Scheduler
	onReveal  func(visible []*gigdomain.Gig)
	logger    *logger.Logger

	phase   Phase
	items   []*gigdomain.Gig
	cursor  int
	gen     uint64
	cancel  func()
	visible []*gigdomain.Gig
}

// NewRevealer builds a revealer. onReveal receives each cumulative prefix as
// it becomes visible; a nil scheduler uses a frame-interval timer.
func NewRevealer(batchSize int, schedule Scheduler, onReveal func([]*gigdomain.Gig), log *logger.Logger) *Revealer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if schedule == nil {
		schedule = timerScheduler
	}
	return &Revealer{
		batchSize: batchSize,
		schedule:  schedule,
		onReveal:  onReveal,
		logger:    log.Named("Revealer"),
	}
}

// Present starts revealing a new result array, superseding any reveal still
// in progress.
func (rv *Revealer) Present(items []*gigdomain.Gig) {
	rv.mu.Lock()

	if rv.cancel != nil {
		rv.cancel()
		rv.cancel = nil
	}
	rv.gen++
	rv.items = items
	rv.cursor = 0

	rv.advanceLocked(rv.gen)
	rv.mu.Unlock()
}

// advanceLocked reveals the next cumulative prefix and schedules the step
// after it. Callers hold rv.mu.
func (rv *Revealer) advanceLocked(gen uint64) {
	next := rv.cursor + rv.batchSize
	if next > len(rv.items) {
		next = len(rv.items)
	}
	rv.cursor = next

	rv.visible = rv.items[:rv.cursor]
	if rv.onReveal != nil {
		prefix := make([]*gigdomain.Gig, rv.cursor)
		copy(prefix, rv.items[:rv.cursor])
		rv.onReveal(prefix)
	}

	if rv.cursor >= len(rv.items) {
		rv.phase = PhaseComplete
		rv.logger.Debug("reveal complete", zap.Int("items", len(rv.items)))
		return
	}

	rv.phase = PhaseRevealing
	rv.cancel = rv.schedule(func() { rv.step(gen) })
}

// step runs one scheduled reveal. A stale generation means the reveal was
// superseded after this step was scheduled but before it ran.
func (rv *Revealer) step(gen uint64) {
	rv.mu.Lock()
	defer rv.mu.Unlock()

	if gen != rv.gen {
		return
	}
	rv.cancel = nil
	rv.advanceLocked(gen)
}

// Visible returns the currently revealed prefix.
func (rv *Revealer) Visible() []*gigdomain.Gig {
	rv.mu.Lock()
	defer rv.mu.Unlock()

	out := make([]*gigdomain.Gig, len(rv.visible))
	copy(out, rv.visible)
	return out
}

// Phase reports the current reveal phase.
func (rv *Revealer) Phase() Phase {
	rv.mu.Lock()
	defer rv.mu.Unlock()
	return rv.phase
}

// Stop cancels any pending reveal step. Call on view teardown.
func (rv *Revealer) Stop() {
	rv.mu.Lock()
	defer rv.mu.Unlock()

	if rv.cancel != nil {
		rv.cancel()
		rv.cancel = nil
	}
	rv.gen++
	rv.phase = PhaseIdle
}
