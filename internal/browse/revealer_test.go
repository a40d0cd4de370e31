package browse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gigdomain "github.com/Muzammil2410/fiver-sub001/internal/gig/domain"
	"github.com/Muzammil2410/fiver-sub001/internal/platform/logger"
)

// manualScheduler queues steps so tests control exactly when a "frame" runs.
type manualScheduler struct {
	pending   []func()
	cancelled int
}

func (s *manualScheduler) schedule(fn func()) func() {
	s.pending = append(s.pending, fn)
	return func() { s.cancelled++ }
}

// runNext runs the oldest pending step.
func (s *manualScheduler) runNext(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, s.pending, "no pending reveal step")
	fn := s.pending[0]
	s.pending = s.pending[1:]
	fn()
}

func makeGigs(n int) []*gigdomain.Gig {
	gigs := make([]*gigdomain.Gig, n)
	for i := range gigs {
		gigs[i] = &gigdomain.Gig{ID: fmt.Sprintf("g%d", i)}
	}
	return gigs
}

func TestRevealer_BatchSequence(t *testing.T) {
	sched := &manualScheduler{}
	var lengths []int
	rv := NewRevealer(12, sched.schedule, func(visible []*gigdomain.Gig) {
		lengths = append(lengths, len(visible))
	}, logger.NewNop())

	rv.Present(makeGigs(30))
	assert.Equal(t, PhaseRevealing, rv.Phase())

	sched.runNext(t)
	sched.runNext(t)

	assert.Equal(t, []int{12, 24, 30}, lengths)
	assert.Equal(t, PhaseComplete, rv.Phase())
	assert.Empty(t, sched.pending)
}

func TestRevealer_SmallResultCompletesImmediately(t *testing.T) {
	sched := &manualScheduler{}
	var lengths []int
	rv := NewRevealer(12, sched.schedule, func(visible []*gigdomain.Gig) {
		lengths = append(lengths, len(visible))
	}, logger.NewNop())

	rv.Present(makeGigs(5))

	assert.Equal(t, []int{5}, lengths)
	assert.Equal(t, PhaseComplete, rv.Phase())
	assert.Empty(t, sched.pending)
}

func TestRevealer_EachBatchIsCumulativePrefix(t *testing.T) {
	sched := &manualScheduler{}
	items := makeGigs(30)
	var snapshots [][]*gigdomain.Gig
	rv := NewRevealer(12, sched.schedule, func(visible []*gigdomain.Gig) {
		snapshots = append(snapshots, visible)
	}, logger.NewNop())

	rv.Present(items)
	sched.runNext(t)
	sched.runNext(t)

	require.Len(t, snapshots, 3)
	for _, snapshot := range snapshots {
		for i, gig := range snapshot {
			assert.Equal(t, items[i].ID, gig.ID)
		}
	}
}

func TestRevealer_SupersessionRestartsFromNewArray(t *testing.T) {
	sched := &manualScheduler{}
	var lengths []int
	var lastFirst string
	rv := NewRevealer(12, sched.schedule, func(visible []*gigdomain.Gig) {
		lengths = append(lengths, len(visible))
		if len(visible) > 0 {
			lastFirst = visible[0].ID
		}
	}, logger.NewNop())

	rv.Present(makeGigs(30))
	assert.Equal(t, []int{12}, lengths)

	// New data arrives mid-reveal.
	replacement := makeGigs(20)
	for i := range replacement {
		replacement[i].ID = fmt.Sprintf("new%d", i)
	}
	rv.Present(replacement)

	assert.Equal(t, 1, sched.cancelled)
	assert.Equal(t, []int{12, 12}, lengths)
	assert.Equal(t, "new0", lastFirst)

	// The superseded step is a stale generation: running it changes nothing.
	staleLen := len(lengths)
	sched.runNext(t)
	if len(lengths) > staleLen {
		assert.Equal(t, 20, lengths[len(lengths)-1])
	}

	for len(sched.pending) > 0 {
		sched.runNext(t)
	}
	assert.Equal(t, PhaseComplete, rv.Phase())
	assert.Equal(t, 20, lengths[len(lengths)-1])
}

func TestRevealer_StopCancelsPendingStep(t *testing.T) {
	sched := &manualScheduler{}
	rv := NewRevealer(12, sched.schedule, nil, logger.NewNop())

	rv.Present(makeGigs(30))
	rv.Stop()

	assert.Equal(t, 1, sched.cancelled)
	assert.Equal(t, PhaseIdle, rv.Phase())

	// The stale step is a no-op after Stop.
	sched.runNext(t)
	assert.Equal(t, PhaseIdle, rv.Phase())
}

func TestRevealer_VisibleMatchesLastReveal(t *testing.T) {
	sched := &manualScheduler{}
	rv := NewRevealer(10, sched.schedule, nil, logger.NewNop())

	rv.Present(makeGigs(25))
	assert.Len(t, rv.Visible(), 10)

	sched.runNext(t)
	assert.Len(t, rv.Visible(), 20)

	sched.runNext(t)
	assert.Len(t, rv.Visible(), 25)
}
