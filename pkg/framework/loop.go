package framework

import (
	"context"
	"log"
	"time"

	"github.com/golang/glog"
)

// Loop runs controllers cooperatively by priority level.
type Loop struct {
	Interval time.Duration

	controllers [PriorityLevels][]Controller

	runners []Runnable

	wakeUpCh chan struct{}
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopCtl struct {
	*Loop
}

type loopIteration struct {
	loopCtl
	ctx           context.Context
	time          time.Time
	priorityLevel int
}

var (
	loopCtxKey = &Loop{}
)

// LoopCtlFrom gets LoopControl from context, nil when the context is
// not owned by a loop.
func LoopCtlFrom(ctx context.Context) LoopControl {
	ctl, _ := ctx.Value(loopCtxKey).(LoopControl)
	return ctl
}

// DefaultInterval is the idle polling interval of the loop.
// Controllers with pending work chain iterations with TriggerNext,
// so the interval only bounds the wake-up latency of an idle loop.
const DefaultInterval = time.Millisecond

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers to the loop.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	l.controllers[priorityLevel] = append(l.controllers[priorityLevel], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementions.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	if l.wakeUpCh == nil {
		l.wakeUpCh = make(chan struct{}, 1)
	}

	runner := NewRunnerWith(context.WithValue(ctx, loopCtxKey, &loopCtl{l}))
	runner.Go(l.runners...)
	defer runner.Wait()

	interval := l.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	timer := time.Tick(interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer:
			l.runIteration(ctx)
		case <-l.wakeUpCh:
			l.runIteration(ctx)
		}
	}
}

// RunOrFail is intended to be used in main to simply run the loop.
func (l *Loop) RunOrFail() {
	if err := l.Run(context.TODO()); err != nil {
		log.Fatalln(err)
	}
}

// TriggerNext implements LoopControl.
func (l *Loop) TriggerNext() {
	select {
	case l.wakeUpCh <- struct{}{}:
	default:
	}
}

func (l *Loop) runIteration(ctx context.Context) {
	iter := &loopIteration{loopCtl: loopCtl{l}, time: time.Now()}
	iter.ctx = context.WithValue(ctx, loopCtxKey, iter)
	for i := 0; i < PriorityLevels; i++ {
		iter.priorityLevel = i
		for _, ctl := range l.controllers[i] {
			if err := ctl.Control(iter); err != nil {
				glog.Errorf("controller error: %v", err)
			}
		}
	}
}

func (t *loopIteration) Context() context.Context {
	return t.ctx
}

func (t *loopIteration) Time() time.Time {
	return t.time
}

func (t *loopIteration) PriorityLevel() int {
	return t.priorityLevel
}
