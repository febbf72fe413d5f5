package trace

import (
	"context"
	"time"
)

// testCtl is a minimal ControlContext for driving controllers
// directly in tests.
type testCtl struct {
	now       time.Time
	triggered int
}

func (c *testCtl) Context() context.Context {
	return context.TODO()
}

func (c *testCtl) Time() time.Time {
	if c.now.IsZero() {
		return time.Now()
	}
	return c.now
}

func (c *testCtl) PriorityLevel() int {
	return 0
}

func (c *testCtl) TriggerNext() {
	c.triggered++
}
