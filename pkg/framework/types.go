package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Controller defines one cooperative step of the loop.
// A controller must run to completion quickly and never block;
// long-lived work belongs in a Runnable.
type Controller interface {
	Control(ControlContext) error
}

// TimeSource provides the time for controlling logic.
type TimeSource interface {
	Time() time.Time
}

// ControlContext provides the context of current control
// iteration.
type ControlContext interface {
	TimeSource
	// Context retrieves context.Context.
	Context() context.Context
	// PriorityLevel gets the current priority level.
	PriorityLevel() int

	LoopControl
}

// PriorityLevels is the total levels of priorities.
const PriorityLevels int = 16

// Predefine priority levels
const (
	PrLvTop    int = 0
	PrLvHigh   int = 4
	PrLvNormal int = 8
	PrLvLow    int = 12
	PrLvIdle   int = PriorityLevels - 1

	// PrLvDrain is the alias of priority level for draining captured input.
	PrLvDrain = PrLvHigh
	// PrLvFormat is the alias of priority level for formatting output.
	PrLvFormat = PrLvNormal
	// PrLvTransmit is the alias of priority level for transmission.
	PrLvTransmit = PrLvLow
	// PrLvService is the alias of priority level for transport housekeeping.
	PrLvService = PrLvIdle - 1
	// PrLvReport is the alias of priority level for periodic reporting.
	PrLvReport = PrLvIdle
)

// LoopControl exposes access to the controlling loop.
type LoopControl interface {
	// TriggerNext schedules the next iteration to be executed
	// immediately after the current iteration.
	TriggerNext()
}

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(ctx ControlContext) error {
	return f(ctx)
}
