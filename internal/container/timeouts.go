// SPDX-License-Identifier: MPL-2.0

package container

import (
	"time"

	"github.com/dockwright/dockwright/internal/operation"
)

// Timeouts holds the per-class subprocess deadlines.
type Timeouts struct {
	Default        time.Duration
	Long           time.Duration
	Build          time.Duration
	MaxLongRunning time.Duration
	Probe          time.Duration
}

// DefaultTimeouts returns the built-in deadlines.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Default:        60 * time.Second,
		Long:           300 * time.Second,
		Build:          600 * time.Second,
		MaxLongRunning: time.Hour,
		Probe:          10 * time.Second,
	}
}

// Class returns the default deadline of a timeout class.
func (t Timeouts) Class(c operation.TimeoutClass) time.Duration {
	switch c {
	case operation.TimeoutLong:
		return t.Long
	case operation.TimeoutBuild:
		return t.Build
	default:
		return t.Default
	}
}

// For resolves the deadline of one invocation. An explicit execTimeout may only
// shorten the class default unless longRunning is set, in which case it may extend
// up to MaxLongRunning. longRunning without execTimeout selects MaxLongRunning.
func (t Timeouts) For(c operation.TimeoutClass, p operation.Params) time.Duration {
	base := t.Class(c)
	ceiling := base
	long := p.Bool(operation.FieldLongRunning)
	if long {
		ceiling = max(base, t.MaxLongRunning)
	}
	if n, ok := p.Int(operation.FieldExecTimeout); ok && n > 0 {
		return min(time.Duration(n)*time.Second, ceiling)
	}
	return ceiling
}
