// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"time"
)

// Capacity controller tuning. Utilization decides directly; throughput
// only breaks ties when utilization sits in the middle band. Throughput
// is compared against buffer turnover (samples per second relative to
// capacity): a buffer cycling many times per second is undersized even
// if the sampling instant caught it half empty.
const (
	defaultHysteresisTicks = 2
	defaultCooldownTicks   = 1
	highTurnoverPerSec     = 8.0
	lowTurnoverPerSec      = 0.25
)

// CapacityController grows and shrinks a SampleRing between configured
// bounds based on observed utilization and throughput. Decisions are
// hysteresis-gated: a signal must persist for consecutive check
// intervals before a resize, and each resize is followed by a cooldown,
// so a single burst never causes capacity thrash.
//
// The controller shares the ring owner's single-threaded discipline:
// Tick must be called from the same context that offers and polls, so a
// resize can never interleave with ingestion.
type CapacityController struct {
	ring        *SampleRing
	minCapacity int
	maxCapacity int
	highWater   float64
	lowWater    float64
	interval    time.Duration
	hysteresis  int
	cooldown    int

	lastCheck    time.Time
	highStreak   int
	lowStreak    int
	cooldownLeft int
	grows        int
	shrinks      int
}

// NewCapacityController returns a controller that keeps ring's capacity
// within [minCapacity, maxCapacity]. Both bounds must be powers of two
// and must bracket the ring's current capacity. highWater and lowWater
// are the utilization thresholds; interval is the minimum wall-time
// spacing between evaluations.
func NewCapacityController(ring *SampleRing, minCapacity, maxCapacity int, highWater, lowWater float64, interval time.Duration) (*CapacityController, error) {
	if !isPowerOfTwo(minCapacity) || !isPowerOfTwo(maxCapacity) ||
		minCapacity > maxCapacity ||
		ring.Cap() < minCapacity || ring.Cap() > maxCapacity {
		return nil, ErrInvalidCapacity
	}
	if lowWater <= 0 || highWater >= 1 || lowWater >= highWater {
		return nil, ErrInvalidThresholds
	}

	return &CapacityController{
		ring:        ring,
		minCapacity: minCapacity,
		maxCapacity: maxCapacity,
		highWater:   highWater,
		lowWater:    lowWater,
		interval:    interval,
		hysteresis:  defaultHysteresisTicks,
		cooldown:    defaultCooldownTicks,
	}, nil
}

// Bounds returns the configured capacity bounds.
func (c *CapacityController) Bounds() (minCapacity, maxCapacity int) {
	return c.minCapacity, c.maxCapacity
}

// Resizes returns how many grow and shrink operations have been applied.
func (c *CapacityController) Resizes() (grows, shrinks int) {
	return c.grows, c.shrinks
}

// Tick evaluates the current load and resizes the ring when the signal
// has persisted long enough. Calls arriving before the check interval
// has elapsed are ignored, so callers may invoke it freely on the hot
// path. throughput is in samples per second. It returns true when a
// resize was applied.
func (c *CapacityController) Tick(now time.Time, utilization, throughput float64) bool {
	if !c.lastCheck.IsZero() && now.Sub(c.lastCheck) < c.interval {
		return false
	}
	c.lastCheck = now

	if c.cooldownLeft > 0 {
		c.cooldownLeft--
		return false
	}

	switch {
	case utilization >= c.highWater:
		c.highStreak++
		c.lowStreak = 0
	case utilization <= c.lowWater:
		c.lowStreak++
		c.highStreak = 0
	default:
		c.tickThroughput(throughput)
	}

	switch {
	case c.highStreak >= c.hysteresis:
		c.highStreak = 0
		return c.grow()
	case c.lowStreak >= c.hysteresis:
		c.lowStreak = 0
		return c.shrink()
	}
	return false
}

// tickThroughput feeds the secondary signal into the same streaks when
// utilization is inconclusive.
func (c *CapacityController) tickThroughput(throughput float64) {
	if throughput < 0 {
		return
	}

	turnover := throughput / float64(c.ring.Cap())
	switch {
	case turnover >= highTurnoverPerSec:
		c.highStreak++
		c.lowStreak = 0
	case turnover <= lowTurnoverPerSec:
		c.lowStreak++
		c.highStreak = 0
	default:
		c.highStreak = 0
		c.lowStreak = 0
	}
}

// grow doubles the capacity, bounded by maxCapacity. A refused resize
// (bounds, live contents, in-progress) leaves the ring unchanged and is
// not fatal.
func (c *CapacityController) grow() bool {
	next := c.ring.Cap() * 2
	if next > c.maxCapacity {
		return false
	}
	if !c.ring.Resize(next) {
		return false
	}

	c.grows++
	c.cooldownLeft = c.cooldown
	return true
}

// shrink halves the capacity, bounded by minCapacity and by the number
// of live samples (Resize refuses to drop buffered data).
func (c *CapacityController) shrink() bool {
	next := c.ring.Cap() / 2
	if next < c.minCapacity {
		return false
	}
	if !c.ring.Resize(next) {
		return false
	}

	c.shrinks++
	c.cooldownLeft = c.cooldown
	return true
}
