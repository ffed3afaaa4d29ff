package gol

import "time"

// Defaults used when a Params field is left zero.
const (
	DefaultWidth    = 80
	DefaultHeight   = 80
	DefaultDelay    = 400 * time.Millisecond
	DefaultStageKey = "gameStage"
	DefaultDelayKey = "gameDelay"
)

// Limits on the delay between generations.
const (
	MinDelay = 10 * time.Millisecond
	MaxDelay = 900 * time.Millisecond
)

// Params provides the details of the board and where its state is kept.
type Params struct {
	Width  int
	Height int
	// Delay is the time between generations while the game is running
	Delay time.Duration
	// StageKey is the store key holding the encoded board
	StageKey string
	// DelayKey is the store key holding the delay in milliseconds
	DelayKey string
}

// If params doesn't have values, set the defaults
func (p Params) withDefaults() Params {
	if p.Width == 0 {
		p.Width = DefaultWidth
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	if p.Delay == 0 {
		p.Delay = DefaultDelay
	}
	if p.StageKey == "" {
		p.StageKey = DefaultStageKey
	}
	if p.DelayKey == "" {
		p.DelayKey = DefaultDelayKey
	}
	return p
}

func clampDelay(d time.Duration) time.Duration {
	if d < MinDelay {
		return MinDelay
	}
	if d > MaxDelay {
		return MaxDelay
	}
	return d
}

// slower returns the delay after one "slower" press: +10ms below 100ms,
// +100ms otherwise, never above MaxDelay.
func slower(d time.Duration) time.Duration {
	step := 100 * time.Millisecond
	if d < 100*time.Millisecond {
		step = 10 * time.Millisecond
	}
	return clampDelay(d + step)
}

// faster returns the delay after one "faster" press: -10ms at or below 100ms,
// -100ms otherwise, never below MinDelay.
func faster(d time.Duration) time.Duration {
	step := 100 * time.Millisecond
	if d <= 100*time.Millisecond {
		step = 10 * time.Millisecond
	}
	return clampDelay(d - step)
}
