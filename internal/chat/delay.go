package chat

import (
	"context"
	"time"

	"github.com/at-ishikawa/dailyword/internal/tutor"
)

// TypingDelay returns a uniformly random duration in [min, max] with millisecond steps.
func TypingDelay(random tutor.Random, minDelay, maxDelay time.Duration) time.Duration {
	if maxDelay <= minDelay {
		return max(minDelay, 0)
	}
	steps := int((maxDelay - minDelay) / time.Millisecond)
	return minDelay + time.Duration(random.IntN(steps+1))*time.Millisecond
}

// Wait sleeps for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
