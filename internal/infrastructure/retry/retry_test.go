package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastConfig keeps test runtime low.
func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: 1 * time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		JitterFactor: 0,
	}
}

func TestDo_SuccessOnFirstAttempt(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return nil
	}, DefaultConfig)

	assert.NoError(t, err)
	assert.Equal(t, int32(1), attempts)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, fastConfig(5))

	assert.NoError(t, err)
	assert.Equal(t, int32(3), attempts)
}

func TestDo_MaxAttemptsExceeded(t *testing.T) {
	var attempts int32
	expectedErr := errors.New("persistent error")

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return expectedErr
	}, fastConfig(3))

	assert.Equal(t, expectedErr, err)
	assert.Equal(t, int32(3), attempts)
}

func TestDo_ZeroMaxAttempts(t *testing.T) {
	var attempts int32

	err := Do(context.Background(), func() error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("fail")
	}, Config{MaxAttempts: 0})

	assert.Error(t, err)
	assert.Equal(t, int32(1), attempts)
}

func TestDo_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var attempts int32

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, func() error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("temporary error")
	}, Config{
		MaxAttempts:  10,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	})

	assert.Equal(t, context.Canceled, err)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&attempts), int32(1))
}

func TestDo_ContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var attempts int32
	err := Do(ctx, func() error {
		atomic.AddInt32(&attempts, 1)
		return nil
	}, DefaultConfig)

	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, int32(0), attempts)
}

func TestDo_RetryIfPredicate(t *testing.T) {
	var attempts int32
	retryableErr := errors.New("retryable")
	nonRetryableErr := errors.New("non-retryable")

	err := Do(context.Background(), func() error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return retryableErr
		}
		return nonRetryableErr
	}, fastConfig(5).WithRetryIf(func(err error) bool {
		return errors.Is(err, retryableErr)
	}))

	assert.Equal(t, nonRetryableErr, err)
	assert.Equal(t, int32(2), attempts)
}

func TestDo_PermanentStopsAndIsUnwrapped(t *testing.T) {
	var attempts int32
	rejected := errors.New("401 unauthorized")

	err := Do(context.Background(), func() error {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return errors.New("502 bad gateway")
		}
		return NewPermanent(rejected)
	}, fastConfig(5))

	require.Error(t, err)
	assert.Equal(t, rejected, err)
	assert.False(t, IsPermanent(err))
	assert.Equal(t, int32(2), attempts)
}

func TestDo_OnRetryHook(t *testing.T) {
	var calls []int
	boom := errors.New("boom")

	err := Do(context.Background(), func() error {
		return boom
	}, fastConfig(3).WithOnRetry(func(attempt int, err error, wait time.Duration) {
		assert.Equal(t, boom, err)
		assert.Greater(t, wait, time.Duration(0))
		calls = append(calls, attempt)
	}))

	assert.Equal(t, boom, err)
	assert.Equal(t, []int{1, 2}, calls)
}

func TestDo_MaxDelayRespected(t *testing.T) {
	start := time.Now()

	err := Do(context.Background(), func() error {
		return errors.New("error")
	}, Config{
		MaxAttempts:  5,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     60 * time.Millisecond,
		Multiplier:   10.0,
	})

	assert.Error(t, err)
	// Four waits capped at 60ms each.
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestDoWithResult_SuccessAfterRetries(t *testing.T) {
	var attempts int32

	result, err := DoWithResult(context.Background(), func() (int, error) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return 0, errors.New("temporary")
		}
		return 42, nil
	}, fastConfig(5))

	assert.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, int32(3), attempts)
}

func TestDoWithResult_LastResultReturned(t *testing.T) {
	expectedErr := errors.New("persistent error")

	result, err := DoWithResult(context.Background(), func() (string, error) {
		return "partial", expectedErr
	}, fastConfig(2))

	assert.Equal(t, expectedErr, err)
	assert.Equal(t, "partial", result)
}

func TestPermanentError(t *testing.T) {
	originalErr := errors.New("bad credentials")
	permanent := NewPermanent(originalErr)

	assert.True(t, IsPermanent(permanent))
	assert.Equal(t, "bad credentials", permanent.Error())
	assert.True(t, errors.Is(permanent, originalErr))

	assert.Nil(t, NewPermanent(nil))
	assert.Equal(t, "permanent error", (&Permanent{}).Error())
	assert.False(t, IsPermanent(nil))
	assert.True(t, SkipPermanent(errors.New("regular")))
	assert.False(t, SkipPermanent(permanent))
}

func TestConfig_Builders(t *testing.T) {
	cfg := PricingConfig.
		WithMaxAttempts(4).
		WithInitialDelay(200 * time.Millisecond).
		WithMaxDelay(5 * time.Second).
		WithRetryIf(SkipPermanent)

	assert.Equal(t, 4, cfg.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 5*time.Second, cfg.MaxDelay)
	assert.NotNil(t, cfg.RetryIf)

	// Builders return copies.
	assert.Equal(t, 2, PricingConfig.MaxAttempts)
	assert.Nil(t, PricingConfig.RetryIf)
}

func TestDo_HonorsRequestedWait(t *testing.T) {
	tests := []struct {
		name      string
		requested time.Duration
		maxDelay  time.Duration
		wantWait  time.Duration
	}{
		{name: "longer than backoff", requested: 30 * time.Millisecond, maxDelay: time.Second, wantWait: 30 * time.Millisecond},
		{name: "capped by max delay", requested: time.Minute, maxDelay: 20 * time.Millisecond, wantWait: 20 * time.Millisecond},
		{name: "shorter than backoff is ignored", requested: time.Microsecond, maxDelay: time.Second, wantWait: time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var waits []time.Duration
			rateLimited := errors.New("429 too many requests")

			cfg := fastConfig(2).WithMaxDelay(tt.maxDelay).WithOnRetry(func(_ int, _ error, wait time.Duration) {
				waits = append(waits, wait)
			})
			err := Do(context.Background(), func() error {
				return After(rateLimited, tt.requested)
			}, cfg)

			assert.Equal(t, rateLimited, err, "the Delayed marker should be stripped")
			assert.Equal(t, []time.Duration{tt.wantWait}, waits)
		})
	}
}

func TestAfter(t *testing.T) {
	base := errors.New("503 service unavailable")

	delayed := After(base, 2*time.Second)
	wait, ok := RequestedWait(delayed)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, wait)
	assert.True(t, errors.Is(delayed, base))
	assert.Equal(t, base.Error(), delayed.Error())

	assert.Equal(t, base, After(base, 0))
	assert.Nil(t, After(nil, time.Second))

	_, ok = RequestedWait(base)
	assert.False(t, ok)
}

func TestDo_PermanentInsideDelayedIsUnwrapped(t *testing.T) {
	rejected := errors.New("400 bad request")

	err := Do(context.Background(), func() error {
		return After(NewPermanent(rejected), time.Second)
	}, fastConfig(3))

	assert.Equal(t, rejected, err)
}
