// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package backoff provides exponential-backoff retrying for operations the
// core state machine never performs itself, but the host around it
// (output handler delivery, snapshot-store calls) needs.
package backoff

import (
	"math/rand"
	"time"
)

// done is returned by Retrier.NextBackOff to signal the retry budget is
// exhausted.
const done time.Duration = -1

// Clock is the minimal time source Retrier needs.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production Clock.
var SystemClock Clock = systemClock{}

// RetryPolicy configures an exponential backoff with jitter.
type RetryPolicy struct {
	InitialInterval    time.Duration
	BackoffCoefficient float64
	MaximumInterval    time.Duration
	MaximumAttempts    int // 0 means unlimited
	ExpirationInterval time.Duration // 0 means unlimited
}

// NewExponentialRetryPolicy returns a RetryPolicy with sensible defaults
// seeded from initialInterval, the way cadence/temporal-style SDKs do.
func NewExponentialRetryPolicy(initialInterval time.Duration) RetryPolicy {
	return RetryPolicy{
		InitialInterval:    initialInterval,
		BackoffCoefficient: 2.0,
		MaximumInterval:    100 * initialInterval,
		MaximumAttempts:    0,
		ExpirationInterval: 0,
	}
}

// Retrier tracks the state of one retry sequence governed by a RetryPolicy.
type Retrier struct {
	policy    RetryPolicy
	clock     Clock
	startTime time.Time
	attempt   int
}

// NewRetrier creates a Retrier for policy using clk as its time source.
func NewRetrier(policy RetryPolicy, clk Clock) Retrier {
	return Retrier{policy: policy, clock: clk, startTime: clk.Now()}
}

// Reset clears the attempt counter, starting a fresh retry sequence.
func (r *Retrier) Reset() {
	r.attempt = 0
	r.startTime = r.clock.Now()
}

// NextBackOff returns how long to wait before the next attempt, or `done`
// when the policy's attempt or expiration budget is exhausted.
func (r *Retrier) NextBackOff() time.Duration {
	r.attempt++

	if r.policy.MaximumAttempts > 0 && r.attempt > r.policy.MaximumAttempts {
		return done
	}
	if r.policy.ExpirationInterval > 0 && r.clock.Now().Sub(r.startTime) > r.policy.ExpirationInterval {
		return done
	}

	interval := float64(r.policy.InitialInterval)
	coefficient := r.policy.BackoffCoefficient
	if coefficient <= 1.0 {
		coefficient = 1.0
	}
	for i := 1; i < r.attempt; i++ {
		interval *= coefficient
	}

	maxInterval := float64(r.policy.MaximumInterval)
	if maxInterval > 0 && interval > maxInterval {
		interval = maxInterval
	}

	// +/-20% jitter to avoid synchronized retry storms across instances.
	jitter := interval * 0.2 * (2*rand.Float64() - 1)
	next := time.Duration(interval + jitter)
	if next < 0 {
		next = 0
	}
	return next
}
