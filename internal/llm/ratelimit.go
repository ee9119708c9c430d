package llm

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cadre-sh/cadre/internal/config"
	"github.com/cadre-sh/cadre/internal/logger"
)

// TokenEstimator approximates token counts for request budgeting
type TokenEstimator struct{}

func NewTokenEstimator() *TokenEstimator {
	return &TokenEstimator{}
}

// EstimateTokens estimates tokens in a string, roughly chars/4 plus a 20%
// buffer
func (e *TokenEstimator) EstimateTokens(text string) int {
	baseEstimate := len(text) / 4
	return int(float64(baseEstimate) * 1.2)
}

// EstimateRequest estimates the token cost of a full request
func (e *TokenEstimator) EstimateRequest(req Request) int {
	total := e.EstimateTokens(req.System)
	for _, msg := range req.Messages {
		// ~4 tokens of structural overhead per message
		total += 4
		total += e.EstimateTokens(msg.Content)
	}
	// ~100 tokens per tool definition
	total += len(req.Tools) * 100
	return total
}

// TokenBucket wraps x/time/rate with request-sized reservations
type TokenBucket struct {
	limiter *rate.Limiter
	mu      sync.Mutex
}

// NewTokenBucket creates a limiter from a tokens-per-minute budget. Burst
// allows about ten seconds of headroom.
func NewTokenBucket(tokensPerMinute int) *TokenBucket {
	tokensPerSecond := float64(tokensPerMinute) / 60.0
	burstSize := tokensPerMinute / 6
	if burstSize < 1000 {
		burstSize = 1000
	}
	return &TokenBucket{
		limiter: rate.NewLimiter(rate.Limit(tokensPerSecond), burstSize),
	}
}

// Wait blocks until the given number of tokens are available
func (tb *TokenBucket) Wait(ctx context.Context, tokens int) error {
	tb.mu.Lock()
	reservation := tb.limiter.ReserveN(time.Now(), tokens)
	tb.mu.Unlock()

	if !reservation.OK() {
		logger.Debug("rate limit: request exceeds burst size, waiting for availability")
	}

	delay := reservation.Delay()
	if delay > 0 {
		logger.Debug("rate limit: waiting %v for %d tokens", delay, tokens)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			reservation.Cancel()
			return ctx.Err()
		}
	}
	return nil
}

// BackoffWaiter blocks for a retry delay. Callers can install one to show
// progress during long waits; without one the provider sleeps silently.
type BackoffWaiter interface {
	Wait(ctx context.Context, message string, d time.Duration) error
}

// RateLimitedProvider wraps a Provider with client-side token budgeting and
// retry on server 429s
type RateLimitedProvider struct {
	inner       Provider
	tokenBucket *TokenBucket
	estimator   *TokenEstimator
	cfg         *config.RateLimitConfig
	waiter      BackoffWaiter
}

func NewRateLimitedProvider(inner Provider, cfg *config.RateLimitConfig) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:       inner,
		tokenBucket: NewTokenBucket(cfg.TokensPerMinute),
		estimator:   NewTokenEstimator(),
		cfg:         cfg,
	}
}

// SetBackoffWaiter installs a waiter used during retry backoff
func (p *RateLimitedProvider) SetBackoffWaiter(w BackoffWaiter) {
	p.waiter = w
}

func (p *RateLimitedProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	return p.inner.ListModels(ctx)
}

// ChatStream budgets the request against the token bucket, then streams from
// the inner provider, retrying with backoff when the server answers 429
func (p *RateLimitedProvider) ChatStream(ctx context.Context, req Request) <-chan StreamChunk {
	ch := make(chan StreamChunk, 100)

	go func() {
		defer close(ch)

		estimated := p.estimator.EstimateRequest(req)
		logger.Debug("rate limit: estimated %d tokens for request", estimated)

		if err := p.tokenBucket.Wait(ctx, estimated); err != nil {
			ch <- StreamChunk{Type: "error", Error: err}
			return
		}

		var lastErr error
		for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
			if attempt > 0 {
				delay := p.calculateBackoff(attempt)
				logger.Debug("rate limit: retry %d/%d, waiting %v", attempt, p.cfg.MaxRetries, delay)
				if err := p.sleepBackoff(ctx, delay); err != nil {
					ch <- StreamChunk{Type: "error", Error: err}
					return
				}
			}

			stream := p.inner.ChatStream(ctx, req)

			gotRateLimit := false
			for chunk := range stream {
				if chunk.Type == "error" && chunk.Error != nil {
					if isRateLimitError(chunk.Error) {
						lastErr = chunk.Error
						gotRateLimit = true
						logger.Warn("rate limit hit (attempt %d/%d): %v", attempt+1, p.cfg.MaxRetries+1, chunk.Error)
						break
					}
					ch <- chunk
					return
				}
				ch <- chunk
			}

			if !gotRateLimit {
				return
			}
		}

		if lastErr != nil {
			ch <- StreamChunk{Type: "error", Error: lastErr}
		}
	}()

	return ch
}

func (p *RateLimitedProvider) sleepBackoff(ctx context.Context, delay time.Duration) error {
	if p.waiter != nil {
		return p.waiter.Wait(ctx, "Rate limited, retrying", delay)
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// calculateBackoff returns exponential backoff with up to 25% jitter, capped
// at MaxDelay
func (p *RateLimitedProvider) calculateBackoff(attempt int) time.Duration {
	backoff := float64(p.cfg.BaseDelay) * math.Pow(2, float64(attempt-1))
	backoff += backoff * 0.25 * rand.Float64()
	if backoff > float64(p.cfg.MaxDelay) {
		backoff = float64(p.cfg.MaxDelay)
	}
	return time.Duration(backoff)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "Rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "Too Many Requests")
}
