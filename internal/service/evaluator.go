package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"travelrec/internal/cache"
	"travelrec/internal/model"
	"travelrec/internal/utils"
)

// CachedEvaluator memoizes successful responses of another Evaluator.
// Entries are keyed by the normalized query and the catalog version, so a
// reloaded catalog never serves stale results.
type CachedEvaluator struct {
	next    Evaluator
	client  cache.Client
	version string
	ttl     time.Duration
	logger  zerolog.Logger
}

// NewCachedEvaluator wraps next with a result cache
func NewCachedEvaluator(next Evaluator, client cache.Client, version string, ttl time.Duration, logger zerolog.Logger) *CachedEvaluator {
	return &CachedEvaluator{
		next:    next,
		client:  client,
		version: version,
		ttl:     ttl,
		logger:  logger,
	}
}

// Evaluate implements Evaluator. Cache errors are logged and otherwise
// ignored.
func (c *CachedEvaluator) Evaluate(ctx context.Context, query string) *model.RecommendationResponse {
	normalized := NormalizeQuery(query)
	if normalized == "" {
		return c.next.Evaluate(ctx, query)
	}
	key := cache.Key("rec", c.version, normalized)

	data, err := c.client.Get(ctx, key)
	switch {
	case err == nil:
		var cached model.RecommendationResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			// the echoed query is the caller's, not the first writer's
			cached.Query = query
			return &cached
		}
		c.logger.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	case !errors.Is(err, cache.ErrCacheMiss):
		c.logger.Warn().Err(err).Msg("Cache lookup failed")
	}

	resp := c.next.Evaluate(ctx, query)
	if !resp.Success {
		return resp
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn().Err(err).Msg("Cache store failed")
		}
	}
	return resp
}

// SubprocessEvaluator runs the recommend binary once per query and reads
// the result object from its stdout. Diagnostics on stderr are logged.
type SubprocessEvaluator struct {
	binary  string
	args    []string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewSubprocessEvaluator creates an evaluator that invokes
// "<binary> <args...> query <query>"
func NewSubprocessEvaluator(binary string, args []string, timeout time.Duration, logger zerolog.Logger) *SubprocessEvaluator {
	return &SubprocessEvaluator{
		binary:  binary,
		args:    append([]string(nil), args...),
		timeout: timeout,
		logger:  logger,
	}
}

// Evaluate implements Evaluator
func (s *SubprocessEvaluator) Evaluate(ctx context.Context, query string) *model.RecommendationResponse {
	if strings.TrimSpace(query) == "" {
		return FailureResponse(query, ErrEmptyQuery)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	args := append(append([]string(nil), s.args...), "query", query)
	cmd := exec.CommandContext(ctx, s.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// stop waiting on pipes held open by grandchildren once the engine is killed
	cmd.WaitDelay = time.Second

	startTime := time.Now()
	runErr := cmd.Run()

	if stderr.Len() > 0 {
		s.logger.Debug().Str("stderr", strings.TrimSpace(stderr.String())).Msg("Engine diagnostics")
	}

	var resp model.RecommendationResponse
	if err := utils.ExtractResultJSON(stdout.String(), &resp); err != nil {
		s.logger.Error().
			Err(err).
			AnErr("run_error", runErr).
			Dur("took", time.Since(startTime)).
			Msg("Engine produced no result")
		return FailureResponse(query, fmt.Errorf("%w: %v", ErrEngineFailed, err))
	}

	if runErr != nil {
		s.logger.Warn().Err(runErr).Msg("Engine exited with an error but produced a result")
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []string{}
	}
	return &resp
}
