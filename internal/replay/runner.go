// Package replay posts a recorded list of submissions to a running service,
// in order, and summarizes the responses.
package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/okian/studytrack/pkg/logger"
)

// Load reads a JSON array of submissions.
func Load(path string) ([]Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	var subs []Submission
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, path, err)
	}
	return subs, nil
}

// Run executes a replay against config.BaseURL.
func Run(ctx context.Context, config *Config) (Summary, error) {
	if config == nil || strings.TrimSpace(config.BaseURL) == "" || config.File == "" {
		return Summary{}, ErrInvalidConfig
	}
	subs, err := Load(config.File)
	if err != nil {
		return Summary{}, err
	}

	log := logger.Named("replay")
	log.Info(ctx, "starting replay",
		logger.String("baseURL", config.BaseURL),
		logger.String("file", config.File),
		logger.Int("submissions", len(subs)),
		logger.Duration("timeout", config.Timeout),
	)

	client := NewHTTPClient(config.BaseURL, config.Timeout)
	if err := client.Health(ctx); err != nil {
		return Summary{}, err
	}
	return Replay(ctx, client, subs, log)
}

// Replay posts subs sequentially so that each progress note is computed
// against the previous entry for the same name.
func Replay(ctx context.Context, client *HTTPClient, subs []Submission, log logger.Logger) (Summary, error) {
	summary := Summary{StartTime: time.Now()}

	for i, sub := range subs {
		if err := ctx.Err(); err != nil {
			return finish(summary), fmt.Errorf("replay: stopped after %d submissions: %w", i, err)
		}
		outcome, status, err := client.Submit(ctx, sub)
		summary.add(outcome)

		fields := []logger.Field{
			logger.Int("index", i),
			logger.String("name", sub.Name),
			logger.String("score", string(sub.Score)),
			logger.String("outcome", string(outcome)),
			logger.Int("status", status),
		}
		switch {
		case err != nil:
			log.Warn(ctx, "submission failed", append(fields, logger.Error(err))...)
		case outcome == Failed:
			log.Warn(ctx, "submission failed", fields...)
		default:
			log.Debug(ctx, "submission replayed", fields...)
		}
	}

	summary = finish(summary)
	log.Info(ctx, "replay completed",
		logger.Int("submitted", summary.Submitted),
		logger.Int("succeeded", summary.Succeeded),
		logger.Int("rejected", summary.Rejected),
		logger.Int("failed", summary.Failed),
		logger.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func finish(s Summary) Summary {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
	return s
}
