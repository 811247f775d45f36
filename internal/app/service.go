// Package service runs the evaluation flow: classify a submitted score,
// recommend study activities, compare with the student's previous evaluation
// and persist the new record.
package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	repository "github.com/okian/studytrack/internal/adapters/repository"
	"github.com/okian/studytrack/internal/domain/model"
	"github.com/okian/studytrack/internal/domain/monitor"
	"github.com/okian/studytrack/internal/domain/recommend"
	"github.com/okian/studytrack/internal/domain/tier"
	"github.com/okian/studytrack/pkg/logger"
	"github.com/okian/studytrack/pkg/metrics"
)

// Submission is the raw form input. Score is parsed by Submit.
type Submission struct {
	Name    string
	Score   string
	Course  string
	Subject string
}

// Result is everything shown to the user after a successful submission.
type Result struct {
	Record    model.PerformanceRecord
	Feedback  string
	Advice    string
	Frequency string
	Note      string
}

// pinger is implemented by stores that can report reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

// Service implements the API dependencies for the evaluation form.
type Service struct {
	mu sync.RWMutex

	store       repository.Store
	ownsStore   bool
	recommender recommend.Recommender
	monitor     *monitor.Monitor

	dbPath    string
	storeOpts []repository.Option

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a history store. The caller keeps ownership and Stop
// does not close it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDBPath sets the SQLite file opened by Start when no store is injected.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithStoreOptions passes options to the SQLite store opened by Start.
func WithStoreOptions(opts ...repository.Option) Option {
	return func(s *Service) {
		s.storeOpts = append(s.storeOpts, opts...)
	}
}

// WithRecommender replaces the table-backed recommender.
func WithRecommender(r recommend.Recommender) Option {
	return func(s *Service) {
		if r != nil {
			s.recommender = r
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:      "data/students.db",
		recommender: recommend.NewTableRecommender(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the history store if none was injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		store, err := repository.OpenSQLite(ctx, s.dbPath, s.storeOpts...)
		if err != nil {
			return fmt.Errorf("service.start: %w", err)
		}
		s.store = store
		s.ownsStore = true
		s.logger.Info(ctx, "opened history store", logger.String("path", s.dbPath))
	}
	s.monitor = monitor.New(s.store)

	if n, err := s.store.Count(ctx); err == nil {
		metrics.UpdateRecordsTotal(n)
	}

	s.started = true
	s.logger.Info(ctx, "evaluation service started")
	return nil
}

// Stop closes the history store if the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.ownsStore {
		if err := s.store.Close(); err != nil {
			s.logger.Error(context.Background(), "closing history store", logger.Error(err))
		}
		s.store = nil
		s.ownsStore = false
	}
	s.started = false
	s.logger.Info(context.Background(), "evaluation service stopped")
}

// Submit runs one submission end to end. Validation errors wrap ErrValidation
// and leave the store untouched; store errors are returned as-is.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return Result{}, ErrNotStarted
	}

	name := strings.TrimSpace(sub.Name)
	if name == "" {
		metrics.RecordValidationFailure("missing_name")
		return Result{}, ErrMissingName
	}
	score, err := ParseScore(sub.Score)
	if err != nil {
		metrics.RecordValidationFailure("invalid_score")
		s.logger.Debug(ctx, "rejected score", logger.String("score", sub.Score), logger.Error(err))
		return Result{}, err
	}

	rec := model.NewRecord(name, score, sub.Course, sub.Subject)
	advice := s.recommender.Recommend(rec.TierCode)

	// The note must be computed before the append so it compares against
	// strictly older history.
	note, err := s.monitor.Evaluate(ctx, name, score)
	if err != nil {
		return Result{}, fmt.Errorf("service.submit: %w", err)
	}

	saved, err := s.store.Append(ctx, rec)
	if err != nil {
		return Result{}, fmt.Errorf("service.submit: %w", err)
	}
	metrics.RecordEvaluation(string(saved.TierCode))

	s.logger.Info(ctx, "evaluation stored",
		logger.Int64("id", saved.ID),
		logger.String("student", saved.StudentName),
		logger.Float64("score", saved.Score),
		logger.String("tier", saved.TierCode.String()),
	)

	return Result{
		Record:    saved,
		Feedback:  Feedback(saved.TierCode, saved.TierLabel),
		Advice:    advice.Advice,
		Frequency: advice.Frequency,
		Note:      note,
	}, nil
}

// ParseScore parses a submitted decimal score. Surrounding whitespace is
// ignored; hex floats, NaN and infinities are rejected.
func ParseScore(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if isHex(s) {
		return 0, fmt.Errorf("%w: %q is not decimal", ErrInvalidScore, raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidScore, raw)
	}
	return v, nil
}

func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// Feedback is the evaluator sentence for a tier.
func Feedback(code tier.Code, label string) string {
	return fmt.Sprintf("The student shows %s (code: %s).", label, code)
}

// Ping reports whether the history store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	if p, ok := s.store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"dbPath":  s.dbPath,
	}
	if s.started {
		n, err := s.store.Count(context.Background())
		if err != nil {
			stats["recordsError"] = err.Error()
		} else {
			stats["records"] = n
			metrics.UpdateRecordsTotal(n)
		}
	}
	return stats
}
