package question

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/avast/retry-go"
)

// Outcome is the result kind of a sampling attempt.
type Outcome int

const (
	// OutcomeQuestion means an unlearned question was selected.
	OutcomeQuestion Outcome = iota
	// OutcomeExhausted means the user has learned every question.
	OutcomeExhausted
	// OutcomeEmpty means the question bank has no questions at all.
	OutcomeEmpty
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuestion:
		return "question"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeEmpty:
		return "empty"
	}
	return "unknown"
}

// Sample is the result of Sampler.Sample. Question is set only for OutcomeQuestion.
type Sample struct {
	Outcome  Outcome
	Question *Question
	// Unlearned is the number of candidates the question was drawn from.
	Unlearned int64
}

// RandomSource draws an integer uniformly from [0, n).
type RandomSource interface {
	Int64N(n int64) int64
}

type globalSource struct{}

func (globalSource) Int64N(n int64) int64 { return rand.Int64N(n) }

var errOffsetRace = errors.New("no question at the sampled offset")

// Sampler picks a uniformly random question the user has not marked learned.
type Sampler struct {
	repo        Repository
	random      RandomSource
	maxAttempts uint
	retryDelay  time.Duration
}

type SamplerOption func(*Sampler)

// WithRandomSource replaces the process-wide random generator, e.g. with a seeded rand.Rand.
func WithRandomSource(source RandomSource) SamplerOption {
	return func(s *Sampler) { s.random = source }
}

// WithMaxAttempts bounds how many times a raced count-and-fetch is retried.
func WithMaxAttempts(attempts uint) SamplerOption {
	return func(s *Sampler) {
		if attempts > 0 {
			s.maxAttempts = attempts
		}
	}
}

func WithRetryDelay(delay time.Duration) SamplerOption {
	return func(s *Sampler) { s.retryDelay = delay }
}

func NewSampler(repo Repository, opts ...SamplerOption) *Sampler {
	s := &Sampler{
		repo:        repo,
		random:      globalSource{},
		maxAttempts: 3,
		retryDelay:  10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample counts the user's unlearned questions and fetches one at a uniformly random offset.
//
// A learned mark committed between the count and the fetch can leave the offset past the end;
// the whole count-and-fetch is then retried, and ErrSamplingContention is returned once attempts run out.
// Store failures are returned wrapped in ErrRetrieval and never reported as Exhausted or Empty.
func (s *Sampler) Sample(ctx context.Context, userID int64) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, retrievalError("sample question", err)
	}

	var result Sample
	var lastErr error
	_ = retry.Do(
		func() error {
			result, lastErr = s.sampleOnce(ctx, userID)
			return lastErr
		},
		retry.Context(ctx),
		retry.Attempts(s.maxAttempts),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errOffsetRace)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Debug("retrying question sampling",
				"user_id", userID,
				"attempt", n+1,
				"error", err,
			)
		}),
	)

	switch {
	case lastErr == nil:
		return result, nil
	case ctx.Err() != nil:
		return Sample{}, retrievalError("sample question", ctx.Err())
	case errors.Is(lastErr, errOffsetRace):
		slog.Default().Warn("question sampling contended",
			"user_id", userID,
			"attempts", s.maxAttempts,
		)
		return Sample{}, ErrSamplingContention
	case errors.Is(lastErr, ErrRetrieval):
		return Sample{}, lastErr
	default:
		return Sample{}, retrievalError("sample question", lastErr)
	}
}

func (s *Sampler) sampleOnce(ctx context.Context, userID int64) (Sample, error) {
	unlearned, err := s.repo.CountUnlearned(ctx, userID)
	if err != nil {
		return Sample{}, err
	}
	if unlearned == 0 {
		total, err := s.repo.CountAll(ctx)
		if err != nil {
			return Sample{}, err
		}
		if total == 0 {
			return Sample{Outcome: OutcomeEmpty}, nil
		}
		return Sample{Outcome: OutcomeExhausted}, nil
	}

	offset := s.random.Int64N(unlearned)
	q, err := s.repo.FindUnlearnedAt(ctx, userID, offset)
	if err != nil {
		return Sample{}, err
	}
	if q == nil {
		return Sample{}, errOffsetRace
	}
	return Sample{Outcome: OutcomeQuestion, Question: q, Unlearned: unlearned}, nil
}
