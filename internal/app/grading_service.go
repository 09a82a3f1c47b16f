package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"trivia-service/internal/domain"
	"trivia-service/internal/scoring"
)

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, code string) (domain.Bank, error)
}

// Observer receives scoring and grading signals, typically for metrics.
type Observer interface {
	ObserveScore(score domain.AggregatedScore, clamped int)
	ObserveGradeError(reason string)
}

type nopObserver struct{}

func (nopObserver) ObserveScore(domain.AggregatedScore, int) {}
func (nopObserver) ObserveGradeError(string)                {}

// Option configures a GradingService.
type Option func(*GradingService)

// WithObserver sets the observer notified on every aggregation and grading failure.
func WithObserver(o Observer) Option {
	return func(s *GradingService) {
		if o != nil {
			s.observer = o
		}
	}
}

// GradingService contains the scoring use cases.
type GradingService struct {
	banks    BankRepository
	observer Observer
}

func NewGradingService(banks BankRepository, opts ...Option) *GradingService {
	s := &GradingService{banks: banks, observer: nopObserver{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Aggregate combines per-section correctness into an overall score.
func (s *GradingService) Aggregate(inputs []domain.SectionScoreInput) domain.AggregatedScore {
	score := scoring.AggregateScores(inputs)
	s.observer.ObserveScore(score, countClamped(inputs))
	return score
}

// Color returns the display color for a player or session seed.
func (s *GradingService) Color(seed string) string {
	return scoring.SeedToColor(seed)
}

// Bank returns the question bank registered under code.
func (s *GradingService) Bank(ctx context.Context, code string) (domain.Bank, error) {
	return s.banks.GetBank(ctx, code)
}

// Grade checks answers against their banks, aggregates the per-section
// correctness and attaches the color for seed.
func (s *GradingService) Grade(ctx context.Context, seed string, sections []domain.SectionAnswers) (domain.Report, error) {
	inputs := make([]domain.SectionScoreInput, 0, len(sections))
	for _, section := range sections {
		bank, err := s.banks.GetBank(ctx, section.Code)
		if err != nil {
			s.observer.ObserveGradeError(errorReason(err))
			return domain.Report{}, err
		}
		correctness, err := sectionCorrectness(bank, section.Answers)
		if err != nil {
			s.observer.ObserveGradeError(errorReason(err))
			return domain.Report{}, err
		}
		inputs = append(inputs, domain.SectionScoreInput{Code: section.Code, Correctness: correctness})
	}

	score := s.Aggregate(inputs)
	return domain.Report{
		Seed:     seed,
		Color:    s.Color(seed),
		Overall:  score.Overall,
		Sections: score.Sections,
	}, nil
}

// sectionCorrectness returns the fraction of answers matching the bank, 0 when nothing was answered.
func sectionCorrectness(bank domain.Bank, answers []domain.AnswerSubmission) (float64, error) {
	if len(answers) == 0 {
		return 0, nil
	}
	correct := 0
	for _, answer := range answers {
		expected, ok := bank.CorrectAnswer(answer.EntryID)
		if !ok {
			return 0, fmt.Errorf("%w: %s/%s", domain.ErrEntryNotFound, bank.Code, answer.EntryID)
		}
		if strings.EqualFold(strings.TrimSpace(answer.Answer), strings.TrimSpace(expected)) {
			correct++
		}
	}
	return float64(correct) / float64(len(answers)), nil
}

func countClamped(inputs []domain.SectionScoreInput) int {
	n := 0
	for _, in := range inputs {
		if math.IsNaN(in.Correctness) || scoring.Clamp(in.Correctness) != in.Correctness {
			n++
		}
	}
	return n
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrBankNotFound):
		return "bank_not_found"
	case errors.Is(err, domain.ErrEntryNotFound):
		return "entry_not_found"
	case errors.Is(err, domain.ErrInvalidBank):
		return "invalid_bank"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
