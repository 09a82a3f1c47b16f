package domain

import (
	"fmt"
	"strings"
)

// SectionScoreInput is the correctness signal for one graded section.
type SectionScoreInput struct {
	Code        string  `json:"code"`
	Correctness float64 `json:"correctness"`
}

// SectionScore is a section's clamped score as reported back to callers.
type SectionScore struct {
	Code  string  `json:"code"`
	Score float64 `json:"score"`
}

// AggregatedScore is the overall score plus the per-section breakdown, in input order.
type AggregatedScore struct {
	Overall  float64        `json:"overall"`
	Sections []SectionScore `json:"sections"`
}

// BankKind tells which entry type a bank holds.
type BankKind string

const (
	BankKindScience     BankKind = "science"
	BankKindTranslation BankKind = "translation"
)

// ScienceFact is a single science trivia entry.
type ScienceFact struct {
	ID                 string    `json:"id" yaml:"id"`
	Question           string    `json:"question" yaml:"question"`
	CorrectDescription string    `json:"correctDescription" yaml:"correctDescription"`
	Distractors        [3]string `json:"distractors" yaml:"distractors"`
}

// TranslationWord is an "untranslatable word" entry.
type TranslationWord struct {
	ID            string    `json:"id" yaml:"id"`
	Word          string    `json:"word" yaml:"word"`
	Language      string    `json:"language" yaml:"language"`
	CorrectAnswer string    `json:"correctAnswer" yaml:"correctAnswer"`
	Distractors   [3]string `json:"distractors" yaml:"distractors"`
}

// Bank is a read-only question bank; one bank backs one quiz section.
type Bank struct {
	Code  string            `json:"code" yaml:"code"`
	Kind  BankKind          `json:"kind" yaml:"kind"`
	Title string            `json:"title" yaml:"title"`
	Facts []ScienceFact     `json:"facts,omitempty" yaml:"facts,omitempty"`
	Words []TranslationWord `json:"words,omitempty" yaml:"words,omitempty"`
}

// AnswerSubmission is a player's answer to a single bank entry.
type AnswerSubmission struct {
	EntryID string `json:"entryId"`
	Answer  string `json:"answer"`
}

// SectionAnswers groups the answers given for one section.
type SectionAnswers struct {
	Code    string             `json:"code"`
	Answers []AnswerSubmission `json:"answers"`
}

// Report is a graded attempt together with the player's display color.
type Report struct {
	Seed     string         `json:"seed"`
	Color    string         `json:"color"`
	Overall  float64        `json:"overall"`
	Sections []SectionScore `json:"sections"`
}

// Len returns the number of entries in the bank.
func (b Bank) Len() int {
	switch b.Kind {
	case BankKindScience:
		return len(b.Facts)
	case BankKindTranslation:
		return len(b.Words)
	}
	return 0
}

// CorrectAnswer returns the expected answer for entryID.
func (b Bank) CorrectAnswer(entryID string) (string, bool) {
	switch b.Kind {
	case BankKindScience:
		for _, f := range b.Facts {
			if f.ID == entryID {
				return f.CorrectDescription, true
			}
		}
	case BankKindTranslation:
		for _, w := range b.Words {
			if w.ID == entryID {
				return w.CorrectAnswer, true
			}
		}
	}
	return "", false
}

// Validate checks the structural rules every bank entry must satisfy.
func (b Bank) Validate() error {
	if strings.TrimSpace(b.Code) == "" {
		return fmt.Errorf("%w: missing code", ErrInvalidBank)
	}
	switch b.Kind {
	case BankKindScience:
		if len(b.Words) > 0 {
			return fmt.Errorf("%w: bank %s: science bank holds translation words", ErrInvalidBank, b.Code)
		}
		seen := make(map[string]struct{}, len(b.Facts))
		for _, f := range b.Facts {
			if err := validateEntry(seen, f.ID, f.Question, f.CorrectDescription, f.Distractors); err != nil {
				return fmt.Errorf("%w: bank %s: %v", ErrInvalidBank, b.Code, err)
			}
		}
	case BankKindTranslation:
		if len(b.Facts) > 0 {
			return fmt.Errorf("%w: bank %s: translation bank holds science facts", ErrInvalidBank, b.Code)
		}
		seen := make(map[string]struct{}, len(b.Words))
		for _, w := range b.Words {
			if strings.TrimSpace(w.Language) == "" {
				return fmt.Errorf("%w: bank %s: entry %q: missing language", ErrInvalidBank, b.Code, w.ID)
			}
			if err := validateEntry(seen, w.ID, w.Word, w.CorrectAnswer, w.Distractors); err != nil {
				return fmt.Errorf("%w: bank %s: %v", ErrInvalidBank, b.Code, err)
			}
		}
	default:
		return fmt.Errorf("%w: bank %s: unknown kind %q", ErrInvalidBank, b.Code, b.Kind)
	}
	if b.Len() == 0 {
		return fmt.Errorf("%w: bank %s: no entries", ErrInvalidBank, b.Code)
	}
	return nil
}

func validateEntry(seen map[string]struct{}, id, prompt, correct string, distractors [3]string) error {
	if id == "" {
		return fmt.Errorf("entry without id")
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("duplicate entry %q", id)
	}
	seen[id] = struct{}{}

	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("entry %q: empty prompt", id)
	}
	if strings.TrimSpace(correct) == "" {
		return fmt.Errorf("entry %q: empty correct answer", id)
	}
	answers := []string{correct}
	for _, d := range distractors {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("entry %q: empty distractor", id)
		}
		for _, a := range answers {
			if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(d)) {
				return fmt.Errorf("entry %q: distractor %q repeats an answer", id, d)
			}
		}
		answers = append(answers, d)
	}
	return nil
}
