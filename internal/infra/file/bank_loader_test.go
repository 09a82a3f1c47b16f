package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trivia-service/internal/domain"
)

const scienceYAML = `code: science
kind: science
title: Science facts
facts:
  - id: f1
    question: What is the hardest natural substance?
    correctDescription: Diamond
    distractors: [Quartz, Granite, Iron]
`

const wordsYAML = `code: words
kind: translation
title: Untranslatable words
words:
  - id: w1
    word: hygge
    language: da
    correctAnswer: A cosy, contented mood
    distractors: [A winter storm, A type of bread, A long walk]
`

func TestLoadBank(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "science.yaml", scienceYAML)

	bank, err := NewBankLoader(dir).LoadBank(context.Background(), "science")
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if bank.Kind != domain.BankKindScience || bank.Len() != 1 {
		t.Fatalf("unexpected bank %+v", bank)
	}
	if bank.Facts[0].Distractors != [3]string{"Quartz", "Granite", "Iron"} {
		t.Fatalf("unexpected distractors %v", bank.Facts[0].Distractors)
	}
}

func TestLoadBankErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "code: broken\nkind: science\nfacts: []\n")
	writeFile(t, dir, "renamed.yaml", scienceYAML)
	loader := NewBankLoader(dir)

	tests := map[string]error{
		"missing": domain.ErrBankNotFound,
		"../etc":  domain.ErrBankNotFound,
		"broken":  domain.ErrInvalidBank,
		"renamed": domain.ErrInvalidBank,
		"":        domain.ErrBankNotFound,
		".hidden": domain.ErrBankNotFound,
	}
	for code, want := range tests {
		if _, err := loader.LoadBank(context.Background(), code); !errors.Is(err, want) {
			t.Fatalf("code %q: expected %v, got %v", code, want, err)
		}
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "words.yaml", wordsYAML)
	writeFile(t, dir, "science.yaml", scienceYAML)
	writeFile(t, dir, "README.md", "not a bank")

	banks, err := NewBankLoader(dir).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(banks) != 2 || banks[0].Code != "science" || banks[1].Code != "words" {
		t.Fatalf("unexpected banks %+v", banks)
	}
}

func TestLoadAllRejectsCodeNotMatchingFileName(t *testing.T) {
	tests := map[string][]string{
		"renamed":   {"mine.yaml"},
		"duplicate": {"science.yaml", "science-copy.yaml"},
	}
	for name, files := range tests {
		dir := t.TempDir()
		for _, f := range files {
			writeFile(t, dir, f, scienceYAML)
		}
		loader := NewBankLoader(dir)
		if _, err := loader.LoadAll(context.Background()); !errors.Is(err, domain.ErrInvalidBank) {
			t.Fatalf("%s: expected ErrInvalidBank, got %v", name, err)
		}
	}
}

func TestShippedBanksAreValid(t *testing.T) {
	banks, err := NewBankLoader(filepath.Join("..", "..", "..", "data", "banks")).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load shipped banks: %v", err)
	}
	if len(banks) == 0 {
		t.Fatalf("expected shipped banks")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
