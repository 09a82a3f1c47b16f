package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"trivia-service/internal/domain"
)

const bankExt = ".yaml"

// BankLoader reads question banks from a directory of YAML files named <code>.yaml.
type BankLoader struct {
	dir string
}

func NewBankLoader(dir string) *BankLoader {
	return &BankLoader{dir: dir}
}

// LoadBank reads and validates the bank stored under code.
func (l *BankLoader) LoadBank(ctx context.Context, code string) (domain.Bank, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bank{}, err
	}
	if code == "" || strings.ContainsAny(code, `/\`) || strings.HasPrefix(code, ".") {
		return domain.Bank{}, fmt.Errorf("%w: %q", domain.ErrBankNotFound, code)
	}
	return readBank(filepath.Join(l.dir, code+bankExt))
}

// LoadAll reads every bank in the directory concurrently, sorted by code.
func (l *BankLoader) LoadAll(ctx context.Context) ([]domain.Bank, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read bank dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != bankExt {
			continue
		}
		paths = append(paths, filepath.Join(l.dir, entry.Name()))
	}

	banks := make([]domain.Bank, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bank, err := readBank(path)
			if err != nil {
				return err
			}
			banks[i] = bank
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(banks, func(i, j int) bool { return banks[i].Code < banks[j].Code })
	return banks, nil
}

// readBank decodes and validates one file. The declared code must match the
// file name, so every bank LoadAll returns can be found again by LoadBank.
func readBank(path string) (domain.Bank, error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Bank{}, fmt.Errorf("%w: %s", domain.ErrBankNotFound, name)
		}
		return domain.Bank{}, fmt.Errorf("read bank: %w", err)
	}
	var bank domain.Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return domain.Bank{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidBank, name, err)
	}
	if err := bank.Validate(); err != nil {
		return domain.Bank{}, err
	}
	if want := strings.TrimSuffix(name, bankExt); bank.Code != want {
		return domain.Bank{}, fmt.Errorf("%w: file %s declares code %q", domain.ErrInvalidBank, name, bank.Code)
	}
	return bank, nil
}
