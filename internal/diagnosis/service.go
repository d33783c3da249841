package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNoSymptoms = errors.New("at least one symptom is required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Match loads the disease catalog and scores it against the reported
// symptoms. The catalog is small (hundreds of rows), so a full scan per
// request is fine.
func (s *Service) Match(ctx context.Context, symptoms []string) ([]Match, error) {
	nonBlank := false
	for _, sym := range symptoms {
		if strings.TrimSpace(sym) != "" {
			nonBlank = true
			break
		}
	}
	if !nonBlank {
		return nil, ErrNoSymptoms
	}

	diseases, err := s.repo.ListDiseases(ctx)
	if err != nil {
		return nil, fmt.Errorf("list diseases: %w", err)
	}

	return MatchSymptoms(diseases, symptoms), nil
}
