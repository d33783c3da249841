package medicine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// LookupSubstitutes resolves a search tag to the original medicine and its
// substitutes. The cache is consulted first; cache failures fall through to
// the database and are logged, never surfaced.
func (s *Service) LookupSubstitutes(ctx context.Context, tag string) (*Lookup, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil, ErrMedicineNotFound
	}

	if s.cache != nil {
		cached, err := s.cache.GetLookup(ctx, tag)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("substitute cache read failed for %q: %v", tag, err)
		}
	}

	med, err := s.repo.GetMedicineByTag(ctx, tag)
	if err != nil {
		if errors.Is(err, ErrMedicineNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load medicine: %w", err)
	}

	subs, err := s.repo.ListSubstitutes(ctx, med.ID)
	if err != nil {
		return nil, fmt.Errorf("list substitutes: %w", err)
	}

	lookup := &Lookup{Medicine: *med, Substitutes: subs}

	if s.cache != nil {
		if err := s.cache.SetLookup(ctx, tag, lookup); err != nil {
			log.Printf("substitute cache write failed for %q: %v", tag, err)
		}
	}

	return lookup, nil
}
