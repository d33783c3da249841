package diagnosis

import (
	"sort"
	"strings"
)

// MatchSymptoms scores each disease by how many of the reported symptoms
// appear in its symptom set. Matching is case-insensitive; diseases with no
// matching symptom are dropped. Results are ordered by score descending,
// ties broken by disease name.
func MatchSymptoms(diseases []Disease, reported []string) []Match {
	reportedSet := make(map[string]bool, len(reported))
	for _, s := range reported {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			reportedSet[s] = true
		}
	}
	if len(reportedSet) == 0 {
		return nil
	}

	var matches []Match
	for _, d := range diseases {
		var matched []string
		for _, symptom := range d.Symptoms {
			if reportedSet[strings.ToLower(symptom)] {
				matched = append(matched, symptom)
			}
		}
		if len(matched) == 0 {
			continue
		}
		matches = append(matches, Match{
			Disease: d,
			Matched: matched,
			Score:   len(matched),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Disease.Name < matches[j].Disease.Name
	})

	return matches
}
