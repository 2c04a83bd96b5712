package reconcile

import "sort"

const (
	// PatientSuggestThreshold is the minimum name score for an automatic suggestion.
	PatientSuggestThreshold = 50
	// PatientFilterThreshold is the combined score an entry must exceed to be listed.
	PatientFilterThreshold = 20

	patientEmailWeight = 0.5
)

// SuggestPatient proposes the roster entry whose full name best matches the
// detected name. Ties go to the earlier entry. Returns nil below the threshold.
func SuggestPatient(detectedName string, roster []PatientOption) *PatientOption {
	bestIdx := -1
	bestScore := -1
	for i, p := range roster {
		s := Score(detectedName, p.FullName)
		if s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	if bestIdx < 0 || bestScore < PatientSuggestThreshold {
		return nil
	}
	match := roster[bestIdx]
	return &match
}

// RankedPatient is a roster entry with its combined filter score.
type RankedPatient struct {
	PatientOption
	Score float64 `json:"score"`
}

// FilterPatients ranks the roster for interactive search. Name matches count
// fully and email matches count half; entries at or below the filter
// threshold are dropped. Equal scores keep roster order.
func FilterPatients(query string, roster []PatientOption) []RankedPatient {
	ranked := make([]RankedPatient, 0, len(roster))
	for _, p := range roster {
		combined := float64(Score(query, p.FullName))
		if p.Email != "" {
			combined += float64(Score(query, p.Email)) * patientEmailWeight
		}
		if combined <= PatientFilterThreshold {
			continue
		}
		ranked = append(ranked, RankedPatient{PatientOption: p, Score: combined})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
