package assignment

import (
	"fmt"
	"math"
	"strings"

	"github.com/carebridge/carebridge/internal/domain/caregiver"
	"github.com/carebridge/carebridge/internal/domain/patient"
)

// Sub-score weights. The weighted total's natural range is 0..100.
const (
	weightSpecialty    = 0.40
	weightAvailability = 0.25
	weightCaseload     = 0.25
	weightExperience   = 0.10
)

// Score computes the compatibility between a patient and a caregiver given
// the caregiver's current active caseload. Pure and deterministic: same
// inputs always produce the same result.
func Score(p *patient.Patient, cg *caregiver.Caregiver, activeCaseload int) ScoreResult {
	br := ScoreBreakdown{
		SpecialtyMatch: specialtyScore(p, cg.Specialties),
		Availability:   availabilityScore(cg.WeeklyCapacity),
		Caseload:       caseloadScore(activeCaseload),
		Experience:     experienceScore(cg.YearsExperience, len(cg.Specialties)),
	}
	total := br.SpecialtyMatch*weightSpecialty +
		br.Availability*weightAvailability +
		br.Caseload*weightCaseload +
		br.Experience*weightExperience
	return ScoreResult{Total: round2(total), Breakdown: br}
}

// specialtyScore compares the union of the patient's diagnoses and tags
// against the caregiver's specialties. A need matches a specialty on
// case-insensitive substring containment in either direction, or on any
// shared word token so that hyphenated tags like "chronic-pain" still hit
// "Pain Management". Either side being empty scores a neutral 50: a
// caregiver with no specialties is a generalist, a patient with no tags
// gives nothing to match on.
func specialtyScore(p *patient.Patient, specialties []string) float64 {
	needs := lowerUnion(p.Diagnoses, p.Tags)
	if len(needs) == 0 || len(specialties) == 0 {
		return 50
	}

	matched := 0
	for _, need := range needs {
		for _, s := range specialties {
			sl := strings.ToLower(strings.TrimSpace(s))
			if sl == "" {
				continue
			}
			if tagsMatch(need, sl) {
				matched++
				break
			}
		}
	}

	score := float64(matched) / float64(len(needs)) * 100
	if matched > 1 {
		score *= 1.2
	}
	return math.Min(score, 100)
}

func tagsMatch(need, specialty string) bool {
	if strings.Contains(specialty, need) || strings.Contains(need, specialty) {
		return true
	}
	for _, tok := range tokenize(need) {
		for _, st := range tokenize(specialty) {
			if tok == st {
				return true
			}
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '/' || r == ','
	})
}

// availabilityScore steps over weekly capacity slots. Missing availability
// data is neutral, not penalized.
func availabilityScore(weeklyCapacity *int) float64 {
	if weeklyCapacity == nil {
		return 50
	}
	switch c := *weeklyCapacity; {
	case c >= 40:
		return 100
	case c >= 30:
		return 80
	case c >= 20:
		return 60
	case c >= 10:
		return 40
	default:
		return 20
	}
}

// caseloadScore is an inverse step function over active patient count. A
// near-empty caseload reads as mildly suspicious rather than ideal.
func caseloadScore(active int) float64 {
	switch {
	case active >= 25:
		return 10
	case active >= 20:
		return 40
	case active >= 15:
		return 80
	case active >= 10:
		return 100
	case active >= 5:
		return 90
	default:
		return 70
	}
}

func experienceScore(years, specialtyCount int) float64 {
	score := math.Min(80, float64(years)*10) + math.Min(20, float64(specialtyCount)*5)
	return math.Min(score, 100)
}

// BuildRationale composes a short sentence naming the caregiver and the
// sub-scores that cleared their thresholds.
func BuildRationale(name string, br ScoreBreakdown) string {
	var reasons []string
	if br.SpecialtyMatch > 70 {
		reasons = append(reasons, "strong specialty match")
	}
	if br.Availability > 80 {
		reasons = append(reasons, "high availability")
	}
	if br.Caseload > 70 {
		reasons = append(reasons, "balanced caseload")
	}
	if br.Experience > 60 {
		reasons = append(reasons, "extensive experience")
	}
	if len(reasons) == 0 {
		return fmt.Sprintf("%s selected as best available match among current caregivers", name)
	}
	return fmt.Sprintf("%s selected for %s", name, strings.Join(reasons, ", "))
}

// lowerUnion merges the two tag lists, lowercased and deduplicated, keeping
// first-seen order.
func lowerUnion(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
