package assignment

import (
	"strings"
	"testing"

	"github.com/carebridge/carebridge/internal/domain/caregiver"
	"github.com/carebridge/carebridge/internal/domain/patient"
)

func intPtr(v int) *int { return &v }

func TestScoreDeterminism(t *testing.T) {
	p := &patient.Patient{Diagnoses: []string{"anxiety"}, Tags: []string{"teen"}}
	cg := &caregiver.Caregiver{
		Name:            "Dana",
		Specialties:     []string{"Anxiety Disorders", "Adolescents"},
		WeeklyCapacity:  intPtr(30),
		YearsExperience: 6,
	}

	first := Score(p, cg, 12)
	for i := 0; i < 10; i++ {
		if got := Score(p, cg, 12); got != first {
			t.Fatalf("score changed across calls: %+v vs %+v", got, first)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	patients := []*patient.Patient{
		{},
		{Diagnoses: []string{"chronic-pain", "anxiety", "ptsd"}},
		{Tags: []string{"x", "y", "z", "w"}},
	}
	caregivers := []*caregiver.Caregiver{
		{},
		{Specialties: []string{"Pain Management", "Anxiety", "PTSD", "Trauma"}, WeeklyCapacity: intPtr(50), YearsExperience: 40},
		{WeeklyCapacity: intPtr(0)},
	}
	for _, p := range patients {
		for _, cg := range caregivers {
			for _, caseload := range []int{0, 7, 13, 19, 24, 60} {
				res := Score(p, cg, caseload)
				if res.Total < 0 || res.Total > 100 {
					t.Errorf("total %v out of range for caseload %d", res.Total, caseload)
				}
			}
		}
	}
}

func TestSpecialtyNeutralDefaults(t *testing.T) {
	tagged := &patient.Patient{Diagnoses: []string{"anxiety"}, Tags: []string{"teen", "school"}}

	// No specialties reads as generalist, regardless of patient tags.
	if got := specialtyScore(tagged, nil); got != 50 {
		t.Errorf("generalist specialty score = %v, want 50", got)
	}

	// No patient tags gives nothing to match on.
	if got := specialtyScore(&patient.Patient{}, []string{"Anxiety"}); got != 50 {
		t.Errorf("untagged patient specialty score = %v, want 50", got)
	}
}

func TestSpecialtyBonusAndCap(t *testing.T) {
	p := &patient.Patient{Diagnoses: []string{"anxiety", "depression"}}
	specs := []string{"Anxiety", "Depression"}
	// Full ratio with the multi-match bonus exceeds 100 and must be capped.
	if got := specialtyScore(p, specs); got != 100 {
		t.Errorf("specialty score = %v, want capped 100", got)
	}

	// One of three matched, single match, no bonus.
	p = &patient.Patient{Diagnoses: []string{"anxiety", "insomnia", "vertigo"}}
	got := specialtyScore(p, []string{"Anxiety"})
	want := 1.0 / 3.0 * 100
	if got != want {
		t.Errorf("specialty score = %v, want %v", got, want)
	}
}

func TestSpecialtyTokenMatch(t *testing.T) {
	p := &patient.Patient{Tags: []string{"chronic-pain"}}
	if got := specialtyScore(p, []string{"Pain Management"}); got != 100 {
		t.Errorf("hyphenated tag score = %v, want 100", got)
	}
}

func TestAvailabilitySteps(t *testing.T) {
	cases := []struct {
		capacity *int
		want     float64
	}{
		{nil, 50},
		{intPtr(45), 100},
		{intPtr(40), 100},
		{intPtr(30), 80},
		{intPtr(20), 60},
		{intPtr(10), 40},
		{intPtr(3), 20},
	}
	for _, tc := range cases {
		if got := availabilityScore(tc.capacity); got != tc.want {
			t.Errorf("availabilityScore(%v) = %v, want %v", tc.capacity, got, tc.want)
		}
	}
}

func TestCaseloadSteps(t *testing.T) {
	cases := []struct {
		active int
		want   float64
	}{
		{30, 10},
		{25, 10},
		{22, 40},
		{17, 80},
		{12, 100},
		{7, 90},
		{2, 70},
		{0, 70},
	}
	for _, tc := range cases {
		if got := caseloadScore(tc.active); got != tc.want {
			t.Errorf("caseloadScore(%d) = %v, want %v", tc.active, got, tc.want)
		}
	}
}

func TestExperienceScore(t *testing.T) {
	if got := experienceScore(5, 2); got != 60 {
		t.Errorf("experienceScore(5,2) = %v, want 60", got)
	}
	if got := experienceScore(20, 10); got != 100 {
		t.Errorf("experienceScore(20,10) = %v, want 100", got)
	}
	if got := experienceScore(9, 0); got != 80 {
		t.Errorf("experienceScore(9,0) = %v, want 80", got)
	}
}

func TestWeightedTotal(t *testing.T) {
	p := &patient.Patient{Tags: []string{"chronic-pain"}}
	cg := &caregiver.Caregiver{Name: "Alex", Specialties: []string{"Pain Management"}}

	res := Score(p, cg, 8)
	// specialty 100*0.40 + availability 50*0.25 + caseload 90*0.25 + experience 5*0.10
	want := 40.0 + 12.5 + 22.5 + 0.5
	if res.Total != want {
		t.Errorf("total = %v, want %v", res.Total, want)
	}
}

func TestBuildRationale(t *testing.T) {
	strong := ScoreBreakdown{SpecialtyMatch: 95, Availability: 90, Caseload: 90, Experience: 80}
	got := BuildRationale("Alex", strong)
	if !strings.Contains(got, "Alex") || !strings.Contains(got, "strong specialty match") {
		t.Errorf("rationale %q missing expected reasons", got)
	}

	weak := ScoreBreakdown{SpecialtyMatch: 50, Availability: 50, Caseload: 70, Experience: 50}
	got = BuildRationale("Alex", weak)
	if !strings.Contains(got, "best available match among current caregivers") {
		t.Errorf("rationale %q missing fallback", got)
	}
}
