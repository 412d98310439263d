package usecase

import (
	"testing"
	"time"

	"jobstream/internal/domain/job"

	"github.com/google/uuid"
)

func intptr(v int) *int { return &v }

func TestTransformJob_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	j := job.Job{
		ID:          uuid.New(),
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Location:    "Berlin",
		JobType:     job.TypeFullTime,
		SalaryMin:   intptr(90000),
		SalaryMax:   intptr(120000),
		PostedAt:    now.Add(-48 * time.Hour),
	}

	a := TransformJob(j, 2, now)
	b := TransformJob(j, 2, now)
	if a.Salary != b.Salary || a.Posted != b.Posted || a.Color != b.Color || a.Logo != b.Logo {
		t.Fatalf("transform not deterministic: %+v vs %+v", a, b)
	}
	if a.Source != SourceLabel {
		t.Fatalf("expected source %q, got %q", SourceLabel, a.Source)
	}
	if a.Salary != "$90k - $120k" {
		t.Fatalf("unexpected salary: %q", a.Salary)
	}
	if a.Posted != "2 days ago" {
		t.Fatalf("unexpected posted: %q", a.Posted)
	}
}

func TestTransformJob_Defaults(t *testing.T) {
	now := time.Now().UTC()
	j := job.Job{ID: uuid.New(), Title: "Gardener", PostedAt: now}

	v := TransformJob(j, 0, now)
	if v.Location != "Remote" {
		t.Fatalf("empty location should become Remote, got %q", v.Location)
	}
	if v.Applicants != 0 {
		t.Fatalf("nil applicants should become 0, got %d", v.Applicants)
	}
	if v.Salary != "" {
		t.Fatalf("missing salary should render empty, got %q", v.Salary)
	}
	if v.Logo != defaultLogo {
		t.Fatalf("unmatched title should get default logo, got %q", v.Logo)
	}
}

func TestTransformJob_ColorCycles(t *testing.T) {
	now := time.Now().UTC()
	j := job.Job{ID: uuid.New(), Title: "x", PostedAt: now}

	first := TransformJob(j, 0, now).Color
	wrapped := TransformJob(j, len(jobColors), now).Color
	if first != wrapped {
		t.Fatalf("palette should wrap: %q vs %q", first, wrapped)
	}
	if TransformJob(j, 1, now).Color == first {
		t.Fatalf("adjacent indices should differ")
	}
	if got := TransformJob(j, -1, now).Color; got == "" {
		t.Fatalf("negative index must still pick a color")
	}
}

func TestJobLogo_FirstMatchWins(t *testing.T) {
	// "Frontend Data Engineer" matches both the frontend and data rules;
	// rule order decides.
	if got := JobLogo("Frontend Data Engineer"); got != "💻" {
		t.Fatalf("expected frontend glyph, got %q", got)
	}
	if got := JobLogo("Senior Data Analyst"); got != "📊" {
		t.Fatalf("expected data glyph, got %q", got)
	}
	if got := JobLogo("DEVOPS LEAD"); got != "☁️" {
		t.Fatalf("matching must be case-insensitive, got %q", got)
	}
}

func TestFormatPostedTime_Tiers(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age  time.Duration
		want string
	}{
		{0, "Today"},
		{23 * time.Hour, "Today"},
		{24 * time.Hour, "1 day ago"},
		{3 * 24 * time.Hour, "3 days ago"},
		{8 * 24 * time.Hour, "1 week ago"},
		{21 * 24 * time.Hour, "3 weeks ago"},
	}
	for _, c := range cases {
		if got := FormatPostedTime(now.Add(-c.age), now); got != c.want {
			t.Errorf("age %v: expected %q, got %q", c.age, c.want, got)
		}
	}

	// Clock skew: a future timestamp reads as Today, never negative.
	if got := FormatPostedTime(now.Add(time.Hour), now); got != "Today" {
		t.Errorf("future timestamp: expected Today, got %q", got)
	}
}

func TestFormatSalaryRange(t *testing.T) {
	if got := FormatSalaryRange(intptr(50000), intptr(80000)); got != "$50k - $80k" {
		t.Fatalf("unexpected range: %q", got)
	}
	if got := FormatSalaryRange(intptr(999), intptr(1500)); got != "$999 - $2k" {
		t.Fatalf("sub-thousand values stay unrounded: %q", got)
	}
	if got := FormatSalaryRange(nil, intptr(80000)); got != "" {
		t.Fatalf("partial salary must render empty, got %q", got)
	}
	if got := FormatSalaryRange(nil, nil); got != "" {
		t.Fatalf("missing salary must render empty, got %q", got)
	}
}
