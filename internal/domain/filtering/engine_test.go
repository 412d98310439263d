package filtering

import (
	"testing"
	"time"

	"jobstream/internal/domain/job"

	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func sampleJobs(now time.Time) []job.View {
	return []job.View{
		{
			ID:              uuid.New(),
			Title:           "Backend Engineer",
			Company:         "Acme",
			Location:        "New York, NY",
			Type:            "Full-time",
			SalaryMin:       intPtr(80000),
			SalaryMax:       intPtr(120000),
			PostedAt:        now.AddDate(0, 0, -2),
			ExperienceLevel: job.ExperienceMid,
			Tags:            []string{"Go", "PostgreSQL"},
		},
		{
			ID:              uuid.New(),
			Title:           "Product Designer",
			Company:         "Globex",
			Location:        "Remote",
			Type:            "Contract",
			SalaryMin:       intPtr(50000),
			SalaryMax:       intPtr(70000),
			PostedAt:        now.AddDate(0, 0, -20),
			IsRemote:        true,
			ExperienceLevel: job.ExperienceSenior,
			Tags:            []string{"Figma"},
		},
		{
			ID:              uuid.New(),
			Title:           "Data Analyst Intern",
			Company:         "Initech",
			Location:        "Austin, TX",
			Type:            "Internship",
			PostedAt:        now.AddDate(0, 0, -40),
			ExperienceLevel: job.ExperienceEntry,
			Tags:            []string{"SQL"},
		},
	}
}

func TestApply_DefaultSpecIsIdentity(t *testing.T) {
	now := time.Now()
	jobs := sampleJobs(now)

	got := Apply(jobs, "", "all", DefaultSpec(), now)
	if len(got) != len(jobs) {
		t.Fatalf("expected %d jobs, got %d", len(jobs), len(got))
	}
	for i := range jobs {
		if got[i].ID != jobs[i].ID {
			t.Fatalf("order changed at index %d", i)
		}
	}
}

func TestApply_SearchMatchesTitleCompanyLocationAndTags(t *testing.T) {
	now := time.Now()
	jobs := sampleJobs(now)

	cases := []struct {
		term string
		want int
	}{
		{"backend", 1},
		{"ACME", 1},
		{"austin", 1},
		{"postgresql", 1},
		{"nothing-matches-this", 0},
	}
	for _, tc := range cases {
		got := Apply(jobs, tc.term, "all", DefaultSpec(), now)
		if len(got) != tc.want {
			t.Fatalf("term %q: expected %d jobs, got %d", tc.term, tc.want, len(got))
		}
	}
}

func TestApply_QuickFilterSubstring(t *testing.T) {
	now := time.Now()
	jobs := sampleJobs(now)

	got := Apply(jobs, "", "full-time", DefaultSpec(), now)
	if len(got) != 1 || got[0].Title != "Backend Engineer" {
		t.Fatalf("expected only the full-time job, got %d", len(got))
	}
}

func TestApply_JobTypeSetExactMatch(t *testing.T) {
	now := time.Now()
	jobs := sampleJobs(now)

	spec := DefaultSpec()
	spec.JobTypes = []string{"Contract"}
	got := Apply(jobs, "", "all", spec, now)
	if len(got) != 1 || got[0].Type != "Contract" {
		t.Fatalf("expected only the contract job, got %d", len(got))
	}

	// Backend scenario: search matches but job type does not.
	spec = DefaultSpec()
	spec.JobTypes = []string{"Contract"}
	got = Apply(jobs, "backend", "all", spec, now)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestApply_SalaryBucketOverlap(t *testing.T) {
	now := time.Now()
	j := job.View{SalaryMin: intPtr(80000), SalaryMax: intPtr(120000), PostedAt: now}

	cases := []struct {
		bucket string
		want   bool
	}{
		{"0-50000", false},
		{"50000-80000", true}, // touches at 80000
		{"80000-120000", true},
		{"120000-150000", true}, // touches at 120000
		{"150000-200000", false},
		{"200000+", false},
	}
	for _, tc := range cases {
		spec := DefaultSpec()
		spec.SalaryBucket = tc.bucket
		got := Matches(j, "", "all", spec, now)
		if got != tc.want {
			t.Fatalf("bucket %s: expected %v, got %v", tc.bucket, tc.want, got)
		}
	}
}

func TestApply_TopSalaryBucketUnbounded(t *testing.T) {
	now := time.Now()
	j := job.View{SalaryMin: intPtr(250000), SalaryMax: intPtr(400000), PostedAt: now}

	spec := DefaultSpec()
	spec.SalaryBucket = "200000+"
	if !Matches(j, "", "all", spec, now) {
		t.Fatalf("expected match against unbounded bucket")
	}
}

func TestApply_SalaryBucketExcludesJobsWithoutSalary(t *testing.T) {
	now := time.Now()
	j := job.View{PostedAt: now}

	spec := DefaultSpec()
	spec.SalaryBucket = "0-50000"
	if Matches(j, "", "all", spec, now) {
		t.Fatalf("job without salary data must not match a bucket")
	}
}

func TestApply_PostedWithin(t *testing.T) {
	now := time.Now()
	jobs := sampleJobs(now)

	spec := DefaultSpec()
	spec.PostedWithin = "7d"
	got := Apply(jobs, "", "all", spec, now)
	if len(got) != 1 || got[0].Title != "Backend Engineer" {
		t.Fatalf("expected only the 2-day-old job, got %d", len(got))
	}

	spec.PostedWithin = "30d"
	got = Apply(jobs, "", "all", spec, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 jobs within 30d, got %d", len(got))
	}
}

func TestApply_RemoteOnly(t *testing.T) {
	now := time.Now()
	jobs := sampleJobs(now)

	spec := DefaultSpec()
	spec.RemoteOnly = true
	got := Apply(jobs, "", "all", spec, now)
	if len(got) != 1 || !got[0].IsRemote {
		t.Fatalf("expected only the remote job, got %d", len(got))
	}

	// Location substring counts as remote even without the flag.
	j := job.View{Location: "Hybrid / Remote OK", PostedAt: now}
	if !Matches(j, "", "all", spec, now) {
		t.Fatalf("location containing 'remote' should match remote-only")
	}
}

func TestApply_Locations(t *testing.T) {
	now := time.Now()
	jobs := sampleJobs(now)

	spec := DefaultSpec()
	spec.Locations = []string{"new york", "austin"}
	got := Apply(jobs, "", "all", spec, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(got))
	}
}

func TestCountActive(t *testing.T) {
	if got := CountActive(DefaultSpec()); got != 0 {
		t.Fatalf("default spec should count 0, got %d", got)
	}

	spec := DefaultSpec()
	spec.ExperienceLevels = []string{job.ExperienceEntry, job.ExperienceMid}
	spec.JobTypes = []string{"Full-time"}
	spec.Locations = []string{"remote", "nyc", "berlin"}
	spec.SalaryBucket = "80000-120000"
	spec.PostedWithin = "7d"
	spec.RemoteOnly = true

	// 2 + 1 + 3 list members, plus 3 non-default scalars.
	if got := CountActive(spec); got != 9 {
		t.Fatalf("expected 9 active filters, got %d", got)
	}
}

func TestCountActive_IgnoresUnknownBucketKeys(t *testing.T) {
	spec := DefaultSpec()
	spec.SalaryBucket = "not-a-bucket"
	spec.PostedWithin = "90d"
	if got := CountActive(spec); got != 0 {
		t.Fatalf("unknown keys should not count, got %d", got)
	}
}
