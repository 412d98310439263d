package filtering

import (
	"strings"
	"time"

	"jobstream/internal/domain/job"
)

// SalaryBucket is a named discrete salary range. The top bucket has no
// upper bound (Max < 0 means unbounded).
type SalaryBucket struct {
	Min int
	Max int
}

var salaryBuckets = map[string]SalaryBucket{
	"0-50000":       {Min: 0, Max: 50000},
	"50000-80000":   {Min: 50000, Max: 80000},
	"80000-120000":  {Min: 80000, Max: 120000},
	"120000-150000": {Min: 120000, Max: 150000},
	"150000-200000": {Min: 150000, Max: 200000},
	"200000+":       {Min: 200000, Max: -1},
}

var postedWithinDays = map[string]int{
	"24h": 1,
	"7d":  7,
	"14d": 14,
	"30d": 30,
}

const PostedWithinAny = "any"

func SalaryBucketByKey(key string) (SalaryBucket, bool) {
	b, ok := salaryBuckets[key]
	return b, ok
}

// Spec is the composite advanced-filter specification. The zero value
// is not the default; use DefaultSpec.
type Spec struct {
	ExperienceLevels []string
	JobTypes         []string
	SalaryBucket     string
	PostedWithin     string
	RemoteOnly       bool
	Locations        []string
}

func DefaultSpec() Spec {
	return Spec{PostedWithin: PostedWithinAny}
}

// CountActive sums the cardinalities of the multi-select fields and
// adds 1 for each scalar field away from its default. Used for the
// filter badge only.
func CountActive(s Spec) int {
	count := len(s.ExperienceLevels) + len(s.JobTypes) + len(s.Locations)
	if _, ok := salaryBuckets[s.SalaryBucket]; ok {
		count++
	}
	if s.PostedWithin != "" && s.PostedWithin != PostedWithinAny {
		if _, ok := postedWithinDays[s.PostedWithin]; ok {
			count++
		}
	}
	if s.RemoteOnly {
		count++
	}
	return count
}

// Apply returns the ordered sub-sequence of jobs satisfying the search
// term, the coarse type selector, and every active field of the spec.
// All predicates AND together; the input order is preserved and the
// input slice is never mutated.
func Apply(jobs []job.View, searchTerm, filterType string, spec Spec, now time.Time) []job.View {
	out := make([]job.View, 0, len(jobs))
	for _, j := range jobs {
		if Matches(j, searchTerm, filterType, spec, now) {
			out = append(out, j)
		}
	}
	return out
}

func Matches(j job.View, searchTerm, filterType string, spec Spec, now time.Time) bool {
	return matchesSearch(j, searchTerm) &&
		matchesQuickFilter(j, filterType) &&
		matchesJobType(j, spec.JobTypes) &&
		matchesExperience(j, spec.ExperienceLevels) &&
		matchesSalary(j, spec.SalaryBucket) &&
		matchesPosted(j, spec.PostedWithin, now) &&
		matchesRemote(j, spec.RemoteOnly) &&
		matchesLocation(j, spec.Locations)
}

func matchesSearch(j job.View, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(j.Title), term) ||
		strings.Contains(strings.ToLower(j.Company), term) ||
		strings.Contains(strings.ToLower(j.Location), term) {
		return true
	}
	for _, tag := range j.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func matchesQuickFilter(j job.View, filterType string) bool {
	if filterType == "" || strings.EqualFold(filterType, "all") {
		return true
	}
	return strings.Contains(strings.ToLower(j.Type), strings.ToLower(filterType))
}

func matchesJobType(j job.View, jobTypes []string) bool {
	if len(jobTypes) == 0 {
		return true
	}
	for _, t := range jobTypes {
		if strings.EqualFold(j.Type, t) {
			return true
		}
	}
	return false
}

func matchesExperience(j job.View, levels []string) bool {
	if len(levels) == 0 {
		return true
	}
	for _, lvl := range levels {
		if j.ExperienceLevel == lvl {
			return true
		}
	}
	return false
}

// matchesSalary keeps a job when its [min,max] interval overlaps the
// bucket's interval. Jobs without salary data never match a bucket.
func matchesSalary(j job.View, bucketKey string) bool {
	if bucketKey == "" {
		return true
	}
	b, ok := salaryBuckets[bucketKey]
	if !ok {
		return true
	}
	if j.SalaryMin == nil || j.SalaryMax == nil {
		return false
	}
	if *j.SalaryMax < b.Min {
		return false
	}
	if b.Max >= 0 && *j.SalaryMin > b.Max {
		return false
	}
	return true
}

func matchesPosted(j job.View, postedWithin string, now time.Time) bool {
	if postedWithin == "" || postedWithin == PostedWithinAny {
		return true
	}
	days, ok := postedWithinDays[postedWithin]
	if !ok {
		return true
	}
	cutoff := now.AddDate(0, 0, -days)
	return !j.PostedAt.Before(cutoff)
}

func matchesRemote(j job.View, remoteOnly bool) bool {
	if !remoteOnly {
		return true
	}
	return j.IsRemote || strings.Contains(strings.ToLower(j.Location), "remote")
}

func matchesLocation(j job.View, locations []string) bool {
	if len(locations) == 0 {
		return true
	}
	loc := strings.ToLower(j.Location)
	for _, want := range locations {
		if strings.Contains(loc, strings.ToLower(want)) {
			return true
		}
	}
	return false
}
