package usecase

import (
	"fmt"
	"strings"
	"time"

	"jobstream/internal/domain/job"
)

// SourceLabel is stamped onto every view; listings all come from the
// one remote store.
const SourceLabel = "JobStream"

var jobColors = []string{
	"from-blue-500 to-cyan-500",
	"from-purple-500 to-pink-500",
	"from-orange-500 to-red-500",
	"from-green-500 to-teal-500",
	"from-yellow-500 to-orange-500",
	"from-indigo-500 to-purple-500",
}

type logoRule struct {
	keywords []string
	glyph    string
}

// Ordered; first match wins.
var logoRules = []logoRule{
	{[]string{"frontend", "react"}, "💻"},
	{[]string{"full stack"}, "🚀"},
	{[]string{"backend", "python"}, "⚙️"},
	{[]string{"devops", "cloud"}, "☁️"},
	{[]string{"machine learning", "ml", "ai"}, "🧠"},
	{[]string{"data"}, "📊"},
	{[]string{"design", "ux"}, "🎨"},
	{[]string{"product"}, "📋"},
	{[]string{"mobile", "ios", "android"}, "📱"},
}

const defaultLogo = "💼"

// TransformJob maps one remote job row plus its ordinal position in
// the fetched batch to the view the UI consumes. Pure: the same row,
// index, and clock always produce the same view. The gradient is keyed
// by batch index, so it is stable within one fetch but may shift on
// refetch when ordering changes; that is a known property, not a bug.
func TransformJob(j job.Job, index int, now time.Time) job.View {
	location := j.Location
	if strings.TrimSpace(location) == "" {
		location = "Remote"
	}

	applicants := 0
	if j.ApplicantsCount != nil {
		applicants = *j.ApplicantsCount
	}

	return job.View{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.CompanyName,
		Location:        location,
		Type:            j.JobType,
		Salary:          FormatSalaryRange(j.SalaryMin, j.SalaryMax),
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		Posted:          FormatPostedTime(j.PostedAt, now),
		PostedAt:        j.PostedAt,
		Source:          SourceLabel,
		Logo:            JobLogo(j.Title),
		Color:           jobColors[((index%len(jobColors))+len(jobColors))%len(jobColors)],
		Applicants:      applicants,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Benefits:        j.Benefits,
		Tags:            j.Tags,
		IsRemote:        j.IsRemote,
		ExperienceLevel: j.ExperienceLevel,
		ApplicationURL:  j.ApplicationURL,
	}
}

func JobLogo(title string) string {
	t := strings.ToLower(title)
	for _, rule := range logoRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.glyph
			}
		}
	}
	return defaultLogo
}

func FormatPostedTime(postedAt, now time.Time) string {
	days := int(now.Sub(postedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 14:
		return "1 week ago"
	default:
		return fmt.Sprintf("%d weeks ago", days/7)
	}
}

func FormatSalaryRange(min, max *int) string {
	if min == nil || max == nil {
		return ""
	}
	return formatSalaryValue(*min) + " - " + formatSalaryValue(*max)
}

func formatSalaryValue(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("$%dk", (n+500)/1000)
	}
	return fmt.Sprintf("$%d", n)
}
