package settings

// Settings are the per-user preferences. Every field has a hardcoded
// default; an unauthenticated session or a failed fetch falls back to
// Defaults() wholesale.
type Settings struct {
	Theme              string `json:"theme"`
	EmailNotifications bool   `json:"email_notifications"`
	PushNotifications  bool   `json:"push_notifications"`
	ApplicationUpdates bool   `json:"application_updates"`
	JobRecommendations bool   `json:"job_recommendations"`
	MarketingEmails    bool   `json:"marketing_emails"`
	Language           string `json:"language"`
	CompactView        bool   `json:"compact_view"`
	ShowSalary         bool   `json:"show_salary"`
	AutoApplyProfile   bool   `json:"auto_apply_profile"`
}

func Defaults() Settings {
	return Settings{
		Theme:              "dark",
		EmailNotifications: true,
		PushNotifications:  true,
		ApplicationUpdates: true,
		JobRecommendations: true,
		MarketingEmails:    false,
		Language:           "en",
		CompactView:        false,
		ShowSalary:         true,
		AutoApplyProfile:   true,
	}
}

// Patch is a partial update; nil fields leave the stored value alone.
type Patch struct {
	Theme              *string `json:"theme"`
	EmailNotifications *bool   `json:"email_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
	ApplicationUpdates *bool   `json:"application_updates"`
	JobRecommendations *bool   `json:"job_recommendations"`
	MarketingEmails    *bool   `json:"marketing_emails"`
	Language           *string `json:"language"`
	CompactView        *bool   `json:"compact_view"`
	ShowSalary         *bool   `json:"show_salary"`
	AutoApplyProfile   *bool   `json:"auto_apply_profile"`
}

func (p Patch) ApplyTo(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.EmailNotifications != nil {
		s.EmailNotifications = *p.EmailNotifications
	}
	if p.PushNotifications != nil {
		s.PushNotifications = *p.PushNotifications
	}
	if p.ApplicationUpdates != nil {
		s.ApplicationUpdates = *p.ApplicationUpdates
	}
	if p.JobRecommendations != nil {
		s.JobRecommendations = *p.JobRecommendations
	}
	if p.MarketingEmails != nil {
		s.MarketingEmails = *p.MarketingEmails
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.CompactView != nil {
		s.CompactView = *p.CompactView
	}
	if p.ShowSalary != nil {
		s.ShowSalary = *p.ShowSalary
	}
	if p.AutoApplyProfile != nil {
		s.AutoApplyProfile = *p.AutoApplyProfile
	}
	return s
}
