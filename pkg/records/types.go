package records

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind names for the built-in record types. They double as renderer names.
const (
	KindTopics  = "topics"
	KindNews    = "news"
	KindEvents  = "events"
	KindCompany = "company"
	KindHistory = "history"
)

// Kinds lists the built-in record kinds in their default build order.
func Kinds() []string {
	return []string{KindTopics, KindNews, KindEvents, KindCompany, KindHistory}
}

// Record is implemented by every decodable record type.
type Record interface {
	Topic | NewsItem | Event | CompanyField | HistoryItem
	keyRules() []*validation.KeyRules
}

// Topic is a highlighted card on the landing page.
type Topic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Badge       string `json:"badge,omitempty"`
	Highlight   bool   `json:"highlight,omitempty"`
	Campaign    bool   `json:"campaign,omitempty"`
}

func (Topic) keyRules() []*validation.KeyRules {
	return []*validation.KeyRules{
		validation.Key("title"),
		validation.Key("description"),
		validation.Key("icon"),
	}
}

// NewsItem is a dated announcement.
type NewsItem struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (NewsItem) keyRules() []*validation.KeyRules {
	return []*validation.KeyRules{
		validation.Key("date"),
		validation.Key("title"),
		validation.Key("description"),
	}
}

// Event is a past event row with links to its result sheet and video.
type Event struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	PDF     string `json:"pdf"`
	VideoID string `json:"videoId"`
}

func (Event) keyRules() []*validation.KeyRules {
	return []*validation.KeyRules{
		validation.Key("date"),
		validation.Key("name"),
		validation.Key("pdf"),
		validation.Key("videoId"),
	}
}

// CompanyField is one label/value row of the company profile table.
type CompanyField struct {
	Label string       `json:"label"`
	Value CompanyValue `json:"value"`
}

func (CompanyField) keyRules() []*validation.KeyRules {
	return []*validation.KeyRules{
		validation.Key("label"),
		validation.Key("value", validation.NotNil, validation.By(validateStaffList)),
	}
}

// StaffMember is one entry of a company staff list.
type StaffMember struct {
	Name    string `json:"name"`
	Machine string `json:"machine"`
}

func (StaffMember) keyRules() []*validation.KeyRules {
	return []*validation.KeyRules{
		validation.Key("name"),
		validation.Key("machine"),
	}
}

// HistoryItem is a dated milestone of the company history table.
type HistoryItem struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (HistoryItem) keyRules() []*validation.KeyRules {
	return []*validation.KeyRules{
		validation.Key("date"),
		validation.Key("description"),
	}
}

func validateStaffList(value any) error {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	rule := validation.Map(StaffMember{}.keyRules()...).AllowExtraKeys()
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return validation.NewError("validation_staff_member", "staff entries must be objects")
		}
		if err := validation.Validate(fields, rule); err != nil {
			return validation.Errors{indexKey(i): err}
		}
	}
	return nil
}
