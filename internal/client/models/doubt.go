package models

import "time"

// DoubtStatus tracks where a question is in its answer lifecycle.
type DoubtStatus string

const (
	DoubtStatusPending  DoubtStatus = "pending"
	DoubtStatusAnswered DoubtStatus = "answered"
	DoubtStatusAccepted DoubtStatus = "accepted"
	DoubtStatusClosed   DoubtStatus = "closed"
)

func (s DoubtStatus) Valid() bool {
	switch s {
	case DoubtStatusPending, DoubtStatusAnswered, DoubtStatusAccepted, DoubtStatusClosed:
		return true
	}
	return false
}

// Urgency is the asker-declared priority of a doubt.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Rank orders urgencies for sorting; higher is more urgent. Unknown values
// rank below low so malformed data sinks to the bottom.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	default:
		return 0
	}
}

// Domains a doubt can be filed under.
var DoubtDomains = []string{
	"Coding", "Machine Learning", "Data Science", "Web Development",
	"Mobile Development", "Database", "Algorithms", "Mathematics",
	"Physics", "Chemistry", "Biology", "Exams", "Other",
}

// Author identifies who posted a doubt or answer. For anonymous doubts the
// collaborator substitutes a placeholder name.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Doubt is a posted question as it appears in lists.
type Doubt struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Domain      string      `json:"domain"`
	Status      DoubtStatus `json:"status"`
	AnswerCount int         `json:"answers"`
	Views       int         `json:"views"`
	Urgency     Urgency     `json:"urgency"`
	Tags        []string    `json:"tags"`
	Author      Author      `json:"author"`
	IsAnonymous bool        `json:"isAnonymous"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Answer is a single reply in a doubt's thread.
type Answer struct {
	ID         string    `json:"id"`
	DoubtID    string    `json:"doubtId"`
	Text       string    `json:"text"`
	Author     Author    `json:"author"`
	Upvotes    int       `json:"upvotes"`
	IsAccepted bool      `json:"isAccepted"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DoubtDetail is a doubt together with its answer thread.
type DoubtDetail struct {
	Doubt
	Answers []Answer `json:"answerList"`
}

// DoubtDraft carries the post-doubt form fields.
type DoubtDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Domain      string   `json:"domain"`
	Tags        []string `json:"tags"`
	Urgency     Urgency  `json:"urgency"`
	IsAnonymous bool     `json:"isAnonymous"`
}

// Validate returns field-level problems keyed by field name. Validation
// errors stay in the form layer and never reach the session manager or the
// collaborator.
func (d DoubtDraft) Validate() map[string]string {
	problems := map[string]string{}

	switch {
	case d.Title == "":
		problems["title"] = "Title is required"
	case len(d.Title) < 10:
		problems["title"] = "Title should be at least 10 characters"
	}

	switch {
	case d.Description == "":
		problems["description"] = "Description is required"
	case len(d.Description) < 20:
		problems["description"] = "Please provide more details (min 20 characters)"
	}

	if d.Domain == "" {
		problems["domain"] = "Please select a domain"
	}

	if d.Urgency.Rank() == 0 {
		problems["urgency"] = "Urgency must be low, medium or high"
	}

	return problems
}
