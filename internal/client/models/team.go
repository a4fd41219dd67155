package models

import "time"

// ProjectType classifies what a team is being formed for.
type ProjectType string

const (
	ProjectTypeHackathon  ProjectType = "hackathon"
	ProjectTypeInternship ProjectType = "internship"
	ProjectTypeResearch   ProjectType = "research"
	ProjectTypeAcademic   ProjectType = "project"
	ProjectTypeStartup    ProjectType = "startup"
	ProjectTypeOther      ProjectType = "other"
)

func (p ProjectType) Valid() bool {
	switch p {
	case ProjectTypeHackathon, ProjectTypeInternship, ProjectTypeResearch,
		ProjectTypeAcademic, ProjectTypeStartup, ProjectTypeOther:
		return true
	}
	return false
}

// Team is a project team listing.
type Team struct {
	ID             string      `json:"id"`
	ProjectName    string      `json:"projectName"`
	ProjectType    ProjectType `json:"projectType"`
	Description    string      `json:"description"`
	RequiredSkills []string    `json:"requiredSkills"`
	TeamSize       int         `json:"teamSize"`
	Deadline       string      `json:"deadline"`
	ContactInfo    string      `json:"contactInfo"`
	CreatedBy      Author      `json:"createdBy"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// TeamDraft carries the create-team form fields.
type TeamDraft struct {
	ProjectName    string      `json:"projectName"`
	ProjectType    ProjectType `json:"projectType"`
	Description    string      `json:"description"`
	RequiredSkills []string    `json:"requiredSkills"`
	TeamSize       int         `json:"teamSize"`
	Deadline       string      `json:"deadline"`
	ContactInfo    string      `json:"contactInfo"`
}

// Validate returns field-level problems keyed by field name.
func (d TeamDraft) Validate() map[string]string {
	problems := map[string]string{}

	if d.ProjectName == "" {
		problems["projectName"] = "Project name is required"
	}

	switch {
	case d.Description == "":
		problems["description"] = "Description is required"
	case len(d.Description) < 50:
		problems["description"] = "Please provide more details (min 50 characters)"
	}

	if len(d.RequiredSkills) == 0 {
		problems["requiredSkills"] = "Add at least one required skill"
	}

	if !d.ProjectType.Valid() {
		problems["projectType"] = "Unknown project type"
	}

	if d.TeamSize < 2 {
		problems["teamSize"] = "Team size must be at least 2"
	}

	return problems
}

// TeammateSuggestion is a skill-matched candidate for a team.
type TeammateSuggestion struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Avatar        string   `json:"avatar"`
	Skills        []string `json:"skills"`
	Reputation    int      `json:"reputation"`
	ResponseRate  string   `json:"responseRate"`
	MatchedSkills int      `json:"matchedSkills"`
}

// StudySuggestion is a canned study tip from the platform's suggestion feed.
type StudySuggestion struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Text     string `json:"text"`
}
