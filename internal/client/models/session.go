// Package models defines the domain types shared by the PeerPoint client:
// sessions and stored credentials, doubts with their answers, project teams,
// and the suggestion payloads served by the platform API.
package models

// Role determines which dashboard and sidebar variant a user sees.
// It is issued by the collaborator at signup and never changes afterwards.
type Role string

const (
	RoleJunior Role = "junior"
	RoleSenior Role = "senior"
)

func (r Role) Valid() bool {
	return r == RoleJunior || r == RoleSenior
}

// UserRecord is the user shape exchanged with the collaborator and persisted
// by the credential store. Field names follow the platform API.
type UserRecord struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	College    string   `json:"college"`
	Role       Role     `json:"role"`
	Year       string   `json:"year"`
	Department string   `json:"department"`
	Interests  []string `json:"interests"`
	Skills     []string `json:"skills"`
	Bio        string   `json:"bio"`
	Streak     int      `json:"streak"`
	Reputation int      `json:"reputation"`
}

// Valid reports whether the record carries the fields without which a
// session cannot be reconstructed. Records failing this check are treated
// as "no session" by the credential store.
func (u UserRecord) Valid() bool {
	return u.ID != "" && u.Email != "" && u.Role.Valid()
}

// Session is the authenticated actor for the lifetime of the client process.
// It exists if and only if a valid AuthToken is held.
type Session struct {
	UserID          string
	DisplayName     string
	Email           string
	Role            Role
	College         string
	Department      string
	Year            string
	Bio             string
	Interests       []string
	Skills          []string
	StreakDays      int
	ReputationScore int
	AuthToken       string
}

// SessionFromRecord builds an in-memory Session from a wire/stored record
// and its token.
func SessionFromRecord(token string, u UserRecord) Session {
	return Session{
		UserID:          u.ID,
		DisplayName:     u.Name,
		Email:           u.Email,
		Role:            u.Role,
		College:         u.College,
		Department:      u.Department,
		Year:            u.Year,
		Bio:             u.Bio,
		Interests:       append([]string(nil), u.Interests...),
		Skills:          append([]string(nil), u.Skills...),
		StreakDays:      u.Streak,
		ReputationScore: u.Reputation,
		AuthToken:       token,
	}
}

// Record returns the durable projection of the session (token excluded).
func (s Session) Record() UserRecord {
	return UserRecord{
		ID:         s.UserID,
		Email:      s.Email,
		Name:       s.DisplayName,
		College:    s.College,
		Role:       s.Role,
		Year:       s.Year,
		Department: s.Department,
		Interests:  append([]string(nil), s.Interests...),
		Skills:     append([]string(nil), s.Skills...),
		Bio:        s.Bio,
		Streak:     s.StreakDays,
		Reputation: s.ReputationScore,
	}
}

// Clone returns a deep copy so callers can hand out read-only snapshots.
func (s Session) Clone() Session {
	c := s
	c.Interests = append([]string(nil), s.Interests...)
	c.Skills = append([]string(nil), s.Skills...)
	return c
}

// StoredCredential is the durable pair written by the credential store.
// It is always either fully absent or fully present.
type StoredCredential struct {
	AuthToken string
	User      UserRecord
}

// AuthPayload is a successful authenticate/register exchange.
type AuthPayload struct {
	Token string     `json:"token"`
	User  UserRecord `json:"user"`
}

// Registration carries the signup form fields sent to the collaborator.
type Registration struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	College    string `json:"college"`
	Role       Role   `json:"role"`
	Year       string `json:"year"`
	Department string `json:"department"`
}

// ProfileUpdate is a partial profile edit. Nil fields are left unchanged.
// Role and Email are accepted on the wire for compatibility with older form
// payloads but are ignored by the session manager: identity fields never
// change through profile edits.
type ProfileUpdate struct {
	DisplayName *string  `json:"name,omitempty"`
	College     *string  `json:"college,omitempty"`
	Department  *string  `json:"department,omitempty"`
	Year        *string  `json:"year,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Role        Role     `json:"role,omitempty"`
	Email       string   `json:"email,omitempty"`
}
