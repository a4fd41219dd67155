package stubserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smazurs/peerpoint/internal/client/models"
	"golang.org/x/crypto/bcrypt"
)

// account pairs a public user record with its password hash. The hash never
// leaves the store.
type account struct {
	record       models.UserRecord
	passwordHash []byte
}

// candidate is a potential teammate offered by the suggestion endpoint.
type candidate struct {
	ID           string
	Name         string
	Avatar       string
	Skills       []string
	Reputation   int
	ResponseRate string
}

// Store holds all stub state behind one mutex. Every accessor copies data
// out, so handlers never hand shared slices to the JSON encoder.
type Store struct {
	mu sync.RWMutex

	accounts map[string]*account // keyed by email
	byID     map[string]*account

	doubts  []models.Doubt
	answers map[string][]models.Answer // keyed by doubt id

	teams      []models.Team
	candidates []candidate
	studyFeed  []models.StudySuggestion
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*account),
		byID:     make(map[string]*account),
		answers:  make(map[string][]models.Answer),
	}
}

// Seed loads the sample dataset: two accounts (password "password123"), a
// handful of doubts with answers, one open team and the teammate pool.
func (s *Store) Seed() error {
	jane, err := s.CreateAccount(models.Registration{
		Name: "Jane Smith", Email: "jane@example.edu", Password: "password123",
		College: "Engineering College", Role: models.RoleJunior, Year: "2nd Year", Department: "Computer Science",
	})
	if err != nil {
		return err
	}
	john, err := s.CreateAccount(models.Registration{
		Name: "John Doe", Email: "john@example.edu", Password: "password123",
		College: "Engineering College", Role: models.RoleSenior, Year: "4th Year", Department: "Computer Science",
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[jane.ID].record.Streak = 4
	s.byID[john.ID].record.Reputation = 120

	day := func(d, h, m int) time.Time { return time.Date(2024, 1, d, h, m, 0, 0, time.UTC) }

	d1 := models.Doubt{
		ID: uuid.NewString(), Title: "React useState hook not updating state properly",
		Description: "I have a component where useState is not updating the rendered value after an async fetch.",
		Domain: "Coding", Status: models.DoubtStatusAnswered, AnswerCount: 1, Views: 45,
		Urgency: models.UrgencyMedium, Tags: []string{"React", "JavaScript", "Hooks"},
		Author: author(john), CreatedAt: day(15, 10, 30), UpdatedAt: day(15, 14, 20),
	}
	d2 := models.Doubt{
		ID: uuid.NewString(), Title: "Machine Learning model overfitting issue",
		Description: "My neural network is overfitting on training data even with dropout enabled.",
		Domain: "Machine Learning", Status: models.DoubtStatusPending, Views: 28,
		Urgency: models.UrgencyHigh, Tags: []string{"Python", "TensorFlow", "Neural Networks"},
		Author: author(jane), CreatedAt: day(16, 9, 15), UpdatedAt: day(16, 9, 15),
	}
	d3 := models.Doubt{
		ID: uuid.NewString(), Title: "Database normalization question for exam",
		Description: "Need help understanding 3rd normal form before Friday's exam.",
		Domain: "Database", Status: models.DoubtStatusAccepted, AnswerCount: 1, Views: 67,
		Urgency: models.UrgencyLow, Tags: []string{"SQL", "Database", "Normalization"},
		Author: author(jane), CreatedAt: day(14, 16, 45), UpdatedAt: day(15, 11, 30),
	}
	s.doubts = []models.Doubt{d1, d2, d3}

	s.answers[d1.ID] = []models.Answer{{
		ID: uuid.NewString(), DoubtID: d1.ID,
		Text:   "State updates are batched; read the new value in a useEffect, not right after setState.",
		Author: author(john), Upvotes: 3, CreatedAt: day(15, 12, 0),
	}}
	s.answers[d3.ID] = []models.Answer{{
		ID: uuid.NewString(), DoubtID: d3.ID,
		Text:   "3NF means no transitive dependencies: every non-key attribute depends on the key alone.",
		Author: author(john), Upvotes: 5, IsAccepted: true, CreatedAt: day(15, 10, 0),
	}}

	s.teams = []models.Team{{
		ID: uuid.NewString(), ProjectName: "Campus Events App", ProjectType: models.ProjectTypeHackathon,
		Description: "Cross-platform app for discovering and RSVPing to campus events, built over the spring hackathon weekend.",
		RequiredSkills: []string{"React Native", "Node.js"}, TeamSize: 4, Deadline: "2024-03-01",
		ContactInfo: "john@example.edu", CreatedBy: author(john), CreatedAt: day(10, 9, 0),
	}}

	s.candidates = []candidate{
		{ID: uuid.NewString(), Name: "Alice Johnson", Avatar: "AJ", Skills: []string{"React", "Node.js", "UI/UX"}, Reputation: 95, ResponseRate: "98%"},
		{ID: uuid.NewString(), Name: "Bob Smith", Avatar: "BS", Skills: []string{"Python", "ML", "Data Analysis"}, Reputation: 88, ResponseRate: "92%"},
		{ID: uuid.NewString(), Name: "Carol Davis", Avatar: "CD", Skills: []string{"Mobile Dev", "React Native", "Firebase"}, Reputation: 92, ResponseRate: "95%"},
	}

	s.studyFeed = []models.StudySuggestion{
		{ID: uuid.NewString(), Category: "Revision", Text: "Your Database doubts cluster around normalization. Revisit 2NF vs 3NF with a worked example."},
		{ID: uuid.NewString(), Category: "Practice", Text: "You answered three React questions this week. Try a hooks-heavy practice project to consolidate."},
		{ID: uuid.NewString(), Category: "Streak", Text: "Ask or answer one doubt today to keep your streak going."},
	}
	return nil
}

func author(u models.UserRecord) models.Author {
	return models.Author{ID: u.ID, Name: u.Name, Avatar: initials(u.Name)}
}

func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(part[:1]))
	}
	return b.String()
}

// CreateAccount registers a new user. The email must be unused.
func (s *Store) CreateAccount(reg models.Registration) (models.UserRecord, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(reg.Email)
	if _, exists := s.accounts[email]; exists {
		return models.UserRecord{}, errEmailTaken
	}

	acc := &account{
		record: models.UserRecord{
			ID: uuid.NewString(), Email: email, Name: reg.Name, College: reg.College,
			Role: reg.Role, Year: reg.Year, Department: reg.Department,
		},
		passwordHash: hash,
	}
	if !acc.record.Role.Valid() {
		acc.record.Role = models.RoleJunior
	}
	s.accounts[email] = acc
	s.byID[acc.record.ID] = acc
	return acc.record, nil
}

// Authenticate checks the password for an email and returns the user record.
func (s *Store) Authenticate(email, password string) (models.UserRecord, bool) {
	s.mu.RLock()
	acc, ok := s.accounts[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return models.UserRecord{}, false
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return models.UserRecord{}, false
	}
	return acc.record, true
}

func (s *Store) UserByID(id string) (models.UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byID[id]
	if !ok {
		return models.UserRecord{}, false
	}
	return acc.record, true
}

// UpdateProfile applies a partial edit to a user. Identity fields are left
// alone regardless of the payload.
func (s *Store) UpdateProfile(userID string, update models.ProfileUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byID[userID]
	if !ok {
		return false
	}
	r := &acc.record
	if update.DisplayName != nil {
		r.Name = *update.DisplayName
	}
	if update.College != nil {
		r.College = *update.College
	}
	if update.Department != nil {
		r.Department = *update.Department
	}
	if update.Year != nil {
		r.Year = *update.Year
	}
	if update.Bio != nil {
		r.Bio = *update.Bio
	}
	if update.Interests != nil {
		r.Interests = append([]string(nil), update.Interests...)
	}
	if update.Skills != nil {
		r.Skills = append([]string(nil), update.Skills...)
	}
	return true
}

func (s *Store) ListDoubts() []models.Doubt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Doubt, len(s.doubts))
	copy(out, s.doubts)
	return out
}

// GetDoubt returns the doubt with its thread and counts the view.
func (s *Store) GetDoubt(id string) (models.DoubtDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.doubtIndexLocked(id)
	if i < 0 {
		return models.DoubtDetail{}, false
	}
	s.doubts[i].Views++

	detail := models.DoubtDetail{Doubt: s.doubts[i]}
	detail.Answers = append(detail.Answers, s.answers[id]...)
	return detail, true
}

func (s *Store) CreateDoubt(draft models.DoubtDraft, by models.UserRecord, now time.Time) models.Doubt {
	d := models.Doubt{
		ID: uuid.NewString(), Title: draft.Title, Description: draft.Description,
		Domain: draft.Domain, Status: models.DoubtStatusPending, Urgency: draft.Urgency,
		Tags: append([]string(nil), draft.Tags...), IsAnonymous: draft.IsAnonymous,
		Author: author(by), CreatedAt: now, UpdatedAt: now,
	}
	if d.IsAnonymous {
		d.Author = models.Author{Name: "Anonymous"}
	}

	s.mu.Lock()
	s.doubts = append(s.doubts, d)
	s.mu.Unlock()
	return d
}

// AddAnswer appends an answer and moves a pending doubt to answered.
func (s *Store) AddAnswer(doubtID, text string, by models.UserRecord, now time.Time) (models.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.doubtIndexLocked(doubtID)
	if i < 0 {
		return models.Answer{}, false
	}

	ans := models.Answer{
		ID: uuid.NewString(), DoubtID: doubtID, Text: text,
		Author: author(by), CreatedAt: now,
	}
	s.answers[doubtID] = append(s.answers[doubtID], ans)
	s.doubts[i].AnswerCount++
	s.doubts[i].UpdatedAt = now
	if s.doubts[i].Status == models.DoubtStatusPending {
		s.doubts[i].Status = models.DoubtStatusAnswered
	}
	return ans, true
}

// AcceptAnswer marks an answer accepted. Only the doubt's author may accept.
func (s *Store) AcceptAnswer(doubtID, answerID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.doubtIndexLocked(doubtID)
	if i < 0 {
		return errNoSuchDoubt
	}
	if s.doubts[i].Author.ID != userID {
		return errNotYourDoubt
	}

	thread := s.answers[doubtID]
	for j := range thread {
		if thread[j].ID == answerID {
			thread[j].IsAccepted = true
			s.doubts[i].Status = models.DoubtStatusAccepted
			return nil
		}
	}
	return errNoSuchAnswer
}

func (s *Store) UpvoteAnswer(doubtID, answerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread := s.answers[doubtID]
	for j := range thread {
		if thread[j].ID == answerID {
			thread[j].Upvotes++
			return nil
		}
	}
	return errNoSuchAnswer
}

func (s *Store) ListTeams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Team, len(s.teams))
	copy(out, s.teams)
	return out
}

func (s *Store) CreateTeam(draft models.TeamDraft, by models.UserRecord, now time.Time) models.Team {
	t := models.Team{
		ID: uuid.NewString(), ProjectName: draft.ProjectName, ProjectType: draft.ProjectType,
		Description: draft.Description, RequiredSkills: append([]string(nil), draft.RequiredSkills...),
		TeamSize: draft.TeamSize, Deadline: draft.Deadline, ContactInfo: draft.ContactInfo,
		CreatedBy: author(by), CreatedAt: now,
	}

	s.mu.Lock()
	s.teams = append(s.teams, t)
	s.mu.Unlock()
	return t
}

// SuggestTeammates ranks the candidate pool by how many requested skills
// each candidate covers. Candidates with no overlap are dropped.
func (s *Store) SuggestTeammates(skills []string) []models.TeammateSuggestion {
	wanted := make(map[string]bool, len(skills))
	for _, sk := range skills {
		wanted[strings.ToLower(strings.TrimSpace(sk))] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.TeammateSuggestion
	for _, c := range s.candidates {
		matched := 0
		for _, sk := range c.Skills {
			if wanted[strings.ToLower(sk)] {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		out = append(out, models.TeammateSuggestion{
			ID: c.ID, Name: c.Name, Avatar: c.Avatar,
			Skills: append([]string(nil), c.Skills...), Reputation: c.Reputation,
			ResponseRate: c.ResponseRate, MatchedSkills: matched,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchedSkills > out[j].MatchedSkills })
	return out
}

func (s *Store) StudySuggestions() []models.StudySuggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StudySuggestion, len(s.studyFeed))
	copy(out, s.studyFeed)
	return out
}

func (s *Store) doubtIndexLocked(id string) int {
	for i := range s.doubts {
		if s.doubts[i].ID == id {
			return i
		}
	}
	return -1
}
