package domain

import "time"

const (
	RoleGuest = "guest"
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const DefaultBanReason = "Violation of platform policies"

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID       string
	Username string
	Role     string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanModify reports whether the actor may edit or delete content owned by authorID.
func (a Actor) CanModify(authorID string) bool {
	return a.ID == authorID || a.IsAdmin()
}

// User models an account in the directory.
type User struct {
	ID                   string    `json:"id" bson:"_id"`
	Username             string    `json:"username" bson:"username"`
	Email                string    `json:"email,omitempty" bson:"email"`
	PasswordHash         string    `json:"-" bson:"password_hash"`
	Role                 string    `json:"role" bson:"role"`
	Avatar               string    `json:"avatar" bson:"avatar"`
	Reputation           int       `json:"reputation" bson:"reputation"`
	IsBanned             bool      `json:"isBanned,omitempty" bson:"is_banned"`
	BanReason            string    `json:"banReason,omitempty" bson:"ban_reason"`
	QuestionsCount       int       `json:"questionsCount" bson:"questions_count"`
	AnswersCount         int       `json:"answersCount" bson:"answers_count"`
	AcceptedAnswersCount int       `json:"acceptedAnswersCount" bson:"accepted_answers_count"`
	CreatedAt            time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updated_at"`
}

// PublicProfile returns a copy without ban state, suitable for other users to see.
func (u *User) PublicProfile() *User {
	p := *u
	p.IsBanned = false
	p.BanReason = ""
	return &p
}

// DirectoryEntry is the listing view used by search and leaderboards: the
// public profile without contact details.
func (u *User) DirectoryEntry() *User {
	p := u.PublicProfile()
	p.Email = ""
	return p
}

// UserCounter names one of the per-user content counters.
type UserCounter string

const (
	CounterQuestions       UserCounter = "questions_count"
	CounterAnswers         UserCounter = "answers_count"
	CounterAcceptedAnswers UserCounter = "accepted_answers_count"
)
