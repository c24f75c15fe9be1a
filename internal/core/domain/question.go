package domain

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinTitleLen       = 10
	MaxTitleLen       = 300
	MinDescriptionLen = 20
	MinTags           = 1
	MaxTags           = 5
	MaxTagLen         = 20
)

// Question sort orders accepted by listings.
const (
	SortNewest     = "newest"
	SortVotes      = "votes"
	SortViews      = "views"
	SortUnanswered = "unanswered"
)

// Question is a thread root. Answers holds the IDs of attached, non-deleted answers.
type Question struct {
	ID             string   `json:"id" bson:"_id"`
	Title          string   `json:"title" bson:"title"`
	Description    string   `json:"description" bson:"description"`
	AuthorID       string   `json:"authorId" bson:"author_id"`
	AuthorName     string   `json:"authorName" bson:"author_name"`
	Tags           []string `json:"tags" bson:"tags"`
	Tally          `bson:",inline"`
	Views          int       `json:"views" bson:"views"`
	Answers        []string  `json:"answers" bson:"answers"`
	AcceptedAnswer string    `json:"acceptedAnswer,omitempty" bson:"accepted_answer,omitempty"`
	IsClosed       bool      `json:"isClosed" bson:"is_closed"`
	IsDeleted      bool      `json:"isDeleted" bson:"is_deleted"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updated_at"`
}

func (q *Question) OwnerID() string   { return q.AuthorID }
func (q *Question) Removed() bool     { return q.IsDeleted }
func (q *Question) VoteTally() *Tally { return &q.Tally }

// AnswerCount is the number of attached answers.
func (q *Question) AnswerCount() int { return len(q.Answers) }

// NormalizeTags trims and lowercases tags, drops empty or over-long ones,
// removes duplicates and keeps at most MaxTags.
func NormalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || utf8.RuneCountInString(t) > MaxTagLen || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}

// ValidateQuestion checks title, description and raw tags, returning the
// cleaned tag list on success.
func ValidateQuestion(title, description string, rawTags []string) ([]string, error) {
	verr := &ValidationError{}
	if n := utf8.RuneCountInString(strings.TrimSpace(title)); n < MinTitleLen || n > MaxTitleLen {
		verr.Add("title", "title must be between 10 and 300 characters")
	}
	if utf8.RuneCountInString(strings.TrimSpace(description)) < MinDescriptionLen {
		verr.Add("description", "description must be at least 20 characters long")
	}
	var tags []string
	if len(rawTags) < MinTags || len(rawTags) > MaxTags {
		verr.Add("tags", "must provide 1-5 tags")
	} else if tags = NormalizeTags(rawTags); len(tags) == 0 {
		verr.Add("tags", "at least one valid tag is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return tags, nil
}
