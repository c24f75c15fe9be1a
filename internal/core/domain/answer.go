package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinAnswerLen  = 20
	MinCommentLen = 1
	MaxCommentLen = 500
)

// Comment is embedded in its Answer document.
type Comment struct {
	ID         string    `json:"id" bson:"id"`
	Content    string    `json:"content" bson:"content"`
	AuthorID   string    `json:"authorId" bson:"author_id"`
	AuthorName string    `json:"authorName" bson:"author_name"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// Answer belongs to exactly one Question.
type Answer struct {
	ID         string `json:"id" bson:"_id"`
	Content    string `json:"content" bson:"content"`
	AuthorID   string `json:"authorId" bson:"author_id"`
	AuthorName string `json:"authorName" bson:"author_name"`
	QuestionID string `json:"questionId" bson:"question_id"`
	Tally      `bson:",inline"`
	IsAccepted bool      `json:"isAccepted" bson:"is_accepted"`
	IsDeleted  bool      `json:"isDeleted" bson:"is_deleted"`
	Comments   []Comment `json:"comments" bson:"comments"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

func (a *Answer) OwnerID() string   { return a.AuthorID }
func (a *Answer) Removed() bool     { return a.IsDeleted }
func (a *Answer) VoteTally() *Tally { return &a.Tally }

// AddComment appends a comment; ordering is insertion order.
func (a *Answer) AddComment(c Comment) {
	a.Comments = append(a.Comments, c)
}

// ValidateAnswerContent enforces the minimum answer length.
func ValidateAnswerContent(content string) error {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinAnswerLen {
		return NewValidationError("content", "answer must be at least 20 characters long")
	}
	return nil
}

// ValidateCommentContent enforces comment length bounds.
func ValidateCommentContent(content string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(content))
	if n < MinCommentLen || n > MaxCommentLen {
		return NewValidationError("content", "comment must be between 1 and 500 characters")
	}
	return nil
}
