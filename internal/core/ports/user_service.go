package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

const MinSearchLen = 2

// LeaderboardType names a leaderboard ordering.
type LeaderboardType string

const (
	LeaderboardReputation LeaderboardType = "reputation"
	LeaderboardQuestions  LeaderboardType = "questions"
	LeaderboardAnswers    LeaderboardType = "answers"
	LeaderboardAccepted   LeaderboardType = "accepted"
)

// UserPage is one page of users.
type UserPage struct {
	Users      []*domain.User
	Pagination Pagination
}

// AnswerPage is one page of answers.
type AnswerPage struct {
	Answers    []*domain.Answer
	Pagination Pagination
}

// ActivityStats summarizes a user's contributions.
type ActivityStats struct {
	QuestionsCount       int64 `json:"questionsCount"`
	AnswersCount         int64 `json:"answersCount"`
	AcceptedAnswersCount int64 `json:"acceptedAnswersCount"`
	Reputation           int   `json:"reputation"`
}

// UserActivity is the activity overview of one user.
type UserActivity struct {
	Stats           ActivityStats
	RecentQuestions []*domain.Question
	RecentAnswers   []*domain.Answer
}

// UserService exposes the public side of the user directory.
type UserService interface {
	Profile(ctx context.Context, id string) (*domain.User, error)
	Questions(ctx context.Context, id string, page PageRequest) (*QuestionPage, error)
	Answers(ctx context.Context, id string, page PageRequest) (*AnswerPage, error)
	Activity(ctx context.Context, id string) (*UserActivity, error)
	Search(ctx context.Context, query string, page PageRequest) (*UserPage, error)
	Leaderboard(ctx context.Context, kind LeaderboardType, limit int) ([]*domain.User, error)
}
