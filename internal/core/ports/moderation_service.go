package ports

import (
	"context"

	"github.com/askstack/qa-platform/internal/core/domain"
)

// Question listing statuses for moderators.
const (
	StatusAll     = "all"
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Report types.
const (
	ReportGeneral      = "general"
	ReportUserActivity = "user-activity"
	ReportContentStats = "content-stats"
)

// Dashboard is the admin landing overview.
type Dashboard struct {
	TotalUsers      int64              `json:"totalUsers"`
	TotalQuestions  int64              `json:"totalQuestions"`
	TotalAnswers    int64              `json:"totalAnswers"`
	BannedUsers     int64              `json:"bannedUsers"`
	RecentUsers     []*domain.User     `json:"recentUsers"`
	RecentQuestions []*domain.Question `json:"recentQuestions"`
}

// AdminUserFilter carries the moderator's user listing filters.
type AdminUserFilter struct {
	Search string
	Role   string
	Banned *bool
	PageRequest
}

// AdminQuestionFilter carries the moderator's question listing filters.
type AdminQuestionFilter struct {
	Search string
	Status string // all | active | deleted
	PageRequest
}

// DeleteUserResult reports what a user deletion touched.
type DeleteUserResult struct {
	QuestionsDeleted     int64 `json:"questionsDeleted"`
	AnswersDeleted       int64 `json:"answersDeleted"`
	NotificationsRemoved int64 `json:"notificationsRemoved"`
}

// GeneralReport holds the platform-wide totals.
type GeneralReport struct {
	TotalUsers          int64 `json:"totalUsers"`
	BannedUsers         int64 `json:"bannedUsers"`
	TotalQuestions      int64 `json:"totalQuestions"`
	TotalAnswers        int64 `json:"totalAnswers"`
	UnreadNotifications int64 `json:"unreadNotifications"`
}

// UserActivityReport holds directory statistics and the latest sign-ups.
type UserActivityReport struct {
	Stats               UserStats      `json:"stats"`
	RecentRegistrations []*domain.User `json:"recentRegistrations"`
}

// ContentReport holds content statistics.
type ContentReport struct {
	TotalQuestions      int64      `json:"totalQuestions"`
	TotalAnswers        int64      `json:"totalAnswers"`
	UnansweredQuestions int64      `json:"unansweredQuestions"`
	AverageViews        float64    `json:"avgViews"`
	PopularTags         []TagCount `json:"popularTags"`
}

// Report is an on-demand aggregate. Only the section of the requested type is set.
type Report struct {
	Type         string              `json:"type"`
	General      *GeneralReport      `json:"general,omitempty"`
	UserActivity *UserActivityReport `json:"userActivity,omitempty"`
	Content      *ContentReport      `json:"content,omitempty"`
}

// ModerationService holds the administrative operations. Callers are
// expected to have checked the admin role already.
type ModerationService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	ListUsers(ctx context.Context, filter AdminUserFilter) (*UserPage, error)
	SetBan(ctx context.Context, userID string, banned bool, reason string) (*domain.User, error)
	SetRole(ctx context.Context, userID, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) (*DeleteUserResult, error)
	ListQuestions(ctx context.Context, filter AdminQuestionFilter) (*QuestionPage, error)
	RestoreQuestion(ctx context.Context, id string) (*domain.Question, error)
	Broadcast(ctx context.Context, actor domain.Actor, title, message string) (int, error)
	Report(ctx context.Context, reportType string) (*Report, error)
}
