package handler

import (
	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// errorResponse mirrors the envelope rendered by the API error handler.
type errorResponse struct {
	Error  string            `json:"error"`
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type countResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user"`
}

// --- Questions ---

type createQuestionRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"        validate:"required,min=1,max=5"`
}

type updateQuestionRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags" validate:"omitempty,min=1,max=5"`
	IsClosed    *bool    `json:"isClosed"`
}

type voteRequest struct {
	VoteType string `json:"voteType" validate:"required,oneof=upvote downvote remove"`
}

type questionResponse struct {
	Question *domain.Question `json:"question"`
}

type questionListResponse struct {
	Questions  []*domain.Question `json:"questions"`
	Pagination ports.Pagination   `json:"pagination"`
}

type questionDetailResponse struct {
	Question *domain.Question `json:"question"`
	Answers  []*domain.Answer `json:"answers"`
}

type voteResponse struct {
	VoteCount int `json:"voteCount"`
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

type popularTagsResponse struct {
	Tags []ports.TagCount `json:"tags"`
}

// --- Answers ---

type postAnswerRequest struct {
	QuestionID string `json:"questionId" validate:"required"`
	Content    string `json:"content"    validate:"required"`
}

type contentRequest struct {
	Content string `json:"content" validate:"required"`
}

type answerResponse struct {
	Answer *domain.Answer `json:"answer"`
}

type answersResponse struct {
	Answers []*domain.Answer `json:"answers"`
}

// --- Notifications ---

type notificationListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	Pagination    ports.Pagination       `json:"pagination"`
	UnreadCount   int64                  `json:"unreadCount"`
}

type notificationResponse struct {
	Notification *domain.Notification `json:"notification"`
}

type unreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

type markManyRequest struct {
	NotificationIDs []string `json:"notificationIds" validate:"required,min=1"`
}

// --- Users ---

type userResponse struct {
	User *domain.User `json:"user"`
}

type userListResponse struct {
	Users      []*domain.User   `json:"users"`
	Pagination ports.Pagination `json:"pagination"`
}

type answerListResponse struct {
	Answers    []*domain.Answer `json:"answers"`
	Pagination ports.Pagination `json:"pagination"`
}

type activityResponse struct {
	Stats           ports.ActivityStats `json:"stats"`
	RecentQuestions []*domain.Question  `json:"recentQuestions"`
	RecentAnswers   []*domain.Answer    `json:"recentAnswers"`
}

type leaderboardResponse struct {
	Type  string         `json:"type"`
	Users []*domain.User `json:"users"`
}

// --- Admin ---

type banRequest struct {
	IsBanned bool   `json:"isBanned"`
	Reason   string `json:"reason"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type broadcastRequest struct {
	Title   string `json:"title"   validate:"required,max=100"`
	Message string `json:"message" validate:"required,max=500"`
}

type broadcastResponse struct {
	Message    string `json:"message"`
	Recipients int    `json:"recipients"`
}

type deleteUserResponse struct {
	Message string                  `json:"message"`
	Deleted *ports.DeleteUserResult `json:"deleted"`
}

func toVoteResponse(r *ports.VoteResult) voteResponse {
	return voteResponse{VoteCount: r.VoteCount, Upvotes: r.Upvotes, Downvotes: r.Downvotes}
}
