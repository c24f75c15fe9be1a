package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/askstack/qa-platform/internal/api/middleware"
	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

var alice = domain.Actor{ID: "u1", Username: "alice", Role: domain.RoleUser}

// newContext builds an echo context with the validator wired. A non-nil actor
// is injected the way the Auth middleware does it.
func newContext(method, target, body string, actor *domain.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(middleware.ActorKey, *actor)
	}
	return c, rec
}

// ---------------------------------------------------------------------------

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	meFn       func(ctx context.Context, actor domain.Actor) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	return s.meFn(ctx, actor)
}

// ---------------------------------------------------------------------------

type stubQuestionService struct {
	listFn   func(ctx context.Context, in ports.ListQuestionsInput) (*ports.QuestionPage, error)
	getFn    func(ctx context.Context, id, viewerID string) (*ports.QuestionDetail, error)
	createFn func(ctx context.Context, actor domain.Actor, in ports.QuestionInput) (*domain.Question, error)
	updateFn func(ctx context.Context, actor domain.Actor, id string, patch ports.QuestionPatch) (*domain.Question, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id string) error
	voteFn   func(ctx context.Context, actor domain.Actor, id string, vt domain.VoteType) (*ports.VoteResult, error)
	tagsFn   func(ctx context.Context, limit int) ([]ports.TagCount, error)
}

func (s *stubQuestionService) List(ctx context.Context, in ports.ListQuestionsInput) (*ports.QuestionPage, error) {
	return s.listFn(ctx, in)
}

func (s *stubQuestionService) Get(ctx context.Context, id, viewerID string) (*ports.QuestionDetail, error) {
	return s.getFn(ctx, id, viewerID)
}

func (s *stubQuestionService) Create(ctx context.Context, actor domain.Actor, in ports.QuestionInput) (*domain.Question, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubQuestionService) Update(ctx context.Context, actor domain.Actor, id string, patch ports.QuestionPatch) (*domain.Question, error) {
	return s.updateFn(ctx, actor, id, patch)
}

func (s *stubQuestionService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubQuestionService) Vote(ctx context.Context, actor domain.Actor, id string, vt domain.VoteType) (*ports.VoteResult, error) {
	return s.voteFn(ctx, actor, id, vt)
}

func (s *stubQuestionService) PopularTags(ctx context.Context, limit int) ([]ports.TagCount, error) {
	return s.tagsFn(ctx, limit)
}

// ---------------------------------------------------------------------------

type stubAnswerService struct {
	postFn    func(ctx context.Context, actor domain.Actor, questionID, content string) (*domain.Answer, error)
	updateFn  func(ctx context.Context, actor domain.Actor, id, content string) (*domain.Answer, error)
	deleteFn  func(ctx context.Context, actor domain.Actor, id string) error
	voteFn    func(ctx context.Context, actor domain.Actor, id string, vt domain.VoteType) (*ports.VoteResult, error)
	acceptFn  func(ctx context.Context, actor domain.Actor, id string) (*domain.Answer, error)
	commentFn func(ctx context.Context, actor domain.Actor, id, content string) (*domain.Answer, error)
	listFn    func(ctx context.Context, questionID string) ([]*domain.Answer, error)
}

func (s *stubAnswerService) Post(ctx context.Context, actor domain.Actor, questionID, content string) (*domain.Answer, error) {
	return s.postFn(ctx, actor, questionID, content)
}

func (s *stubAnswerService) Update(ctx context.Context, actor domain.Actor, id, content string) (*domain.Answer, error) {
	return s.updateFn(ctx, actor, id, content)
}

func (s *stubAnswerService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubAnswerService) Vote(ctx context.Context, actor domain.Actor, id string, vt domain.VoteType) (*ports.VoteResult, error) {
	return s.voteFn(ctx, actor, id, vt)
}

func (s *stubAnswerService) Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Answer, error) {
	return s.acceptFn(ctx, actor, id)
}

func (s *stubAnswerService) Comment(ctx context.Context, actor domain.Actor, id, content string) (*domain.Answer, error) {
	return s.commentFn(ctx, actor, id, content)
}

func (s *stubAnswerService) ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	return s.listFn(ctx, questionID)
}

// ---------------------------------------------------------------------------

// stubNotificationService embeds the interface so tests only implement the
// methods they exercise.
type stubNotificationService struct {
	ports.NotificationService
	listFn     func(ctx context.Context, recipientID string, page ports.PageRequest, unreadOnly bool) (*ports.NotificationPage, error)
	markReadFn func(ctx context.Context, id, requesterID string) (*domain.Notification, error)
	markManyFn func(ctx context.Context, ids []string, requesterID string) (int64, error)
}

func (s *stubNotificationService) List(ctx context.Context, recipientID string, page ports.PageRequest, unreadOnly bool) (*ports.NotificationPage, error) {
	return s.listFn(ctx, recipientID, page, unreadOnly)
}

func (s *stubNotificationService) MarkRead(ctx context.Context, id, requesterID string) (*domain.Notification, error) {
	return s.markReadFn(ctx, id, requesterID)
}

func (s *stubNotificationService) MarkMany(ctx context.Context, ids []string, requesterID string) (int64, error) {
	return s.markManyFn(ctx, ids, requesterID)
}

// ---------------------------------------------------------------------------

type stubUserService struct {
	ports.UserService
	leaderboardFn func(ctx context.Context, kind ports.LeaderboardType, limit int) ([]*domain.User, error)
	searchFn      func(ctx context.Context, query string, page ports.PageRequest) (*ports.UserPage, error)
}

func (s *stubUserService) Leaderboard(ctx context.Context, kind ports.LeaderboardType, limit int) ([]*domain.User, error) {
	return s.leaderboardFn(ctx, kind, limit)
}

func (s *stubUserService) Search(ctx context.Context, query string, page ports.PageRequest) (*ports.UserPage, error) {
	return s.searchFn(ctx, query, page)
}

// ---------------------------------------------------------------------------

type stubModerationService struct {
	ports.ModerationService
	listUsersFn func(ctx context.Context, f ports.AdminUserFilter) (*ports.UserPage, error)
	setRoleFn   func(ctx context.Context, userID, role string) (*domain.User, error)
	broadcastFn func(ctx context.Context, actor domain.Actor, title, message string) (int, error)
	reportFn    func(ctx context.Context, reportType string) (*ports.Report, error)
}

func (s *stubModerationService) ListUsers(ctx context.Context, f ports.AdminUserFilter) (*ports.UserPage, error) {
	return s.listUsersFn(ctx, f)
}

func (s *stubModerationService) SetRole(ctx context.Context, userID, role string) (*domain.User, error) {
	return s.setRoleFn(ctx, userID, role)
}

func (s *stubModerationService) Broadcast(ctx context.Context, actor domain.Actor, title, message string) (int, error) {
	return s.broadcastFn(ctx, actor, title, message)
}

func (s *stubModerationService) Report(ctx context.Context, reportType string) (*ports.Report, error) {
	return s.reportFn(ctx, reportType)
}
