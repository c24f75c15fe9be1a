package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the filters the Mongo
// repositories apply and are safe for the concurrent reads done by errgroup.
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func paginate[T any](items []T, req ports.PageRequest) []T {
	if req.Limit <= 0 {
		return items
	}
	skip := int(req.Skip())
	if skip > len(items) {
		return []T{}
	}
	end := min(skip+req.Limit, len(items))
	return items[skip:end]
}

// ---- users ----

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	byID  map[string]*domain.User
	order []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(u)
	if c.ID == "" {
		r.seq++
		c.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return cloneUser(c), nil
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if u, ok := r.byID[id]; ok && match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) IncrementCounter(_ context.Context, id string, counter domain.UserCounter, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	switch counter {
	case domain.CounterQuestions:
		u.QuestionsCount += delta
	case domain.CounterAnswers:
		u.AnswersCount += delta
	case domain.CounterAcceptedAnswers:
		u.AcceptedAnswersCount += delta
	}
	return nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.User
	for _, id := range r.order {
		u, ok := r.byID[id]
		if !ok {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(u.Username), q) && !strings.Contains(strings.ToLower(u.Email), q) {
				continue
			}
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Banned != nil && u.IsBanned != *f.Banned {
			continue
		}
		matched = append(matched, cloneUser(u))
	}

	switch f.Sort {
	case ports.UserSortReputation:
		slices.SortStableFunc(matched, func(a, b *domain.User) int {
			if c := cmp.Compare(b.Reputation, a.Reputation); c != 0 {
				return c
			}
			return cmp.Compare(a.Username, b.Username)
		})
	case ports.UserSortQuestions:
		slices.SortStableFunc(matched, func(a, b *domain.User) int { return cmp.Compare(b.QuestionsCount, a.QuestionsCount) })
	case ports.UserSortAnswers:
		slices.SortStableFunc(matched, func(a, b *domain.User) int { return cmp.Compare(b.AnswersCount, a.AnswersCount) })
	case ports.UserSortAccepted:
		slices.SortStableFunc(matched, func(a, b *domain.User) int {
			return cmp.Compare(b.AcceptedAnswersCount, a.AcceptedAnswersCount)
		})
	default:
		slices.Reverse(matched)
	}

	return paginate(matched, f.PageRequest), int64(len(matched)), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) Stats(_ context.Context) (ports.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s ports.UserStats
	var rep int
	for _, u := range r.byID {
		s.TotalUsers++
		rep += u.Reputation
		if u.IsBanned {
			s.BannedUsers++
		} else {
			s.ActiveUsers++
		}
	}
	if s.TotalUsers > 0 {
		s.AvgReputation = float64(rep) / float64(s.TotalUsers)
	}
	return s, nil
}

// ---- questions ----

type stubQuestionRepo struct {
	mu    sync.Mutex
	seq   int
	byID  map[string]*domain.Question
	order []string
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{byID: make(map[string]*domain.Question)}
}

func cloneQuestion(q *domain.Question) *domain.Question {
	c := *q
	c.Tags = slices.Clone(q.Tags)
	c.Answers = slices.Clone(q.Answers)
	c.Votes.Upvotes = slices.Clone(q.Votes.Upvotes)
	c.Votes.Downvotes = slices.Clone(q.Votes.Downvotes)
	return &c
}

func (r *stubQuestionRepo) Create(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q.ID == "" {
		r.seq++
		q.ID = fmt.Sprintf("q%d", r.seq)
	}
	r.byID[q.ID] = cloneQuestion(q)
	r.order = append(r.order, q.ID)
	return nil
}

func (r *stubQuestionRepo) FindByID(_ context.Context, id string) (*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return cloneQuestion(q), nil
}

func (r *stubQuestionRepo) Save(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[q.ID]; !ok {
		return domain.ErrQuestionNotFound
	}
	r.byID[q.ID] = cloneQuestion(q)
	return nil
}

func (r *stubQuestionRepo) match(f ports.QuestionFilter) []*domain.Question {
	var matched []*domain.Question
	for _, id := range r.order {
		q := r.byID[id]
		if f.Deleted != nil && q.IsDeleted != *f.Deleted {
			continue
		}
		if f.AuthorID != "" && q.AuthorID != f.AuthorID {
			continue
		}
		if f.Tag != "" && !slices.Contains(q.Tags, f.Tag) {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(q.Title), s) && !strings.Contains(strings.ToLower(q.Description), s) {
				continue
			}
		}
		if f.Unanswered && len(q.Answers) > 0 {
			continue
		}
		matched = append(matched, cloneQuestion(q))
	}
	return matched
}

func (r *stubQuestionRepo) List(_ context.Context, f ports.QuestionFilter) ([]*domain.Question, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.match(f)
	slices.Reverse(matched)
	switch f.Sort {
	case domain.SortVotes:
		slices.SortStableFunc(matched, func(a, b *domain.Question) int { return cmp.Compare(b.VoteCount, a.VoteCount) })
	case domain.SortViews:
		slices.SortStableFunc(matched, func(a, b *domain.Question) int { return cmp.Compare(b.Views, a.Views) })
	}
	return paginate(matched, f.PageRequest), int64(len(matched)), nil
}

func (r *stubQuestionRepo) Count(_ context.Context, f ports.QuestionFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.match(f))), nil
}

func (r *stubQuestionRepo) PushAnswer(_ context.Context, questionID, answerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.byID[questionID]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	q.Answers = append(q.Answers, answerID)
	return nil
}

func (r *stubQuestionRepo) PullAnswer(_ context.Context, questionID, answerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.byID[questionID]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	q.Answers = slices.DeleteFunc(q.Answers, func(id string) bool { return id == answerID })
	return nil
}

func (r *stubQuestionRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.byID[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	q.Views++
	return nil
}

func (r *stubQuestionRepo) SoftDeleteByAuthor(_ context.Context, authorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, q := range r.byID {
		if q.AuthorID == authorID && !q.IsDeleted {
			q.IsDeleted = true
			n++
		}
	}
	return n, nil
}

func (r *stubQuestionRepo) PopularTags(_ context.Context, limit int) ([]ports.TagCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, q := range r.byID {
		if q.IsDeleted {
			continue
		}
		for _, t := range q.Tags {
			counts[t]++
		}
	}
	out := make([]ports.TagCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, ports.TagCount{Tag: t, Count: c})
	}
	slices.SortFunc(out, func(a, b ports.TagCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubQuestionRepo) AverageViews(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, n int
	for _, q := range r.byID {
		if !q.IsDeleted {
			sum += q.Views
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

// ---- answers ----

type stubAnswerRepo struct {
	mu    sync.Mutex
	seq   int
	byID  map[string]*domain.Answer
	order []string
}

func newStubAnswerRepo() *stubAnswerRepo {
	return &stubAnswerRepo{byID: make(map[string]*domain.Answer)}
}

func cloneAnswer(a *domain.Answer) *domain.Answer {
	c := *a
	c.Comments = slices.Clone(a.Comments)
	c.Votes.Upvotes = slices.Clone(a.Votes.Upvotes)
	c.Votes.Downvotes = slices.Clone(a.Votes.Downvotes)
	return &c
}

func (r *stubAnswerRepo) Create(_ context.Context, a *domain.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		r.seq++
		a.ID = fmt.Sprintf("a%d", r.seq)
	}
	r.byID[a.ID] = cloneAnswer(a)
	r.order = append(r.order, a.ID)
	return nil
}

func (r *stubAnswerRepo) FindByID(_ context.Context, id string) (*domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAnswerNotFound
	}
	return cloneAnswer(a), nil
}

func (r *stubAnswerRepo) Save(_ context.Context, a *domain.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrAnswerNotFound
	}
	r.byID[a.ID] = cloneAnswer(a)
	return nil
}

func (r *stubAnswerRepo) FindActive(_ context.Context, questionID, authorID string) (*domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		a := r.byID[id]
		if a.QuestionID == questionID && a.AuthorID == authorID && !a.IsDeleted {
			return cloneAnswer(a), nil
		}
	}
	return nil, domain.ErrAnswerNotFound
}

func (r *stubAnswerRepo) match(f ports.AnswerFilter) []*domain.Answer {
	var matched []*domain.Answer
	for _, id := range r.order {
		a := r.byID[id]
		if f.QuestionID != "" && a.QuestionID != f.QuestionID {
			continue
		}
		if f.AuthorID != "" && a.AuthorID != f.AuthorID {
			continue
		}
		if f.Deleted != nil && a.IsDeleted != *f.Deleted {
			continue
		}
		if f.Accepted != nil && a.IsAccepted != *f.Accepted {
			continue
		}
		matched = append(matched, cloneAnswer(a))
	}
	if f.Newest {
		slices.Reverse(matched)
	}
	return matched
}

func (r *stubAnswerRepo) List(_ context.Context, f ports.AnswerFilter) ([]*domain.Answer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.match(f)
	return paginate(matched, f.PageRequest), int64(len(matched)), nil
}

func (r *stubAnswerRepo) Count(_ context.Context, f ports.AnswerFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.match(f))), nil
}

func (r *stubAnswerRepo) SoftDeleteByAuthor(_ context.Context, authorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.byID {
		if a.AuthorID == authorID && !a.IsDeleted {
			a.IsDeleted = true
			n++
		}
	}
	return n, nil
}

// ---- notifications ----

type stubNotificationRepo struct {
	mu        sync.Mutex
	seq       int
	byID      map[string]*domain.Notification
	order     []string
	createErr error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{byID: make(map[string]*domain.Notification)}
}

func cloneNotification(n *domain.Notification) *domain.Notification {
	c := *n
	return &c
}

func (r *stubNotificationRepo) insert(n *domain.Notification) {
	if n.ID == "" {
		r.seq++
		n.ID = fmt.Sprintf("n%d", r.seq)
	}
	r.byID[n.ID] = cloneNotification(n)
	r.order = append(r.order, n.ID)
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.insert(n)
	return nil
}

func (r *stubNotificationRepo) CreateMany(_ context.Context, ns []*domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, n := range ns {
		r.insert(n)
	}
	return nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	return cloneNotification(n), nil
}

// all returns live notifications in insertion order.
func (r *stubNotificationRepo) all(match func(*domain.Notification) bool) []*domain.Notification {
	var out []*domain.Notification
	for _, id := range r.order {
		if n, ok := r.byID[id]; ok && match(n) {
			out = append(out, n)
		}
	}
	return out
}

func (r *stubNotificationRepo) List(_ context.Context, f ports.NotificationFilter) ([]*domain.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.all(func(n *domain.Notification) bool {
		return n.RecipientID == f.RecipientID && (!f.UnreadOnly || !n.IsRead)
	})
	out := make([]*domain.Notification, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		out = append(out, cloneNotification(matched[i]))
	}
	return paginate(out, f.PageRequest), int64(len(out)), nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.all(func(n *domain.Notification) bool {
		return !n.IsRead && (recipientID == "" || n.RecipientID == recipientID)
	}))), nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (r *stubNotificationRepo) markWhere(match func(*domain.Notification) bool) int64 {
	var changed int64
	for _, n := range r.all(match) {
		if !n.IsRead {
			n.IsRead = true
			changed++
		}
	}
	return changed
}

func (r *stubNotificationRepo) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markWhere(func(n *domain.Notification) bool { return n.RecipientID == recipientID }), nil
}

func (r *stubNotificationRepo) MarkManyRead(_ context.Context, ids []string, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markWhere(func(n *domain.Notification) bool {
		return n.RecipientID == recipientID && slices.Contains(ids, n.ID)
	}), nil
}

func (r *stubNotificationRepo) deleteWhere(match func(*domain.Notification) bool) int64 {
	var n int64
	for _, x := range r.all(match) {
		delete(r.byID, x.ID)
		n++
	}
	return n
}

func (r *stubNotificationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotificationNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubNotificationRepo) DeleteByRecipient(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteWhere(func(n *domain.Notification) bool { return n.RecipientID == recipientID }), nil
}

func (r *stubNotificationRepo) DeleteInvolving(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteWhere(func(n *domain.Notification) bool {
		return n.RecipientID == userID || n.SenderID == userID
	}), nil
}

// byType returns stored notifications of type t in insertion order.
func (r *stubNotificationRepo) byType(t domain.NotificationType) []*domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.all(func(n *domain.Notification) bool { return n.Type == t })
}

// ---- push + ban list ----

type pushed struct {
	recipient string
	event     domain.PushEvent
}

type recordingPusher struct {
	mu     sync.Mutex
	events []pushed
}

func (p *recordingPusher) Push(recipientID string, ev domain.PushEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, pushed{recipient: recipientID, event: ev})
}

func (p *recordingPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type stubBanList struct {
	mu     sync.Mutex
	banned map[string]bool
	err    error
}

func newStubBanList() *stubBanList { return &stubBanList{banned: map[string]bool{}} }

func (b *stubBanList) IsBanned(_ context.Context, userID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.banned[userID], b.err
}

func (b *stubBanList) Ban(_ context.Context, userID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.banned[userID] = true
	return nil
}

func (b *stubBanList) Unban(_ context.Context, userID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	delete(b.banned, userID)
	return nil
}

// ---------------------------------------------------------------------------
// Fixture wiring every service on top of the stubs.
// ---------------------------------------------------------------------------

type testEnv struct {
	users         *stubUserRepo
	questions     *stubQuestionRepo
	answers       *stubAnswerRepo
	notifications *stubNotificationRepo
	pusher        *recordingPusher
	bans          *stubBanList

	notifier   ports.NotificationService
	questionSv *QuestionService
	answerSv   *AnswerService
	userSv     ports.UserService
	moderation ports.ModerationService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newStubUserRepo(),
		questions:     newStubQuestionRepo(),
		answers:       newStubAnswerRepo(),
		notifications: newStubNotificationRepo(),
		pusher:        &recordingPusher{},
		bans:          newStubBanList(),
	}
	env.notifier = NewNotificationService(env.notifications, env.users, env.pusher, discardLogger)
	env.questionSv = NewQuestionService(env.questions, env.answers, env.users, discardLogger)
	env.answerSv = NewAnswerService(env.questions, env.answers, env.users, env.notifier, discardLogger)
	env.userSv = NewUserService(env.users, env.questions, env.answers)
	env.moderation = NewModerationService(env.users, env.questions, env.answers, env.notifications, env.notifier, env.bans, discardLogger)
	return env
}

// seedUser stores a user and returns the matching actor.
func (e *testEnv) seedUser(username, role string) domain.Actor {
	u, err := e.users.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	})
	if err != nil {
		panic(err)
	}
	return domain.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

func (e *testEnv) user(id string) *domain.User {
	u, err := e.users.FindByID(context.Background(), id)
	if err != nil {
		panic(err)
	}
	return u
}

func (e *testEnv) question(id string) *domain.Question {
	q, err := e.questions.FindByID(context.Background(), id)
	if err != nil {
		panic(err)
	}
	return q
}

func (e *testEnv) answer(id string) *domain.Answer {
	a, err := e.answers.FindByID(context.Background(), id)
	if err != nil {
		panic(err)
	}
	return a
}

const (
	validTitle       = "How do buffered channels work?"
	validDescription = "I am trying to understand when a send blocks on a buffered channel."
	validAnswer      = "A send blocks only when the buffer is full."
)

func (e *testEnv) ask(author domain.Actor) *domain.Question {
	q, err := e.questionSv.Create(context.Background(), author, ports.QuestionInput{
		Title:       validTitle,
		Description: validDescription,
		Tags:        []string{"go", "channels"},
	})
	if err != nil {
		panic(err)
	}
	return q
}

func (e *testEnv) reply(author domain.Actor, questionID string) *domain.Answer {
	a, err := e.answerSv.Post(context.Background(), author, questionID, validAnswer)
	if err != nil {
		panic(err)
	}
	return a
}
