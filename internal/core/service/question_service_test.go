package service

import (
	"context"
	"errors"
	"testing"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

func TestQuestionService_Create_Success(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser("alice", domain.RoleUser)

	q, err := env.questionSv.Create(context.Background(), alice, ports.QuestionInput{
		Title:       "  " + validTitle + "  ",
		Description: validDescription,
		Tags:        []string{"Go", " Channels ", "go"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Title != validTitle {
		t.Errorf("title must be trimmed, got %q", q.Title)
	}
	if len(q.Tags) != 2 || q.Tags[0] != "go" || q.Tags[1] != "channels" {
		t.Errorf("unexpected tags: %v", q.Tags)
	}
	if q.AuthorName != "alice" {
		t.Errorf("expected author name alice, got %q", q.AuthorName)
	}
	if got := env.user(alice.ID).QuestionsCount; got != 1 {
		t.Errorf("expected questionsCount 1, got %d", got)
	}
}

func TestQuestionService_Create_Validation(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser("alice", domain.RoleUser)

	_, err := env.questionSv.Create(context.Background(), alice, ports.QuestionInput{
		Title:       "short",
		Description: validDescription,
		Tags:        []string{"a", "b", "c", "d", "e", "f"},
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["title"]; !ok {
		t.Error("expected title message")
	}
	if _, ok := verr.Fields["tags"]; !ok {
		t.Error("expected tags message")
	}
	if len(env.questions.byID) != 0 {
		t.Error("nothing may be stored on validation failure")
	}
}

func TestQuestionService_Get_CountsAuthenticatedViews(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser("alice", domain.RoleUser)
	bob := env.seedUser("bob", domain.RoleUser)
	q := env.ask(alice)
	env.reply(bob, q.ID)
	ctx := context.Background()

	anon, err := env.questionSv.Get(ctx, q.ID, "")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if anon.Question.Views != 0 {
		t.Errorf("anonymous view must not count, got %d", anon.Question.Views)
	}

	detail, err := env.questionSv.Get(ctx, q.ID, bob.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if detail.Question.Views != 1 || env.question(q.ID).Views != 1 {
		t.Errorf("expected 1 view, got %d", env.question(q.ID).Views)
	}
	if len(detail.Answers) != 1 {
		t.Errorf("expected 1 answer, got %d", len(detail.Answers))
	}
}

func TestQuestionService_Delete_HidesAndDecrements(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser("alice", domain.RoleUser)
	bob := env.seedUser("bob", domain.RoleUser)
	q := env.ask(alice)
	ctx := context.Background()

	if err := env.questionSv.Delete(ctx, bob, q.ID); !errors.Is(err, domain.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
	if err := env.questionSv.Delete(ctx, alice, q.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := env.questionSv.Get(ctx, q.ID, ""); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
	page, err := env.questionSv.List(ctx, ports.ListQuestionsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Questions) != 0 {
		t.Errorf("deleted question must not be listed")
	}
	if got := env.user(alice.ID).QuestionsCount; got != 0 {
		t.Errorf("expected questionsCount 0, got %d", got)
	}
}

func TestQuestionService_Update(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser("alice", domain.RoleUser)
	admin := env.seedUser("root", domain.RoleAdmin)
	q := env.ask(alice)

	title := "An updated and longer title"
	closed := true
	updated, err := env.questionSv.Update(context.Background(), admin, q.ID, ports.QuestionPatch{Title: &title, IsClosed: &closed})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != title || !updated.IsClosed {
		t.Errorf("unexpected question: %+v", updated)
	}
	if updated.Description != validDescription {
		t.Errorf("description must be unchanged")
	}

	bad := "short"
	if _, err := env.questionSv.Update(context.Background(), alice, q.ID, ports.QuestionPatch{Title: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestQuestionService_List_FiltersAndPaginates(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser("alice", domain.RoleUser)
	bob := env.seedUser("bob", domain.RoleUser)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		env.ask(alice)
	}
	rust, _ := env.questionSv.Create(ctx, alice, ports.QuestionInput{
		Title:       "Borrow checker complaints",
		Description: "Why does the borrow checker reject this code?",
		Tags:        []string{"Rust"},
	})
	answered := env.ask(alice)
	env.reply(bob, answered.ID)

	byTag, err := env.questionSv.List(ctx, ports.ListQuestionsInput{Tag: "RUST"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byTag.Questions) != 1 || byTag.Questions[0].ID != rust.ID {
		t.Errorf("expected only the rust question, got %d", len(byTag.Questions))
	}

	unanswered, _ := env.questionSv.List(ctx, ports.ListQuestionsInput{Sort: domain.SortUnanswered})
	if unanswered.Pagination.Total != 4 {
		t.Errorf("expected 4 unanswered questions, got %d", unanswered.Pagination.Total)
	}

	paged, _ := env.questionSv.List(ctx, ports.ListQuestionsInput{PageRequest: ports.PageRequest{Page: 2, Limit: 2}})
	if len(paged.Questions) != 2 || !paged.Pagination.HasNext || !paged.Pagination.HasPrev {
		t.Errorf("unexpected pagination: %+v", paged.Pagination)
	}
	if paged.Pagination.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", paged.Pagination.TotalPages)
	}
}

func TestQuestionService_Vote(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser("alice", domain.RoleUser)
	bob := env.seedUser("bob", domain.RoleUser)
	q := env.ask(alice)
	ctx := context.Background()

	res, err := env.questionSv.Vote(ctx, bob, q.ID, domain.VoteDown)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if res.VoteCount != -1 || res.Downvotes != 1 {
		t.Errorf("unexpected result: %+v", res)
	}

	if _, err := env.questionSv.Vote(ctx, alice, q.ID, domain.VoteUp); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected forbidden self vote, got %v", err)
	}
	if got := env.question(q.ID).VoteCount; got != -1 {
		t.Errorf("self vote must not change count, got %d", got)
	}
}

func TestQuestionService_PopularTags(t *testing.T) {
	env := newTestEnv()
	alice := env.seedUser("alice", domain.RoleUser)
	env.ask(alice)
	env.ask(alice)

	tags, err := env.questionSv.PopularTags(context.Background(), 0)
	if err != nil {
		t.Fatalf("popular tags failed: %v", err)
	}
	if len(tags) != 2 || tags[0].Count != 2 {
		t.Errorf("unexpected tags: %+v", tags)
	}
}
