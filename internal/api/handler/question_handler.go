package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// QuestionHandler handles HTTP requests for questions.
type QuestionHandler struct {
	questions ports.QuestionService
	answers   ports.AnswerService
}

func NewQuestionHandler(questions ports.QuestionService, answers ports.AnswerService) *QuestionHandler {
	return &QuestionHandler{questions: questions, answers: answers}
}

// List handles GET /api/questions.
//
// @Summary      List questions
// @Tags         questions
// @Produce      json
// @Param        tag     query     string  false  "Filter by tag"
// @Param        search  query     string  false  "Full-text search"
// @Param        sort    query     string  false  "newest | votes | views | unanswered"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  questionListResponse
// @Failure      400     {object}  errorResponse
// @Router       /questions [get]
func (h *QuestionHandler) List(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	result, err := h.questions.List(c.Request().Context(), ports.ListQuestionsInput{
		Tag:         c.QueryParam("tag"),
		Search:      c.QueryParam("search"),
		Sort:        c.QueryParam("sort"),
		PageRequest: page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questionListResponse{Questions: result.Questions, Pagination: result.Pagination})
}

// PopularTags handles GET /api/questions/tags/popular.
//
// @Summary      Most used tags
// @Tags         questions
// @Produce      json
// @Param        limit  query     int  false  "Number of tags (default 20)"
// @Success      200    {object}  popularTagsResponse
// @Router       /questions/tags/popular [get]
func (h *QuestionHandler) PopularTags(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	tags, err := h.questions.PopularTags(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, popularTagsResponse{Tags: tags})
}

// Get handles GET /api/questions/:id. Authenticated viewers increment the view counter.
//
// @Summary      Get a question with its answers
// @Tags         questions
// @Produce      json
// @Param        id   path      string  true  "Question ID"
// @Success      200  {object}  questionDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /questions/{id} [get]
func (h *QuestionHandler) Get(c echo.Context) error {
	detail, err := h.questions.Get(c.Request().Context(), c.Param("id"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questionDetailResponse{Question: detail.Question, Answers: detail.Answers})
}

// Create handles POST /api/questions.
//
// @Summary      Ask a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createQuestionRequest  true  "Question"
// @Success      201   {object}  questionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /questions [post]
func (h *QuestionHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createQuestionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	q, err := h.questions.Create(c.Request().Context(), actor, ports.QuestionInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, questionResponse{Question: q})
}

// Update handles PUT /api/questions/:id.
//
// @Summary      Edit a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Question ID"
// @Param        body  body      updateQuestionRequest  true  "Fields to change"
// @Success      200   {object}  questionResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /questions/{id} [put]
func (h *QuestionHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateQuestionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	q, err := h.questions.Update(c.Request().Context(), actor, c.Param("id"), ports.QuestionPatch{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		IsClosed:    req.IsClosed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questionResponse{Question: q})
}

// Delete handles DELETE /api/questions/:id.
//
// @Summary      Delete a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Question ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /questions/{id} [delete]
func (h *QuestionHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.questions.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "question deleted"})
}

// Vote handles POST /api/questions/:id/vote.
//
// @Summary      Vote on a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Question ID"
// @Param        body  body      voteRequest  true  "Vote"
// @Success      200   {object}  voteResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /questions/{id}/vote [post]
func (h *QuestionHandler) Vote(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req voteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	vt, err := domain.ParseVoteType(req.VoteType)
	if err != nil {
		return err
	}
	result, err := h.questions.Vote(c.Request().Context(), actor, c.Param("id"), vt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVoteResponse(result))
}

// Answers handles GET /api/questions/:id/answers.
//
// @Summary      List the answers of a question
// @Tags         questions
// @Produce      json
// @Param        id   path      string  true  "Question ID"
// @Success      200  {object}  answersResponse
// @Failure      404  {object}  errorResponse
// @Router       /questions/{id}/answers [get]
func (h *QuestionHandler) Answers(c echo.Context) error {
	answers, err := h.answers.ListByQuestion(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, answersResponse{Answers: answers})
}
