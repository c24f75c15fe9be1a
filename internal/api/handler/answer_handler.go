package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/ports"
)

// AnswerHandler handles HTTP requests for answers, acceptance and comments.
type AnswerHandler struct {
	answers ports.AnswerService
}

func NewAnswerHandler(answers ports.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

// Post handles POST /api/answers.
//
// @Summary      Answer a question
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postAnswerRequest  true  "Answer"
// @Success      201   {object}  answerResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /answers [post]
func (h *AnswerHandler) Post(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req postAnswerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.answers.Post(c.Request().Context(), actor, req.QuestionID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, answerResponse{Answer: a})
}

// Update handles PUT /api/answers/:id.
//
// @Summary      Edit an answer
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Answer ID"
// @Param        body  body      contentRequest  true  "New content"
// @Success      200   {object}  answerResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /answers/{id} [put]
func (h *AnswerHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req contentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.answers.Update(c.Request().Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, answerResponse{Answer: a})
}

// Delete handles DELETE /api/answers/:id.
//
// @Summary      Delete an answer
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Answer ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /answers/{id} [delete]
func (h *AnswerHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.answers.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "answer deleted"})
}

// Vote handles POST /api/answers/:id/vote.
//
// @Summary      Vote on an answer
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Answer ID"
// @Param        body  body      voteRequest  true  "Vote"
// @Success      200   {object}  voteResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /answers/{id}/vote [post]
func (h *AnswerHandler) Vote(c echo.Context) error {
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
	result, err := h.answers.Vote(c.Request().Context(), actor, c.Param("id"), vt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVoteResponse(result))
}

// Accept handles POST /api/answers/:id/accept. Only the question owner may accept.
//
// @Summary      Accept an answer
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Answer ID"
// @Success      200  {object}  answerResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /answers/{id}/accept [post]
func (h *AnswerHandler) Accept(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	a, err := h.answers.Accept(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, answerResponse{Answer: a})
}

// Comment handles POST /api/answers/:id/comments.
//
// @Summary      Comment on an answer
// @Description  Mentions written as @username notify the named users.
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Answer ID"
// @Param        body  body      contentRequest  true  "Comment"
// @Success      201   {object}  answerResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /answers/{id}/comments [post]
func (h *AnswerHandler) Comment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req contentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.answers.Comment(c.Request().Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, answerResponse{Answer: a})
}
