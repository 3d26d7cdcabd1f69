package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/middleware"
	"github.com/khanhlt/learnboard/internal/service"
	"github.com/rs/zerolog/log"
)

type StudentController struct {
	assignmentService service.AssignmentService
	submissionService service.SubmissionService
	quizService       service.QuizService
	attemptService    service.QuizAttemptService
}

func NewStudentController(
	assignmentService service.AssignmentService,
	submissionService service.SubmissionService,
	quizService service.QuizService,
	attemptService service.QuizAttemptService,
) *StudentController {
	return &StudentController{
		assignmentService: assignmentService,
		submissionService: submissionService,
		quizService:       quizService,
		attemptService:    attemptService,
	}
}

// ListAssignments godoc
// @Summary (Student) List assignments
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AssignmentResponseDTO
// @Router /assignments [get]
func (c *StudentController) ListAssignments(ctx *gin.Context) {
	assignments, err := c.assignmentService.List()
	if err != nil {
		log.Error().Err(err).Msg("ListAssignments failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, assignments)
}

// SubmitAssignment godoc
// @Summary (Student) Submit work for an assignment
// @Description First submission creates the record; submitting again overwrites it in place and bumps the resubmission count.
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Param body body dto.SubmissionCreateDTO true "Uploaded file"
// @Success 200 {object} dto.SubmissionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Unknown assignment, oversized file or disallowed type"
// @Router /assignments/{assignment_id}/submissions [post]
func (c *StudentController) SubmitAssignment(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.SubmissionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.submissionService.Submit(user, ctx.Param("assignment_id"), req)
	if err != nil {
		log.Warn().Err(err).Uint("studentID", user.ID).Msg("SubmitAssignment failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// MySubmissions godoc
// @Summary (Student) List own submissions
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SubmissionResponseDTO
// @Router /my/submissions [get]
func (c *StudentController) MySubmissions(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	submissions, err := c.submissionService.ListForStudent(user.ID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", user.ID).Msg("MySubmissions failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

// ListQuizzes godoc
// @Summary (Student) List quizzes
// @Description Quiz listings omit the answer keys.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizResponseDTO
// @Router /quizzes [get]
func (c *StudentController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.List()
	if err != nil {
		log.Error().Err(err).Msg("ListQuizzes failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// StartAttempt godoc
// @Summary (Student) Start a timed quiz attempt
// @Description Opens an attempt session with the quiz's full time budget. When the countdown reaches zero the attempt is auto-submitted with the answers recorded so far.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {object} dto.AttemptSessionDTO
// @Failure 400 {object} dto.ErrorResponse "Quiz deadline has passed"
// @Failure 404 {object} dto.ErrorResponse "No such quiz"
// @Router /quizzes/{quiz_id}/attempts [post]
func (c *StudentController) StartAttempt(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	resp, err := c.attemptService.StartAttempt(user, ctx.Param("quiz_id"))
	if err != nil {
		log.Warn().Err(err).Str("quizID", ctx.Param("quiz_id")).Msg("StartAttempt failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RecordAnswer godoc
// @Summary (Student) Record an answer on an attempt in progress
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Attempt session ID"
// @Param body body dto.RecordAnswerDTO true "Answer"
// @Success 204 "Answer recorded"
// @Failure 400 {object} dto.ErrorResponse "Attempt closed, unknown question or answer outside the option set"
// @Router /attempts/{session_id}/answers [put]
func (c *StudentController) RecordAnswer(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.RecordAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.attemptService.RecordAnswer(user, ctx.Param("session_id"), req); err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SubmitAttempt godoc
// @Summary (Student) Submit a quiz attempt
// @Description Scores the recorded answers and appends the attempt; earlier attempts are kept.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "Attempt session ID"
// @Success 200 {object} dto.QuizAttemptResponseDTO
// @Failure 404 {object} dto.ErrorResponse "No such attempt session"
// @Router /attempts/{session_id}/submit [post]
func (c *StudentController) SubmitAttempt(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	resp, err := c.attemptService.SubmitAttempt(user, ctx.Param("session_id"))
	if err != nil {
		log.Warn().Err(err).Str("sessionID", ctx.Param("session_id")).Msg("SubmitAttempt failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// MyAttempts godoc
// @Summary (Student) List own quiz attempts
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizAttemptResponseDTO
// @Router /my/attempts [get]
func (c *StudentController) MyAttempts(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	attempts, err := c.attemptService.ListForStudent(user.ID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", user.ID).Msg("MyAttempts failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
