package mentor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/service"
	"github.com/rs/zerolog/log"
)

type MentorController struct {
	assignmentService service.AssignmentService
	submissionService service.SubmissionService
	quizService       service.QuizService
}

func NewMentorController(
	assignmentService service.AssignmentService,
	submissionService service.SubmissionService,
	quizService service.QuizService,
) *MentorController {
	return &MentorController{
		assignmentService: assignmentService,
		submissionService: submissionService,
		quizService:       quizService,
	}
}

// CreateAssignment godoc
// @Summary (Mentor) Create an assignment
// @Description Publish a new assignment. The deadline must be in the future; assignments are immutable afterwards.
// @Tags Mentor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AssignmentCreateDTO true "Assignment"
// @Success 201 {object} dto.AssignmentResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Missing fields or past deadline"
// @Router /mentor/assignments [post]
func (c *MentorController) CreateAssignment(ctx *gin.Context) {
	var req dto.AssignmentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.assignmentService.Create(req)
	if err != nil {
		log.Warn().Err(err).Msg("CreateAssignment failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListAssignmentSubmissions godoc
// @Summary (Mentor) List submissions for an assignment
// @Tags Mentor
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {array} dto.SubmissionResponseDTO
// @Router /mentor/assignments/{assignment_id}/submissions [get]
func (c *MentorController) ListAssignmentSubmissions(ctx *gin.Context) {
	submissions, err := c.submissionService.ListForAssignment(ctx.Param("assignment_id"))
	if err != nil {
		log.Error().Err(err).Msg("ListAssignmentSubmissions failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

// GradeSubmission godoc
// @Summary (Mentor) Grade a submission
// @Description Record a grade and feedback. Re-grading overwrites the previous grade.
// @Tags Mentor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission_id path string true "Submission ID"
// @Param body body dto.GradeSubmissionDTO true "Grade"
// @Success 200 {object} dto.SubmissionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "No such submission"
// @Router /mentor/submissions/{submission_id}/grade [post]
func (c *MentorController) GradeSubmission(ctx *gin.Context) {
	var req dto.GradeSubmissionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.submissionService.Grade(ctx.Param("submission_id"), req)
	if err != nil {
		log.Warn().Err(err).Str("submissionID", ctx.Param("submission_id")).Msg("GradeSubmission failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PublishQuiz godoc
// @Summary (Mentor) Publish a quiz
// @Description Validate and publish a quiz with its questions. Published quizzes are immutable.
// @Tags Mentor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.QuizCreateDTO true "Quiz with questions"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz or question definition"
// @Router /mentor/quizzes [post]
func (c *MentorController) PublishQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.quizService.Publish(req)
	if err != nil {
		log.Warn().Err(err).Msg("PublishQuiz failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// QuizResults godoc
// @Summary (Mentor) View results for a quiz
// @Description Every attempt at the quiz with average score and pass rate.
// @Tags Mentor
// @Produce json
// @Security BearerAuth
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResultsDTO
// @Failure 404 {object} dto.ErrorResponse "No such quiz"
// @Router /mentor/quizzes/{quiz_id}/results [get]
func (c *MentorController) QuizResults(ctx *gin.Context) {
	resp, err := c.quizService.Results(ctx.Param("quiz_id"))
	if err != nil {
		log.Warn().Err(err).Str("quizID", ctx.Param("quiz_id")).Msg("QuizResults failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary (Mentor) Dashboard summary
// @Description Grading backlog and coarse quiz analytics.
// @Tags Mentor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MentorSummaryDTO
// @Router /mentor/summary [get]
func (c *MentorController) Summary(ctx *gin.Context) {
	resp, err := c.submissionService.MentorSummary()
	if err != nil {
		log.Error().Err(err).Msg("Summary failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
