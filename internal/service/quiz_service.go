package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/model"
	"github.com/khanhlt/learnboard/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	defaultPassingScorePercent = 70
	defaultTimeLimitMinutes    = 60
)

type QuizService interface {
	Publish(req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	List() ([]dto.QuizResponseDTO, error)
	Results(quizID string) (*dto.QuizResultsDTO, error)
}

type quizService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.QuizAttemptRepository
}

func NewQuizService(quizRepo repository.QuizRepository, attemptRepo repository.QuizAttemptRepository) QuizService {
	return &quizService{quizRepo: quizRepo, attemptRepo: attemptRepo}
}

// Publish validates each question variant at construction time and derives
// TotalPoints. A published quiz is immutable.
func (s *quizService) Publish(req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validationf("title is required")
	}
	if req.Deadline.Before(time.Now()) {
		return nil, apperr.Validationf("deadline cannot be in the past")
	}
	if len(req.Questions) == 0 {
		return nil, apperr.Validationf("a quiz needs at least one question")
	}
	if req.PassingScorePercent < 0 || req.PassingScorePercent > 100 {
		return nil, apperr.Validationf("passing score must be between 0 and 100")
	}
	if req.PassingScorePercent == 0 {
		req.PassingScorePercent = defaultPassingScorePercent
	}
	if req.TimeLimitMinutes <= 0 {
		req.TimeLimitMinutes = defaultTimeLimitMinutes
	}

	quiz := model.Quiz{
		ID:                  uuid.NewString(),
		Title:               strings.TrimSpace(req.Title),
		Deadline:            req.Deadline,
		PassingScorePercent: req.PassingScorePercent,
		TimeLimitMinutes:    req.TimeLimitMinutes,
		CreatedAt:           time.Now(),
	}
	for i, qDto := range req.Questions {
		question, err := buildQuestion(i, qDto)
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, *question)
		quiz.TotalPoints += question.Points
	}

	if err := s.quizRepo.Append(quiz); err != nil {
		log.Error().Err(err).Msg("Failed to persist quiz")
		return nil, fmt.Errorf("error publishing quiz: %w", err)
	}

	log.Info().Str("quizID", quiz.ID).Str("title", quiz.Title).Int("totalPoints", quiz.TotalPoints).Msg("Quiz published")
	return quizResponse(&quiz)
}

func buildQuestion(idx int, qDto dto.QuestionCreateDTO) (*model.Question, error) {
	if strings.TrimSpace(qDto.Text) == "" || strings.TrimSpace(qDto.CorrectAnswer) == "" {
		return nil, apperr.Validationf("question %d needs text and a correct answer", idx+1)
	}
	if qDto.Points < 1 {
		return nil, apperr.Validationf("question %d must be worth at least 1 point", idx+1)
	}

	question := model.Question{
		ID:            uuid.NewString(),
		Text:          strings.TrimSpace(qDto.Text),
		Type:          model.QuestionType(qDto.Type),
		CorrectAnswer: qDto.CorrectAnswer,
		Points:        qDto.Points,
	}

	switch question.Type {
	case model.QuestionMultipleChoice:
		if len(qDto.Options) < 2 {
			return nil, apperr.Validationf("question %d needs at least two options", idx+1)
		}
		found := false
		for _, opt := range qDto.Options {
			if strings.TrimSpace(opt) == "" {
				return nil, apperr.Validationf("question %d has an empty option", idx+1)
			}
			if strings.EqualFold(opt, qDto.CorrectAnswer) {
				found = true
			}
		}
		if !found {
			return nil, apperr.Validationf("question %d: correct answer must be one of the options", idx+1)
		}
		question.Options = qDto.Options
	case model.QuestionTrueFalse:
		answer := strings.ToLower(qDto.CorrectAnswer)
		if answer != "true" && answer != "false" {
			return nil, apperr.Validationf("question %d: correct answer must be true or false", idx+1)
		}
	case model.QuestionShortAnswer:
		if len(qDto.Options) > 0 {
			return nil, apperr.Validationf("question %d: short-answer questions take no options", idx+1)
		}
	default:
		return nil, apperr.Validationf("question %d has unknown type %q", idx+1, qDto.Type)
	}
	return &question, nil
}

func (s *quizService) List() ([]dto.QuizResponseDTO, error) {
	quizzes, err := s.quizRepo.All()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list quizzes")
		return nil, fmt.Errorf("error fetching quizzes: %w", err)
	}

	dtos := make([]dto.QuizResponseDTO, 0, len(quizzes))
	for i := range quizzes {
		resp, err := quizResponse(&quizzes[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *resp)
	}
	return dtos, nil
}

// Results is the mentor view over every attempt at one quiz.
func (s *quizService) Results(quizID string) (*dto.QuizResultsDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, fmt.Errorf("error fetching quiz: %w", err)
	}
	if quiz == nil {
		return nil, apperr.NotFoundf("quiz %s", quizID)
	}

	attempts, err := s.attemptRepo.FindByQuiz(quizID)
	if err != nil {
		return nil, fmt.Errorf("error fetching quiz attempts: %w", err)
	}

	results := dto.QuizResultsDTO{
		QuizID:      quiz.ID,
		QuizTitle:   quiz.Title,
		TotalPoints: quiz.TotalPoints,
	}
	scoreSum, passed := 0, 0
	for i := range attempts {
		var d dto.QuizAttemptResponseDTO
		if err := copier.Copy(&d, &attempts[i]); err != nil {
			return nil, fmt.Errorf("error preparing attempt response: %w", err)
		}
		results.Attempts = append(results.Attempts, d)
		scoreSum += attempts[i].Score
		if attempts[i].Passed {
			passed++
		}
	}
	if len(attempts) > 0 {
		results.AverageScore = float64(scoreSum) / float64(len(attempts))
		results.PassRate = float64(passed) / float64(len(attempts)) * 100
	}
	return &results, nil
}

// quizResponse maps a quiz for client consumption, keeping answer keys out.
func quizResponse(quiz *model.Quiz) (*dto.QuizResponseDTO, error) {
	var resp dto.QuizResponseDTO
	if err := copier.Copy(&resp, quiz); err != nil {
		return nil, fmt.Errorf("error preparing quiz response: %w", err)
	}
	return &resp, nil
}
