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

type QuizAttemptService interface {
	StartAttempt(student AuthUser, quizID string) (*dto.AttemptSessionDTO, error)
	RecordAnswer(student AuthUser, sessionID string, req dto.RecordAnswerDTO) error
	SubmitAttempt(student AuthUser, sessionID string) (*dto.QuizAttemptResponseDTO, error)
	ListForStudent(studentID uint) ([]dto.QuizAttemptResponseDTO, error)
}

type quizAttemptService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.QuizAttemptRepository
	registry    *sessionRegistry
}

func NewQuizAttemptService(quizRepo repository.QuizRepository, attemptRepo repository.QuizAttemptRepository) QuizAttemptService {
	return &quizAttemptService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		registry:    newSessionRegistry(),
	}
}

// ScoreQuiz awards each question's points when the recorded answer matches
// the answer key case-insensitively. Pure and deterministic; no partial
// credit, short answers are exact match only.
func ScoreQuiz(quiz model.Quiz, answers map[string]string) int {
	score := 0
	for _, q := range quiz.Questions {
		if answer, ok := answers[q.ID]; ok && strings.EqualFold(answer, q.CorrectAnswer) {
			score += q.Points
		}
	}
	return score
}

// StartAttempt opens an InProgress session for the quiz with an empty
// answer map and the full time budget. Retries are allowed: each start
// eventually yields its own attempt record.
func (s *quizAttemptService) StartAttempt(student AuthUser, quizID string) (*dto.AttemptSessionDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, fmt.Errorf("error fetching quiz: %w", err)
	}
	if quiz == nil {
		return nil, apperr.NotFoundf("quiz %s", quizID)
	}
	if time.Now().After(quiz.Deadline) {
		return nil, apperr.Validationf("the deadline for this quiz has passed")
	}

	return s.startSession(student, *quiz, time.Duration(quiz.TimeLimitMinutes)*time.Minute), nil
}

func (s *quizAttemptService) startSession(student AuthUser, quiz model.Quiz, limit time.Duration) *dto.AttemptSessionDTO {
	now := time.Now()
	session := &attemptSession{
		id:          uuid.NewString(),
		studentID:   student.ID,
		studentName: student.Name,
		quiz:        quiz,
		startedAt:   now,
		expiresAt:   now.Add(limit),
		answers:     make(map[string]string),
	}
	session.timer = time.AfterFunc(limit, func() { s.expireSession(session.id) })

	s.registry.mu.Lock()
	s.registry.sessions[session.id] = session
	s.registry.mu.Unlock()

	log.Info().
		Str("sessionID", session.id).
		Str("quizID", quiz.ID).
		Uint("studentID", student.ID).
		Dur("limit", limit).
		Msg("Quiz attempt started")

	return &dto.AttemptSessionDTO{
		SessionID:        session.id,
		QuizID:           quiz.ID,
		StartedAt:        now,
		SecondsRemaining: session.secondsRemaining(now),
	}
}

// RecordAnswer stores one answer on the InProgress session. Multiple-choice
// answers must come from the question's option set; other types are taken
// as free text.
func (s *quizAttemptService) RecordAnswer(student AuthUser, sessionID string, req dto.RecordAnswerDTO) error {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()

	session, ok := s.registry.sessions[sessionID]
	if !ok || session.studentID != student.ID {
		return apperr.NotFoundf("attempt session %s", sessionID)
	}
	if session.submitted {
		return apperr.Validationf("this attempt has already been submitted")
	}

	var question *model.Question
	for i := range session.quiz.Questions {
		if session.quiz.Questions[i].ID == req.QuestionID {
			question = &session.quiz.Questions[i]
			break
		}
	}
	if question == nil {
		return apperr.Validationf("question %s is not part of this quiz", req.QuestionID)
	}
	if question.Type == model.QuestionMultipleChoice {
		valid := false
		for _, opt := range question.Options {
			if opt == req.Answer {
				valid = true
				break
			}
		}
		if !valid {
			return apperr.Validationf("answer must be one of the question's options")
		}
	}

	session.answers[req.QuestionID] = req.Answer
	return nil
}

// SubmitAttempt closes the session and appends the scored attempt. Prior
// attempts are never overwritten.
func (s *quizAttemptService) SubmitAttempt(student AuthUser, sessionID string) (*dto.QuizAttemptResponseDTO, error) {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()

	session, ok := s.registry.sessions[sessionID]
	if !ok || session.studentID != student.ID {
		return nil, apperr.NotFoundf("attempt session %s", sessionID)
	}
	if !session.close() {
		return nil, apperr.Validationf("this attempt has already been submitted")
	}
	delete(s.registry.sessions, sessionID)

	attempt, err := s.finalize(session, time.Now())
	if err != nil {
		return nil, err
	}

	var resp dto.QuizAttemptResponseDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		return nil, fmt.Errorf("error preparing attempt response: %w", err)
	}
	return &resp, nil
}

// expireSession is the countdown callback: a forced submit with whatever
// answers were recorded up to that instant. A session already closed by a
// manual submit is left alone.
func (s *quizAttemptService) expireSession(sessionID string) {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()

	session, ok := s.registry.sessions[sessionID]
	if !ok || !session.close() {
		return
	}
	delete(s.registry.sessions, sessionID)

	if _, err := s.finalize(session, session.expiresAt); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("Failed to auto-submit expired quiz attempt")
		return
	}
	log.Info().Str("sessionID", sessionID).Str("quizID", session.quiz.ID).Msg("Quiz attempt auto-submitted at timeout")
}

func (s *quizAttemptService) finalize(session *attemptSession, submittedAt time.Time) (*model.QuizAttempt, error) {
	if submittedAt.After(session.expiresAt) {
		submittedAt = session.expiresAt
	}

	answers := make(map[string]string, len(session.answers))
	for k, v := range session.answers {
		answers[k] = v
	}

	quiz := session.quiz
	score := ScoreQuiz(quiz, answers)
	attempt := model.QuizAttempt{
		ID:               uuid.NewString(),
		StudentID:        session.studentID,
		StudentName:      session.studentName,
		QuizID:           quiz.ID,
		QuizTitle:        quiz.Title,
		Score:            score,
		TotalPoints:      quiz.TotalPoints,
		Answers:          answers,
		SubmittedAt:      submittedAt,
		TimeTakenSeconds: int(submittedAt.Sub(session.startedAt).Seconds()),
	}
	// A quiz worth zero points can never be passed; guard the division.
	if quiz.TotalPoints > 0 {
		attempt.Percentage = float64(score) / float64(quiz.TotalPoints) * 100
		attempt.Passed = attempt.Percentage >= quiz.PassingScorePercent
	}

	if err := s.attemptRepo.Append(attempt); err != nil {
		return nil, fmt.Errorf("error saving quiz attempt: %w", err)
	}

	log.Info().
		Str("attemptID", attempt.ID).
		Str("quizID", quiz.ID).
		Int("score", score).
		Bool("passed", attempt.Passed).
		Msg("Quiz attempt recorded")
	return &attempt, nil
}

func (s *quizAttemptService) ListForStudent(studentID uint) ([]dto.QuizAttemptResponseDTO, error) {
	attempts, err := s.attemptRepo.FindByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching quiz attempts: %w", err)
	}

	dtos := make([]dto.QuizAttemptResponseDTO, 0, len(attempts))
	for i := range attempts {
		var d dto.QuizAttemptResponseDTO
		if err := copier.Copy(&d, &attempts[i]); err != nil {
			return nil, fmt.Errorf("error preparing attempt response: %w", err)
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}
