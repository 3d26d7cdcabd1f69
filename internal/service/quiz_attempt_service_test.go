package service

import (
	"testing"
	"time"

	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/kvstore"
	"github.com/khanhlt/learnboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishedCapitalsQuiz(t *testing.T, f *quizFixture) *model.Quiz {
	t.Helper()
	published, err := f.quizzes.Publish(capitalsQuiz())
	require.NoError(t, err)
	quiz, err := f.quizRepo.FindByID(published.ID)
	require.NoError(t, err)
	return quiz
}

func TestScoreQuizIsDeterministicAndCaseInsensitive(t *testing.T) {
	f := newQuizFixture(t)
	quiz := publishedCapitalsQuiz(t, f)

	answers := map[string]string{
		quiz.Questions[0].ID: "paris", // case differs from the key
		quiz.Questions[1].ID: "Kyoto", // wrong
	}

	first := ScoreQuiz(*quiz, answers)
	second := ScoreQuiz(*quiz, answers)
	assert.Equal(t, 1, first)
	assert.Equal(t, first, second)

	// unanswered questions earn nothing
	assert.Equal(t, 0, ScoreQuiz(*quiz, map[string]string{}))
}

func TestZeroPointQuizNeverPasses(t *testing.T) {
	f := newQuizFixture(t)
	student := AuthUser{ID: 1, Name: "Sam"}

	// a quiz worth zero points cannot be published, but a stored record
	// could still carry it; the engine must not divide by zero.
	quiz := model.Quiz{
		ID:                  "legacy",
		Title:               "Empty",
		Deadline:            time.Now().Add(time.Hour),
		PassingScorePercent: 50,
		TotalPoints:         0,
	}

	svc := f.attempts.(*quizAttemptService)
	session := svc.startSession(student, quiz, time.Minute)
	attempt, err := f.attempts.SubmitAttempt(student, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, attempt.Percentage)
	assert.False(t, attempt.Passed)
}

func TestStartAttempt(t *testing.T) {
	f := newQuizFixture(t)
	student := AuthUser{ID: 1, Name: "Sam"}
	quiz := publishedCapitalsQuiz(t, f)

	session, err := f.attempts.StartAttempt(student, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, session.QuizID)
	// seeded with the full time budget
	assert.InDelta(t, quiz.TimeLimitMinutes*60, session.SecondsRemaining, 2)

	_, err = f.attempts.StartAttempt(student, "no-such-quiz")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStartAttemptAfterDeadline(t *testing.T) {
	f := newQuizFixture(t)
	student := AuthUser{ID: 1, Name: "Sam"}

	// seed a stored quiz whose deadline has already passed
	expired := model.Quiz{
		ID:                  "expired",
		Title:               "Old quiz",
		Deadline:            time.Now().Add(-time.Minute),
		PassingScorePercent: 50,
		TotalPoints:         1,
		TimeLimitMinutes:    30,
		Questions: []model.Question{
			{ID: "q1", Text: "2+2?", Type: model.QuestionShortAnswer, CorrectAnswer: "4", Points: 1},
		},
	}
	require.NoError(t, f.store.Set(kvstore.KeyQuizzes, []model.Quiz{expired}))

	_, err := f.attempts.StartAttempt(student, expired.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRecordAnswerValidation(t *testing.T) {
	f := newQuizFixture(t)
	quiz := publishedCapitalsQuiz(t, f)
	student := AuthUser{ID: 1, Name: "Sam"}
	svc := f.attempts.(*quizAttemptService)

	session := svc.startSession(student, *quiz, time.Minute)

	// multiple-choice answers are limited to the option set
	err := f.attempts.RecordAnswer(student, session.SessionID, dto.RecordAnswerDTO{
		QuestionID: quiz.Questions[0].ID, Answer: "Marseille",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	err = f.attempts.RecordAnswer(student, session.SessionID, dto.RecordAnswerDTO{
		QuestionID: "no-such-question", Answer: "Paris",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// another student cannot touch the session
	err = f.attempts.RecordAnswer(AuthUser{ID: 2}, session.SessionID, dto.RecordAnswerDTO{
		QuestionID: quiz.Questions[0].ID, Answer: "Paris",
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = f.attempts.RecordAnswer(student, session.SessionID, dto.RecordAnswerDTO{
		QuestionID: quiz.Questions[0].ID, Answer: "Paris",
	})
	assert.NoError(t, err)
}

func TestSubmitAttemptScoresAndAppends(t *testing.T) {
	f := newQuizFixture(t)
	quiz := publishedCapitalsQuiz(t, f)
	student := AuthUser{ID: 1, Name: "Sam"}
	svc := f.attempts.(*quizAttemptService)

	// first attempt: one of two correct -> 50%, passing at threshold 50
	session := svc.startSession(student, *quiz, time.Minute)
	require.NoError(t, f.attempts.RecordAnswer(student, session.SessionID, dto.RecordAnswerDTO{
		QuestionID: quiz.Questions[0].ID, Answer: "Paris",
	}))
	attempt, err := f.attempts.SubmitAttempt(student, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 2, attempt.TotalPoints)
	assert.InDelta(t, 50.0, attempt.Percentage, 0.001)
	assert.True(t, attempt.Passed)

	// the session is gone once submitted
	_, err = f.attempts.SubmitAttempt(student, session.SessionID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// a retry appends a distinct record instead of overwriting
	session = svc.startSession(student, *quiz, time.Minute)
	retry, err := f.attempts.SubmitAttempt(student, session.SessionID)
	require.NoError(t, err)
	assert.NotEqual(t, attempt.ID, retry.ID)
	assert.False(t, retry.Passed)

	attempts, err := f.attempts.ListForStudent(student.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestCountdownAutoSubmit(t *testing.T) {
	f := newQuizFixture(t)
	quiz := publishedCapitalsQuiz(t, f)
	student := AuthUser{ID: 1, Name: "Sam"}
	svc := f.attempts.(*quizAttemptService)

	session := svc.startSession(student, *quiz, 50*time.Millisecond)
	require.NoError(t, f.attempts.RecordAnswer(student, session.SessionID, dto.RecordAnswerDTO{
		QuestionID: quiz.Questions[1].ID, Answer: "Tokyo",
	}))

	// let the countdown expire
	assert.Eventually(t, func() bool {
		attempts, err := f.attRepo.FindByStudent(student.ID)
		return err == nil && len(attempts) == 1
	}, time.Second, 10*time.Millisecond)

	attempts, err := f.attRepo.FindByStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)

	// the forced submit used exactly the answers recorded before expiry
	assert.Equal(t, map[string]string{quiz.Questions[1].ID: "Tokyo"}, attempts[0].Answers)
	assert.Equal(t, 1, attempts[0].Score)

	// the session was torn down with the timer
	_, err = f.attempts.SubmitAttempt(student, session.SessionID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestManualSubmitCancelsCountdown(t *testing.T) {
	f := newQuizFixture(t)
	quiz := publishedCapitalsQuiz(t, f)
	student := AuthUser{ID: 1, Name: "Sam"}
	svc := f.attempts.(*quizAttemptService)

	session := svc.startSession(student, *quiz, 50*time.Millisecond)
	_, err := f.attempts.SubmitAttempt(student, session.SessionID)
	require.NoError(t, err)

	// the cancelled timer must not record a second attempt
	time.Sleep(150 * time.Millisecond)
	attempts, err := f.attRepo.FindByStudent(student.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}
