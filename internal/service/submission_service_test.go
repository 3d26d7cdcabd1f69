package service

import (
	"testing"
	"time"

	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/kvstore"
	"github.com/khanhlt/learnboard/internal/model"
	"github.com/khanhlt/learnboard/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gradebookFixture struct {
	assignments AssignmentService
	submissions SubmissionService
	subRepo     repository.SubmissionRepository
}

func newGradebookFixture(t *testing.T) *gradebookFixture {
	t.Helper()
	store := kvstore.NewMemoryStore()
	assignmentRepo := repository.NewAssignmentRepository(store)
	subRepo := repository.NewSubmissionRepository(store)
	attemptRepo := repository.NewQuizAttemptRepository(store)
	return &gradebookFixture{
		assignments: NewAssignmentService(assignmentRepo),
		submissions: NewSubmissionService(assignmentRepo, subRepo, attemptRepo),
		subRepo:     subRepo,
	}
}

func (f *gradebookFixture) createAssignment(t *testing.T, name string) *dto.AssignmentResponseDTO {
	t.Helper()
	resp, err := f.assignments.Create(dto.AssignmentCreateDTO{
		Name:     name,
		Deadline: time.Now().Add(24 * time.Hour),
		FileName: name + ".pdf",
		FileRef:  "ref:" + name,
	})
	require.NoError(t, err)
	return resp
}

var testStudent = AuthUser{ID: 1, Name: "Sam", Email: "s@x.com", Role: model.RoleStudent}

func TestCreateAssignmentRejectsPastDeadline(t *testing.T) {
	f := newGradebookFixture(t)

	_, err := f.assignments.Create(dto.AssignmentCreateDTO{
		Name:     "HW1",
		Deadline: time.Now().Add(-time.Hour),
		FileName: "hw1.pdf",
		FileRef:  "ref:hw1",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListAssignmentsKeepsInsertionOrder(t *testing.T) {
	f := newGradebookFixture(t)
	f.createAssignment(t, "HW1")
	f.createAssignment(t, "HW2")
	f.createAssignment(t, "HW3")

	list, err := f.assignments.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "HW1", list[0].Name)
	assert.Equal(t, "HW2", list[1].Name)
	assert.Equal(t, "HW3", list[2].Name)
}

func TestSubmitUnknownAssignment(t *testing.T) {
	f := newGradebookFixture(t)

	_, err := f.submissions.Submit(testStudent, "no-such-id", dto.SubmissionCreateDTO{
		FileName: "work.pdf", FileRef: "ref:work",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSubmitFilePolicy(t *testing.T) {
	f := newGradebookFixture(t)
	assignment := f.createAssignment(t, "HW1")

	tests := []struct {
		name string
		req  dto.SubmissionCreateDTO
	}{
		{name: "oversized file", req: dto.SubmissionCreateDTO{FileName: "work.pdf", FileRef: "r", FileSizeBytes: 11 << 20}},
		{name: "disallowed extension", req: dto.SubmissionCreateDTO{FileName: "work.exe", FileRef: "r", FileSizeBytes: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.submissions.Submit(testStudent, assignment.ID, tt.req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestResubmissionOverwritesInPlace(t *testing.T) {
	f := newGradebookFixture(t)
	assignment := f.createAssignment(t, "HW1")

	first, err := f.submissions.Submit(testStudent, assignment.ID, dto.SubmissionCreateDTO{
		FileName: "v1.pdf", FileRef: "ref:v1", FileSizeBytes: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusSubmitted), first.Status)
	assert.Equal(t, 0, first.ResubmissionCount)

	second, err := f.submissions.Submit(testStudent, assignment.ID, dto.SubmissionCreateDTO{
		FileName: "v2.pdf", FileRef: "ref:v2", FileSizeBytes: 200,
	})
	require.NoError(t, err)

	// one live record, same identity, versioned
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, string(model.StatusResubmitted), second.Status)
	assert.Equal(t, 1, second.ResubmissionCount)
	assert.Equal(t, "v2.pdf", second.FileName)
	require.NotNil(t, second.PreviousSubmittedAt)
	assert.Equal(t, first.SubmittedAt.Unix(), second.PreviousSubmittedAt.Unix())

	all, err := f.subRepo.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResubmissionResetsGrading(t *testing.T) {
	f := newGradebookFixture(t)
	assignment := f.createAssignment(t, "HW1")

	first, err := f.submissions.Submit(testStudent, assignment.ID, dto.SubmissionCreateDTO{
		FileName: "v1.pdf", FileRef: "ref:v1",
	})
	require.NoError(t, err)

	_, err = f.submissions.Grade(first.ID, dto.GradeSubmissionDTO{Grade: "C", Feedback: "try again"})
	require.NoError(t, err)

	second, err := f.submissions.Submit(testStudent, assignment.ID, dto.SubmissionCreateDTO{
		FileName: "v2.pdf", FileRef: "ref:v2",
	})
	require.NoError(t, err)
	assert.Empty(t, second.Grade)
	assert.Empty(t, second.Feedback)
	assert.Nil(t, second.GradedAt)
}

func TestGrade(t *testing.T) {
	f := newGradebookFixture(t)
	assignment := f.createAssignment(t, "HW1")

	sub, err := f.submissions.Submit(testStudent, assignment.ID, dto.SubmissionCreateDTO{
		FileName: "work.pdf", FileRef: "ref:work",
	})
	require.NoError(t, err)

	graded, err := f.submissions.Grade(sub.ID, dto.GradeSubmissionDTO{Grade: "A", Feedback: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "A", graded.Grade)
	assert.Equal(t, "nice", graded.Feedback)
	assert.Equal(t, string(model.StatusGraded), graded.Status)
	assert.NotNil(t, graded.GradedAt)
	assert.Equal(t, 0, graded.ResubmissionCount)

	// re-grading overwrites
	regraded, err := f.submissions.Grade(sub.ID, dto.GradeSubmissionDTO{Grade: "B", Feedback: "on second look"})
	require.NoError(t, err)
	assert.Equal(t, "B", regraded.Grade)

	// and the student's view reflects the latest grade
	mine, err := f.submissions.ListForStudent(testStudent.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "B", mine[0].Grade)
}

func TestGradeUnknownSubmission(t *testing.T) {
	f := newGradebookFixture(t)

	_, err := f.submissions.Grade("no-such-id", dto.GradeSubmissionDTO{Grade: "A"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFilteredSubmissionViews(t *testing.T) {
	f := newGradebookFixture(t)
	hw1 := f.createAssignment(t, "HW1")
	hw2 := f.createAssignment(t, "HW2")
	other := AuthUser{ID: 2, Name: "Pat", Role: model.RoleStudent}

	for _, c := range []struct {
		student      AuthUser
		assignmentID string
	}{
		{testStudent, hw1.ID},
		{testStudent, hw2.ID},
		{other, hw1.ID},
	} {
		_, err := f.submissions.Submit(c.student, c.assignmentID, dto.SubmissionCreateDTO{
			FileName: "work.pdf", FileRef: "ref",
		})
		require.NoError(t, err)
	}

	byStudent, err := f.submissions.ListForStudent(testStudent.ID)
	require.NoError(t, err)
	assert.Len(t, byStudent, 2)

	byAssignment, err := f.submissions.ListForAssignment(hw1.ID)
	require.NoError(t, err)
	assert.Len(t, byAssignment, 2)
}

func TestMentorSummary(t *testing.T) {
	f := newGradebookFixture(t)
	assignment := f.createAssignment(t, "HW1")
	other := AuthUser{ID: 2, Name: "Pat", Role: model.RoleStudent}

	s1, err := f.submissions.Submit(testStudent, assignment.ID, dto.SubmissionCreateDTO{FileName: "a.pdf", FileRef: "r"})
	require.NoError(t, err)
	_, err = f.submissions.Submit(other, assignment.ID, dto.SubmissionCreateDTO{FileName: "b.pdf", FileRef: "r"})
	require.NoError(t, err)

	_, err = f.submissions.Grade(s1.ID, dto.GradeSubmissionDTO{Grade: "80"})
	require.NoError(t, err)

	summary, err := f.submissions.MentorSummary()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalSubmissions)
	assert.Equal(t, 1, summary.PendingGrading)
	assert.Equal(t, 1, summary.GradedSubmissions)
	assert.InDelta(t, 80.0, summary.AverageGrade, 0.001)
	assert.Equal(t, 0, summary.QuizAttempts)
}
