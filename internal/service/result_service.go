package service

import (
	"strconv"
	"sync"
	"time"

	"srmlab_backend/internal/config"
	"srmlab_backend/internal/model"
	"srmlab_backend/internal/repository"
	"srmlab_backend/internal/util"
	"srmlab_backend/pkg/monitoring"
)

type ResultService struct {
	TestSvc *TestService
	Repo    repository.TestResultRepository

	// policy is hot-reloaded by the config watcher while submissions read it.
	mu     sync.RWMutex
	policy GradePolicy
}

func NewResultService(testSvc *TestService, repo repository.TestResultRepository, cfg *config.Config) *ResultService {
	return &ResultService{
		TestSvc: testSvc,
		Repo:    repo,
		policy:  GradePolicy{PenalizeUnanswered: cfg.Grading.PenalizeUnanswered},
	}
}

func (s *ResultService) GradePolicy() GradePolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

func (s *ResultService) SetGradePolicy(policy GradePolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = policy
}

type SubmitRequest struct {
	Answers          []int      `json:"answers" binding:"required"`
	TimeTakenSeconds int        `json:"timeTakenSeconds"`
	StartedAt        *time.Time `json:"startedAt"`
}

// Submit grades a student's answers against the test and stores the result.
// The student identity comes from the authenticated requester, never from the
// payload. An inactive test, or one whose access window has closed, is
// reported as not found so the submission is rejected before any grading.
func (s *ResultService) Submit(testID uint, req SubmitRequest, requester *util.Claims) (*model.TestResult, error) {
	if requester.Role != model.Student {
		return nil, util.ErrForbidden
	}

	test, err := s.TestSvc.Get(testID)
	if err != nil {
		return nil, err
	}
	if !test.IsActive {
		return nil, util.ErrNotFound
	}

	now := time.Now()
	if test.ScheduledAt != nil && now.Before(*test.ScheduledAt) {
		return nil, util.ErrNotFound
	}
	if test.EndAt != nil && now.After(*test.EndAt) && !test.AllowLate {
		return nil, util.ErrNotFound
	}

	for i, answer := range req.Answers {
		if answer < model.UnansweredIndex {
			return nil, util.NewValidationError("answers",
				"selected option at position "+strconv.Itoa(i)+" is negative")
		}
	}

	score, correct := GradeTest(test.Questions, req.Answers, s.GradePolicy())

	startedAt := now
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}
	timeTaken := req.TimeTakenSeconds
	if timeTaken == 0 && req.StartedAt != nil {
		timeTaken = int(now.Sub(*req.StartedAt).Seconds())
	}

	result := &model.TestResult{
		TestID:           test.ID,
		StudentID:        requester.UserID,
		Answers:          req.Answers,
		Score:            score,
		TotalQuestions:   len(test.Questions),
		CorrectAnswers:   correct,
		TimeTakenSeconds: timeTaken,
		StartedAt:        startedAt,
		CompletedAt:      now,
	}

	if err := s.Repo.Create(result); err != nil {
		return nil, err
	}

	monitoring.SubmissionsGraded.WithLabelValues(test.SubjectID).Inc()
	return result, nil
}

// ByStudent returns a student's own results. Requesting someone else's is
// forbidden outright; the id is caller-supplied so nothing is disclosed.
func (s *ResultService) ByStudent(studentID uint, requester *util.Claims) ([]model.TestResult, error) {
	if requester.Role != model.Student || requester.UserID != studentID {
		return nil, util.ErrForbidden
	}
	return s.Repo.FindByStudent(studentID)
}

// ByTest returns all submissions for a test. Only the owning teacher may see
// them; for any other teacher the test is reported as not found.
func (s *ResultService) ByTest(testID uint, requester *util.Claims) ([]model.TestResult, error) {
	if requester.Role != model.Teacher {
		return nil, util.ErrForbidden
	}

	test, err := s.TestSvc.Get(testID)
	if err != nil {
		return nil, err
	}
	if test.TeacherID != requester.UserID {
		return nil, util.ErrNotFound
	}

	return s.Repo.FindByTest(testID)
}
