package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"srmlab_backend/internal/model"
	"srmlab_backend/internal/repository"
	"srmlab_backend/internal/util"
	"srmlab_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	availableTestsKeyPrefix = "tests:available:"
	availableTestsCacheTTL  = time.Minute
)

type TestService struct {
	Repo        repository.TestRepository
	QuestionSvc *QuestionService
	Redis       *redis.Client
}

func NewTestService(repo repository.TestRepository, questionSvc *QuestionService, rdb *redis.Client) *TestService {
	return &TestService{Repo: repo, QuestionSvc: questionSvc, Redis: rdb}
}

type TestRequest struct {
	Title           string            `json:"title" binding:"required"`
	Instructions    string            `json:"instructions"`
	SubjectID       string            `json:"subjectId" binding:"required"`
	DurationMinutes int               `json:"durationMinutes"`
	TotalMarks      *float64          `json:"totalMarks"`
	Questions       []QuestionRequest `json:"questions"`
	ScheduledAt     *time.Time        `json:"scheduledAt"`
	EndAt           *time.Time        `json:"endAt"`
	AllowLate       bool              `json:"allowLate"`
}

// Create validates and stores a test together with its question sequence.
// Question rows are inserted in the same transaction as the test row, so a
// validation pass followed by a failed insert leaves no orphaned questions.
// The owning teacher is forced from the authenticated requester.
func (s *TestService) Create(req TestRequest, requester *util.Claims) (*model.Test, error) {
	if requester.Role != model.Teacher {
		return nil, util.ErrForbidden
	}

	if req.Title == "" {
		return nil, util.NewValidationError("title", "must not be empty")
	}
	if req.DurationMinutes <= 0 {
		return nil, util.NewValidationError("durationMinutes", "must be positive")
	}
	if len(req.Questions) == 0 {
		return nil, util.NewValidationError("questions", "at least one question is required")
	}
	if req.ScheduledAt != nil && req.EndAt != nil && !req.EndAt.After(*req.ScheduledAt) {
		return nil, util.NewValidationError("endAt", "must be after scheduledAt")
	}

	test := &model.Test{
		Title:           req.Title,
		Instructions:    req.Instructions,
		SubjectID:       req.SubjectID,
		TeacherID:       requester.UserID,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
		ScheduledAt:     req.ScheduledAt,
		EndAt:           req.EndAt,
		AllowLate:       req.AllowLate,
	}

	var totalMarks float64
	for i, qReq := range req.Questions {
		qReq.SubjectID = req.SubjectID
		q, err := s.QuestionSvc.buildQuestion(qReq, requester.UserID)
		if err != nil {
			return nil, err
		}
		q.OrderInTest = i
		test.Questions = append(test.Questions, *q)
		totalMarks += q.Marks

		switch q.Difficulty {
		case model.DifficultyEasy:
			test.EasyCount++
		case model.DifficultyMedium:
			test.MediumCount++
		case model.DifficultyHard:
			test.HardCount++
		}
	}

	test.TotalMarks = totalMarks
	if req.TotalMarks != nil {
		if *req.TotalMarks <= 0 {
			return nil, util.NewValidationError("totalMarks", "must be positive")
		}
		test.TotalMarks = *req.TotalMarks
	}

	if err := s.Repo.Create(test); err != nil {
		return nil, err
	}

	s.invalidateAvailableCache(test.SubjectID)
	return test, nil
}

func (s *TestService) Get(id uint) (*model.Test, error) {
	test, err := s.Repo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return test, nil
}

func (s *TestService) ListByTeacher(teacherID uint) ([]model.Test, error) {
	return s.Repo.FindByTeacher(teacherID)
}

// ListAvailable returns active tests, optionally filtered by subject. The
// listing is cached briefly in Redis; create and status changes invalidate it.
func (s *TestService) ListAvailable(ctx context.Context, subjectID string) ([]model.Test, error) {
	key := availableTestsKeyPrefix + "all"
	if subjectID != "" {
		key = availableTestsKeyPrefix + subjectID
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var tests []model.Test
			if err := json.Unmarshal([]byte(cached), &tests); err == nil {
				return tests, nil
			}
		}
	}

	tests, err := s.Repo.FindAvailable(subjectID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(tests); err == nil {
			if err := s.Redis.Set(ctx, key, payload, availableTestsCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache available tests", zap.Error(err))
			}
		}
	}

	return tests, nil
}

// SetStatus flips the active flag. Only the owning teacher may do so; for
// anyone else the test is reported as not found.
func (s *TestService) SetStatus(id uint, isActive bool, requester *util.Claims) (*model.Test, error) {
	if requester.Role != model.Teacher {
		return nil, util.ErrForbidden
	}

	test, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if test.TeacherID != requester.UserID {
		return nil, util.ErrNotFound
	}

	if err := s.Repo.UpdateStatus(id, isActive); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	test.IsActive = isActive
	s.invalidateAvailableCache(test.SubjectID)
	return test, nil
}

func (s *TestService) invalidateAvailableCache(subjectID string) {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	keys := []string{availableTestsKeyPrefix + "all"}
	if subjectID != "" {
		keys = append(keys, availableTestsKeyPrefix+subjectID)
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("failed to invalidate available-tests cache", zap.Error(err))
	}
}
