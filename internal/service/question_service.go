package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"

	"srmlab_backend/internal/config"
	"srmlab_backend/internal/model"
	"srmlab_backend/internal/repository"
	"srmlab_backend/internal/util"
	"srmlab_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuestionService struct {
	Repo    repository.QuestionRepository
	Storage *StorageService

	// grading is hot-reloaded by the config watcher while requests read it.
	mu      sync.RWMutex
	grading config.GradingConfig
}

func NewQuestionService(repo repository.QuestionRepository, storage *StorageService, cfg *config.Config) *QuestionService {
	return &QuestionService{Repo: repo, Storage: storage, grading: cfg.Grading}
}

func (s *QuestionService) GradingConfig() config.GradingConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grading
}

func (s *QuestionService) SetGradingConfig(cfg config.GradingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grading = cfg
}

type QuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer int      `json:"correctAnswer"`
	SubjectID     string   `json:"subjectId" binding:"required"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	Explanation   string   `json:"explanation"`
	Marks         *float64 `json:"marks"`
	NegativeMarks *float64 `json:"negativeMarks"`
}

// validateQuestionFields is the single validation boundary for questions,
// whether they are created standalone or embedded in a test.
func validateQuestionFields(text string, options []string, correctAnswer int) error {
	if text == "" {
		return util.NewValidationError("text", "must not be empty")
	}
	if len(options) < 2 {
		return util.NewValidationError("options", "at least 2 options are required")
	}
	for i, opt := range options {
		if opt == "" {
			return util.NewValidationError("options", fmt.Sprintf("option %d must not be empty", i))
		}
	}
	if correctAnswer < 0 || correctAnswer >= len(options) {
		return util.NewValidationError("correctAnswer",
			fmt.Sprintf("index %d is out of range for %d options", correctAnswer, len(options)))
	}
	return nil
}

func (s *QuestionService) buildQuestion(req QuestionRequest, teacherID uint) (*model.Question, error) {
	if err := validateQuestionFields(req.Text, req.Options, req.CorrectAnswer); err != nil {
		return nil, err
	}
	if req.SubjectID == "" {
		return nil, util.NewValidationError("subjectId", "must not be empty")
	}

	q := &model.Question{
		Text:          req.Text,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		SubjectID:     req.SubjectID,
		TeacherID:     teacherID,
		Type:          req.Type,
		Difficulty:    req.Difficulty,
		Explanation:   req.Explanation,
		Marks:         1,
		NegativeMarks: s.GradingConfig().DefaultNegativeMarks,
	}
	if q.Type == "" {
		q.Type = "single_choice"
	}
	if q.Difficulty == "" {
		q.Difficulty = model.DifficultyMedium
	}
	switch q.Difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return nil, util.NewValidationError("difficulty", "must be easy, medium or hard")
	}
	if req.Marks != nil {
		if *req.Marks <= 0 {
			return nil, util.NewValidationError("marks", "must be positive")
		}
		q.Marks = *req.Marks
	}
	if req.NegativeMarks != nil {
		if *req.NegativeMarks < 0 {
			return nil, util.NewValidationError("negativeMarks", "must not be negative")
		}
		q.NegativeMarks = *req.NegativeMarks
	}
	return q, nil
}

// Create stores a standalone question-bank entry. The owning teacher is
// always the authenticated requester; any teacher id in the payload is
// ignored.
func (s *QuestionService) Create(req QuestionRequest, requester *util.Claims) (*model.Question, error) {
	if requester.Role != model.Teacher {
		return nil, util.ErrForbidden
	}

	q, err := s.buildQuestion(req, requester.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) GetBySubject(subjectID string) ([]model.Question, error) {
	return s.Repo.FindBySubject(subjectID)
}

// findOwned resolves a question the requester owns. A question owned by
// someone else is reported as not found so that non-owners cannot probe for
// existence.
func (s *QuestionService) findOwned(id uint, requester *util.Claims) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if q.TeacherID != requester.UserID {
		return nil, util.ErrNotFound
	}
	return q, nil
}

func (s *QuestionService) Update(id uint, req QuestionRequest, requester *util.Claims) (*model.Question, error) {
	if requester.Role != model.Teacher {
		return nil, util.ErrForbidden
	}

	existing, err := s.findOwned(id, requester)
	if err != nil {
		return nil, err
	}

	updated, err := s.buildQuestion(req, existing.TeacherID)
	if err != nil {
		return nil, err
	}
	updated.BaseModel = existing.BaseModel
	updated.TestID = existing.TestID
	updated.ImageURL = existing.ImageURL
	updated.OrderInTest = existing.OrderInTest

	if err := s.Repo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *QuestionService) Delete(id uint, requester *util.Claims) error {
	if requester.Role != model.Teacher {
		return util.ErrForbidden
	}

	if _, err := s.findOwned(id, requester); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// AttachImage stores an illustration for a question under a generated UUID
// object name and records its URL. If recording the URL fails after the
// object was written, the object is removed again so no orphan remains.
func (s *QuestionService) AttachImage(ctx context.Context, id uint, reader io.Reader, size int64, contentType, filename string, requester *util.Claims) (*model.Question, error) {
	if requester.Role != model.Teacher {
		return nil, util.ErrForbidden
	}

	q, err := s.findOwned(id, requester)
	if err != nil {
		return nil, err
	}

	if !util.IsImage(contentType) {
		return nil, util.NewValidationError("file", "only image uploads are accepted")
	}

	objectName := "question_images/" + uuid.New().String() + path.Ext(filename)
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	q.ImageURL = url
	if err := s.Repo.Update(q); err != nil {
		if delErr := s.Storage.Delete(ctx, objectName); delErr != nil {
			logger.Log.Error("failed to clean up orphaned question image",
				zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, err
	}
	return q, nil
}
