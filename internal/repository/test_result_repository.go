package repository

import (
	"srmlab_backend/internal/model"

	"gorm.io/gorm"
)

// TestResultRepository exposes no update or delete: a result is written once
// at submission time and is immutable afterwards.
type TestResultRepository interface {
	Create(result *model.TestResult) error
	FindByStudent(studentID uint) ([]model.TestResult, error)
	FindByTest(testID uint) ([]model.TestResult, error)
}

type testResultRepository struct {
	db *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) TestResultRepository {
	return &testResultRepository{db: db}
}

func (r *testResultRepository) Create(result *model.TestResult) error {
	return r.db.Create(result).Error
}

func (r *testResultRepository) FindByStudent(studentID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&results).Error
	return results, err
}

func (r *testResultRepository) FindByTest(testID uint) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.Where("test_id = ?", testID).
		Order("created_at desc").
		Find(&results).Error
	return results, err
}
