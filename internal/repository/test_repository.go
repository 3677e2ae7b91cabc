package repository

import (
	"srmlab_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository interface {
	// Create inserts the test and its embedded questions in one transaction,
	// so a failed question insert rolls back the whole test.
	Create(test *model.Test) error
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindByTeacher(teacherID uint) ([]model.Test, error)
	FindAvailable(subjectID string) ([]model.Test, error)
	UpdateStatus(id uint, isActive bool) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(test).Error
	})
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_test ASC, questions.id ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByTeacher(teacherID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.Where("teacher_id = ?", teacherID).
		Order("created_at desc").
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) FindAvailable(subjectID string) ([]model.Test, error) {
	var tests []model.Test
	query := r.db.Where("is_active = ?", true)
	if subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	err := query.Order("created_at desc").Find(&tests).Error
	return tests, err
}

func (r *testRepository) UpdateStatus(id uint, isActive bool) error {
	res := r.db.Model(&model.Test{}).
		Where("id = ?", id).
		Update("is_active", isActive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Re-setting the same flag also affects zero rows; only report
		// missing when the row truly does not exist.
		var count int64
		if err := r.db.Model(&model.Test{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}
