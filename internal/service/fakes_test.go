package service

import (
	"context"
	"io"

	"srmlab_backend/internal/config"
	"srmlab_backend/internal/model"
	"srmlab_backend/internal/util"

	"gorm.io/gorm"
)

func teacherClaims(id uint) *util.Claims {
	return &util.Claims{UserID: id, Role: model.Teacher}
}

func studentClaims(id uint) *util.Claims {
	return &util.Claims{UserID: id, Role: model.Student}
}

func testConfig(defaultNegative float64, penalizeUnanswered bool) *config.Config {
	return &config.Config{
		Grading: config.GradingConfig{
			DefaultNegativeMarks: defaultNegative,
			PenalizeUnanswered:   penalizeUnanswered,
		},
	}
}

type fakeQuestionRepo struct {
	nextID    uint
	questions map[uint]model.Question
	updateErr error
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uint]model.Question)}
}

func (r *fakeQuestionRepo) Create(q *model.Question) error {
	r.nextID++
	q.ID = r.nextID
	r.questions[q.ID] = *q
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (r *fakeQuestionRepo) FindBySubject(subjectID string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.SubjectID == subjectID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(q *model.Question) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.questions[q.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.questions[q.ID] = *q
	return nil
}

func (r *fakeQuestionRepo) Delete(id uint) error {
	delete(r.questions, id)
	return nil
}

type fakeTestRepo struct {
	nextID uint
	tests  map[uint]*model.Test
}

func newFakeTestRepo() *fakeTestRepo {
	return &fakeTestRepo{tests: make(map[uint]*model.Test)}
}

func (r *fakeTestRepo) Create(t *model.Test) error {
	r.nextID++
	t.ID = r.nextID
	copied := *t
	r.tests[t.ID] = &copied
	return nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	t, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTestRepo) FindByTeacher(teacherID uint) ([]model.Test, error) {
	var out []model.Test
	for _, t := range r.tests {
		if t.TeacherID == teacherID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTestRepo) FindAvailable(subjectID string) ([]model.Test, error) {
	var out []model.Test
	for _, t := range r.tests {
		if !t.IsActive {
			continue
		}
		if subjectID != "" && t.SubjectID != subjectID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTestRepo) UpdateStatus(id uint, isActive bool) error {
	t, ok := r.tests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.IsActive = isActive
	return nil
}

type fakeResultRepo struct {
	nextID  uint
	results []model.TestResult
}

func (r *fakeResultRepo) Create(res *model.TestResult) error {
	r.nextID++
	res.ID = r.nextID
	r.results = append(r.results, *res)
	return nil
}

func (r *fakeResultRepo) FindByStudent(studentID uint) ([]model.TestResult, error) {
	var out []model.TestResult
	for _, res := range r.results {
		if res.StudentID == studentID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) FindByTest(testID uint) ([]model.TestResult, error) {
	var out []model.TestResult
	for _, res := range r.results {
		if res.TestID == testID {
			out = append(out, res)
		}
	}
	return out, nil
}

type fakeStorageProvider struct {
	objects   map[string]string
	uploadErr error
}

func newFakeStorage() *StorageService {
	return &StorageService{Provider: &fakeStorageProvider{objects: make(map[string]string)}}
}

func (p *fakeStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if p.uploadErr != nil {
		return "", p.uploadErr
	}
	url := "/uploads/" + filename
	p.objects[filename] = url
	return url, nil
}

func (p *fakeStorageProvider) Delete(ctx context.Context, filename string) error {
	delete(p.objects, filename)
	return nil
}

func (p *fakeStorageProvider) GetURL(filename string) string {
	return p.objects[filename]
}
