package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"srmlab_backend/internal/model"
	"srmlab_backend/internal/util"
)

type resultFixture struct {
	svc      *ResultService
	testSvc  *TestService
	repo     *fakeResultRepo
	test     *model.Test
	teacher  *util.Claims
	student  *util.Claims
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()

	testSvc := newTestService(newFakeTestRepo())
	teacher := teacherClaims(1)

	created, err := testSvc.Create(validTestRequest(), teacher)
	if err != nil {
		t.Fatalf("creating fixture test: %v", err)
	}

	repo := &fakeResultRepo{}
	svc := NewResultService(testSvc, repo, testConfig(0, false))
	return &resultFixture{
		svc:     svc,
		testSvc: testSvc,
		repo:    repo,
		test:    created,
		teacher: teacher,
		student: studentClaims(10),
	}
}

func TestSubmitForbiddenForTeachers(t *testing.T) {
	f := newResultFixture(t)
	_, err := f.svc.Submit(f.test.ID, SubmitRequest{Answers: []int{0, 2}}, f.teacher)
	if !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("Submit() by teacher error = %v, want ErrForbidden", err)
	}
}

func TestSubmitMissingTest(t *testing.T) {
	f := newResultFixture(t)
	_, err := f.svc.Submit(999, SubmitRequest{Answers: []int{0}}, f.student)
	if !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("Submit() to missing test error = %v, want ErrNotFound", err)
	}
}

func TestSubmitInactiveTest(t *testing.T) {
	f := newResultFixture(t)
	if _, err := f.testSvc.SetStatus(f.test.ID, false, f.teacher); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	_, err := f.svc.Submit(f.test.ID, SubmitRequest{Answers: []int{0, 2}}, f.student)
	if !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("Submit() to inactive test error = %v, want ErrNotFound", err)
	}
	if len(f.repo.results) != 0 {
		t.Errorf("%d results stored for a rejected submission, want 0", len(f.repo.results))
	}
}

func TestSubmitOutsideWindow(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	cases := []struct {
		name    string
		mutate  func(*TestRequest)
		wantErr error
	}{
		{"before the scheduled start", func(r *TestRequest) { r.ScheduledAt = &future }, util.ErrNotFound},
		{"after the end", func(r *TestRequest) { r.EndAt = &past }, util.ErrNotFound},
		{"after the end with late submissions allowed", func(r *TestRequest) {
			r.EndAt = &past
			r.AllowLate = true
		}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testSvc := newTestService(newFakeTestRepo())
			req := validTestRequest()
			tc.mutate(&req)
			created, err := testSvc.Create(req, teacherClaims(1))
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			svc := NewResultService(testSvc, &fakeResultRepo{}, testConfig(0, false))
			_, err = svc.Submit(created.ID, SubmitRequest{Answers: []int{0, 2}}, studentClaims(10))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Submit() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSubmitRejectsInvalidAnswerIndexes(t *testing.T) {
	f := newResultFixture(t)
	_, err := f.svc.Submit(f.test.ID, SubmitRequest{Answers: []int{0, -3}}, f.student)
	if !util.IsValidationError(err) {
		t.Fatalf("Submit() error = %v, want a validation error", err)
	}
}

func TestSubmitGradesAndStores(t *testing.T) {
	f := newResultFixture(t)

	// Fixture test: q1 correct=0 worth 1, q2 correct=2 worth 1.
	result, err := f.svc.Submit(f.test.ID, SubmitRequest{
		Answers:          []int{0, 1},
		TimeTakenSeconds: 90,
	}, f.student)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if result.StudentID != f.student.UserID {
		t.Errorf("StudentID = %d, want %d (forced from the authenticated student)",
			result.StudentID, f.student.UserID)
	}
	if result.TestID != f.test.ID {
		t.Errorf("TestID = %d, want %d", result.TestID, f.test.ID)
	}
	if result.Score != 1 || result.CorrectAnswers != 1 {
		t.Errorf("score/correct = %v/%d, want 1/1", result.Score, result.CorrectAnswers)
	}
	if result.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", result.TotalQuestions)
	}
	if result.TimeTakenSeconds != 90 {
		t.Errorf("TimeTakenSeconds = %d, want 90", result.TimeTakenSeconds)
	}
	if len(f.repo.results) != 1 {
		t.Fatalf("%d results stored, want 1", len(f.repo.results))
	}
}

func TestSubmitDerivesTimeTakenFromStart(t *testing.T) {
	f := newResultFixture(t)

	started := time.Now().Add(-2 * time.Minute)
	result, err := f.svc.Submit(f.test.ID, SubmitRequest{
		Answers:   []int{0, 2},
		StartedAt: &started,
	}, f.student)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.TimeTakenSeconds < 119 || result.TimeTakenSeconds > 121 {
		t.Errorf("TimeTakenSeconds = %d, want about 120", result.TimeTakenSeconds)
	}
	if !result.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", result.StartedAt, started)
	}
}

func TestSubmitDuringPolicyReload(t *testing.T) {
	f := newResultFixture(t)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				f.svc.SetGradePolicy(GradePolicy{PenalizeUnanswered: i%2 == 0})
			}
		}
	}()

	for i := 0; i < 100; i++ {
		if _, err := f.svc.Submit(f.test.ID, SubmitRequest{Answers: []int{0, 2}}, f.student); err != nil {
			close(done)
			wg.Wait()
			t.Fatalf("Submit() error = %v", err)
		}
	}
	close(done)
	wg.Wait()
}

func TestResultsByStudentAuthorization(t *testing.T) {
	f := newResultFixture(t)
	if _, err := f.svc.Submit(f.test.ID, SubmitRequest{Answers: []int{0, 2}}, f.student); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := f.svc.ByStudent(f.student.UserID, studentClaims(11)); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("ByStudent() for another student error = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.ByStudent(f.student.UserID, f.teacher); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("ByStudent() by teacher error = %v, want ErrForbidden", err)
	}

	results, err := f.svc.ByStudent(f.student.UserID, f.student)
	if err != nil {
		t.Fatalf("ByStudent() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("ByStudent() returned %d results, want 1", len(results))
	}
}

func TestResultsByTestAuthorization(t *testing.T) {
	f := newResultFixture(t)
	if _, err := f.svc.Submit(f.test.ID, SubmitRequest{Answers: []int{1, 2}}, f.student); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := f.svc.ByTest(f.test.ID, f.student); !errors.Is(err, util.ErrForbidden) {
		t.Fatalf("ByTest() by student error = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.ByTest(f.test.ID, teacherClaims(2)); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("ByTest() by non-owner error = %v, want ErrNotFound", err)
	}

	results, err := f.svc.ByTest(f.test.ID, f.teacher)
	if err != nil {
		t.Fatalf("ByTest() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("ByTest() returned %d results, want 1", len(results))
	}
}
