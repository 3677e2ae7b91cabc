package service

import (
	"srmlab_backend/internal/model"
)

// GradePolicy controls how blank answers are scored. A blank answer (missing
// trailing entry or model.UnansweredIndex) never earns credit; it incurs the
// question's negative marks only when PenalizeUnanswered is set.
type GradePolicy struct {
	PenalizeUnanswered bool
}

// GradeTest scores a submission against the test's question sequence. It is a
// pure computation: identical inputs always produce identical output.
//
// Questions and answers are paired positionally. A match adds the question's
// marks and counts as correct; a mismatch subtracts the question's negative
// marks, with the running score floored at zero. Submitted answers beyond the
// question count are ignored.
func GradeTest(questions []model.Question, answers []int, policy GradePolicy) (score float64, correct int) {
	for i, q := range questions {
		answer := model.UnansweredIndex
		if i < len(answers) {
			answer = answers[i]
		}

		if answer == model.UnansweredIndex {
			if policy.PenalizeUnanswered {
				score -= q.NegativeMarks
			}
		} else if answer == q.CorrectAnswer {
			score += q.Marks
			correct++
		} else {
			score -= q.NegativeMarks
		}

		if score < 0 {
			score = 0
		}
	}
	return score, correct
}
