package scoring

import "github.com/aulalink/activity-service/internal/models"

// ScoreQuiz grades a student-completed quiz. A question counts as correct
// when the submitted option index equals its correct index. The total is the
// aggregate's question count at scoring time, not at authoring time: answers
// recorded before questions were added are counted against the new total,
// and answers to questions that no longer exist are simply ignored (the
// shrunken-content case is reported via Result.Inconsistent).
func ScoreQuiz(questions []models.QuizQuestion, responses models.ResponseSet) Result {
	res := Result{Total: len(questions)}
	if res.Total == 0 {
		return res
	}

	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
		r, answered := responses[q.ID]
		if !answered || r.SelectedOption == nil {
			res.Items = append(res.Items, ItemResult{ID: q.ID, Points: q.Points})
			continue
		}
		correct := *r.SelectedOption == q.CorrectIndex
		if correct {
			res.Correct++
		}
		res.Items = append(res.Items, ItemResult{ID: q.ID, Correct: correct, Points: q.Points})
	}

	for id := range responses {
		if _, ok := known[id]; !ok {
			res.Inconsistent = true
			break
		}
	}

	res.Score = roundHalfUp(float64(res.Correct) / float64(res.Total))
	return res
}

// ScoreEvaluation grades a teacher-judged NEM evaluation. Judgments are
// binary and keyed by question id; the student's original selections are
// display-only context and never enter the computation. A question with no
// judgment stays in the total but not in the achieved count, so unjudged
// items always depress the score. That pressure toward completeness is
// intentional.
func ScoreEvaluation(questions []models.QuizQuestion, judgments models.JudgmentSet) Result {
	res := Result{Total: len(questions)}
	if res.Total == 0 {
		return res
	}

	for _, q := range questions {
		achieved, judged := judgments[q.ID]
		correct := judged && achieved
		if correct {
			res.Correct++
		}
		res.Items = append(res.Items, ItemResult{ID: q.ID, Correct: correct, Points: q.Points})
	}

	// Content shrank after judging began: clamp to the current total.
	if len(judgments) > res.Total {
		res.Inconsistent = true
	}
	if res.Correct > res.Total {
		res.Correct = res.Total
	}

	res.Score = roundHalfUp(float64(res.Correct) / float64(res.Total))
	return res
}
