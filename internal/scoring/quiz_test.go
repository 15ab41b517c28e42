package scoring

import (
	"testing"

	"github.com/aulalink/activity-service/internal/models"
)

func intPtr(v int) *int { return &v }

func quizQuestions(n int) []models.QuizQuestion {
	qs := make([]models.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, models.QuizQuestion{
			ID:           string(rune('a' + i)),
			Text:         "question",
			Options:      []string{"yes", "no"},
			CorrectIndex: 0,
			Points:       1,
		})
	}
	return qs
}

func TestScoreQuiz(t *testing.T) {
	t.Run("ThreeOfFiveCorrect", func(t *testing.T) {
		res := ScoreQuiz(quizQuestions(5), models.ResponseSet{
			"a": {SelectedOption: intPtr(0)},
			"b": {SelectedOption: intPtr(0)},
			"c": {SelectedOption: intPtr(0)},
			"d": {SelectedOption: intPtr(1)},
			"e": {SelectedOption: intPtr(1)},
		})
		if res.Score != 6 {
			t.Errorf("Expected score 6, got %d", res.Score)
		}
		if res.Correct != 3 || res.Total != 5 {
			t.Errorf("Expected 3/5, got %d/%d", res.Correct, res.Total)
		}
		if res.Inconsistent {
			t.Error("Expected a consistent result")
		}
	})

	t.Run("UnansweredCountsAgainstTotal", func(t *testing.T) {
		res := ScoreQuiz(quizQuestions(4), models.ResponseSet{
			"a": {SelectedOption: intPtr(0)},
		})
		if res.Correct != 1 || res.Total != 4 {
			t.Errorf("Expected 1/4, got %d/%d", res.Correct, res.Total)
		}
		if res.Score != 3 {
			t.Errorf("Expected score 3, got %d", res.Score)
		}
	})

	t.Run("TotalFollowsCurrentQuestionCount", func(t *testing.T) {
		// Answers were recorded against a two-question quiz, then two more
		// questions were added.
		res := ScoreQuiz(quizQuestions(4), models.ResponseSet{
			"a": {SelectedOption: intPtr(0)},
			"b": {SelectedOption: intPtr(0)},
		})
		if res.Total != 4 {
			t.Errorf("Expected total 4, got %d", res.Total)
		}
		if res.Score != 5 {
			t.Errorf("Expected score 5, got %d", res.Score)
		}
		if res.Inconsistent {
			t.Error("Growth is not an inconsistency")
		}
	})

	t.Run("RemovedQuestionFlagsInconsistent", func(t *testing.T) {
		res := ScoreQuiz(quizQuestions(2), models.ResponseSet{
			"a":    {SelectedOption: intPtr(0)},
			"gone": {SelectedOption: intPtr(0)},
		})
		if !res.Inconsistent {
			t.Error("Expected the orphaned answer to flag the result")
		}
		if res.Correct != 1 || res.Total != 2 {
			t.Errorf("Expected 1/2, got %d/%d", res.Correct, res.Total)
		}
	})

	t.Run("EmptyQuizScoresZero", func(t *testing.T) {
		res := ScoreQuiz(nil, models.ResponseSet{"a": {SelectedOption: intPtr(0)}})
		if res.Score != 0 || res.Total != 0 {
			t.Errorf("Expected zero result, got score %d total %d", res.Score, res.Total)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		questions := quizQuestions(5)
		responses := models.ResponseSet{
			"a": {SelectedOption: intPtr(0)},
			"b": {SelectedOption: intPtr(1)},
		}
		first := ScoreQuiz(questions, responses)
		second := ScoreQuiz(questions, responses)
		if first.Score != second.Score || first.Correct != second.Correct {
			t.Errorf("Expected identical results, got %+v then %+v", first, second)
		}
	})
}

func TestScoreEvaluation(t *testing.T) {
	t.Run("UnjudgedStaysInTotal", func(t *testing.T) {
		res := ScoreEvaluation(quizQuestions(4), models.JudgmentSet{
			"a": true,
			"b": true,
			"c": false,
		})
		if res.Correct != 2 || res.Total != 4 {
			t.Errorf("Expected 2/4, got %d/%d", res.Correct, res.Total)
		}
		if res.Score != 5 {
			t.Errorf("Expected score 5, got %d", res.Score)
		}
	})

	t.Run("AllAchieved", func(t *testing.T) {
		res := ScoreEvaluation(quizQuestions(2), models.JudgmentSet{"a": true, "b": true})
		if res.Score != MaxScore {
			t.Errorf("Expected score %d, got %d", MaxScore, res.Score)
		}
	})

	t.Run("ShrunkenContentClamped", func(t *testing.T) {
		res := ScoreEvaluation(quizQuestions(1), models.JudgmentSet{
			"a": true, "b": true, "c": true,
		})
		if !res.Inconsistent {
			t.Error("Expected extra judgments to flag the result")
		}
		if res.Correct > res.Total {
			t.Errorf("Expected correct clamped to total, got %d/%d", res.Correct, res.Total)
		}
		if res.Score > MaxScore {
			t.Errorf("Expected score within scale, got %d", res.Score)
		}
	})

	t.Run("SelectionsNeverEnterTheScore", func(t *testing.T) {
		// Judgments alone decide the outcome.
		res := ScoreEvaluation(quizQuestions(2), models.JudgmentSet{"a": false, "b": false})
		if res.Score != 0 {
			t.Errorf("Expected score 0, got %d", res.Score)
		}
	})
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct {
		ratio float64
		want  int
	}{
		{0, 0},
		{0.04, 0},
		{0.05, 1},
		{0.25, 3},
		{0.45, 5},
		{0.75, 8},
		{1, 10},
		{-0.5, 0},
		{1.5, 10},
	}
	for _, tc := range cases {
		if got := roundHalfUp(tc.ratio); got != tc.want {
			t.Errorf("roundHalfUp(%v) = %d, expected %d", tc.ratio, got, tc.want)
		}
	}
}
