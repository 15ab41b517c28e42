package scoring

import (
	"errors"
	"testing"

	"github.com/aulalink/activity-service/internal/models"
)

func worksheet(zones []models.InteractiveZone, items []models.DraggableItem) *models.ContentAggregate {
	return &models.ContentAggregate{
		Kind:             models.ContentWorksheet,
		HasContent:       true,
		ImageURL:         "https://cdn.example.com/sheet.png",
		InteractiveZones: zones,
		DraggableItems:   items,
	}
}

func TestScoreWorksheet(t *testing.T) {
	t.Run("PointWeightedScore", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "z1", Type: models.ZoneTextInput, Points: 1, CorrectAnswer: "mitochondria"},
			{ID: "z2", Type: models.ZoneTextInput, Points: 3, CorrectAnswer: "nucleus"},
		}, nil)
		res := ScoreWorksheet(agg, models.ResponseSet{
			"z1": {Text: "chloroplast"},
			"z2": {Text: "nucleus"},
		})
		if res.Correct != 3 || res.Total != 4 {
			t.Errorf("Expected 3/4 points, got %d/%d", res.Correct, res.Total)
		}
		if res.Score != 8 {
			t.Errorf("Expected score 8, got %d", res.Score)
		}
	})

	t.Run("EmptyAnswerKeyAcceptsAnyText", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "z1", Type: models.ZoneTextInput, Points: 1},
		}, nil)

		res := ScoreWorksheet(agg, models.ResponseSet{"z1": {Text: "anything"}})
		if res.Score != MaxScore {
			t.Errorf("Expected any non-empty answer accepted, got score %d", res.Score)
		}

		res = ScoreWorksheet(agg, models.ResponseSet{"z1": {}})
		if res.Score != 0 {
			t.Errorf("Expected an empty answer to stay incorrect, got score %d", res.Score)
		}
	})

	t.Run("TextComparisonIsCaseSensitive", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "z1", Type: models.ZoneTextInput, Points: 1, CorrectAnswer: "Paris"},
		}, nil)
		res := ScoreWorksheet(agg, models.ResponseSet{"z1": {Text: "paris"}})
		if res.Score != 0 {
			t.Errorf("Expected case-sensitive comparison, got score %d", res.Score)
		}
	})

	t.Run("DropZone", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "z1", Type: models.ZoneDropZone, Points: 1, CorrectAnswer: "item-1"},
		}, []models.DraggableItem{{ID: "item-1", Content: "heart"}})

		res := ScoreWorksheet(agg, models.ResponseSet{"z1": {DroppedItemID: "item-1"}})
		if res.Score != MaxScore {
			t.Errorf("Expected matching drop to score, got %d", res.Score)
		}

		res = ScoreWorksheet(agg, models.ResponseSet{"z1": {DroppedItemID: "item-2"}})
		if res.Score != 0 {
			t.Errorf("Expected mismatched drop to stay incorrect, got %d", res.Score)
		}
	})

	t.Run("DanglingDropReferenceNeverThrows", func(t *testing.T) {
		// Answer key points at a draggable item that was removed.
		agg := worksheet([]models.InteractiveZone{
			{ID: "z1", Type: models.ZoneDropZone, Points: 1, CorrectAnswer: "item-gone"},
		}, nil)
		res := ScoreWorksheet(agg, models.ResponseSet{"z1": {DroppedItemID: "item-gone"}})
		if res.Score != 0 {
			t.Errorf("Expected a dangling reference to score incorrect, got %d", res.Score)
		}
		if len(res.Items) != 1 || !res.Items[0].StaleReference {
			t.Error("Expected the item to be marked as a stale reference")
		}
	})

	t.Run("Selectable", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "z1", Type: models.ZoneSelectable, Points: 1, IsCorrect: true},
			{ID: "z2", Type: models.ZoneSelectable, Points: 1, IsCorrect: false},
		}, nil)

		// Selecting the right zone and leaving the wrong one alone is full marks.
		res := ScoreWorksheet(agg, models.ResponseSet{"z1": {Selected: true}})
		if res.Score != MaxScore {
			t.Errorf("Expected full score, got %d", res.Score)
		}

		// Selecting a zone not meant to be selected loses its points.
		res = ScoreWorksheet(agg, models.ResponseSet{"z1": {Selected: true}, "z2": {Selected: true}})
		if res.Correct != 1 {
			t.Errorf("Expected 1 point, got %d", res.Correct)
		}
	})

	t.Run("MatchPair", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "src", Type: models.ZoneMatchSource, Points: 1, MatchID: "capitals"},
			{ID: "tgt", Type: models.ZoneMatchTarget, Points: 1, MatchID: "capitals"},
		}, nil)

		res := ScoreWorksheet(agg, models.ResponseSet{"src": {ConnectedTo: []string{"tgt"}}})
		if res.Correct != 2 || res.Score != MaxScore {
			t.Errorf("Expected both pair zones to score, got %d points score %d", res.Correct, res.Score)
		}

		res = ScoreWorksheet(agg, models.ResponseSet{})
		if res.Correct != 0 {
			t.Errorf("Expected an unconnected pair to score nothing, got %d", res.Correct)
		}
	})

	t.Run("PartialPairConnectionIsIncorrect", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "src", Type: models.ZoneMatchSource, Points: 1, MatchID: "organs"},
			{ID: "t1", Type: models.ZoneMatchTarget, Points: 1, MatchID: "organs"},
			{ID: "t2", Type: models.ZoneMatchTarget, Points: 1, MatchID: "organs"},
		}, nil)
		res := ScoreWorksheet(agg, models.ResponseSet{"src": {ConnectedTo: []string{"t1"}}})
		if res.Correct != 0 {
			t.Errorf("Expected a half-connected pair to score nothing, got %d", res.Correct)
		}
	})

	t.Run("UnpairedMatchLabelIsStale", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "src", Type: models.ZoneMatchSource, Points: 1, MatchID: "orphan"},
		}, nil)
		res := ScoreWorksheet(agg, models.ResponseSet{"src": {ConnectedTo: []string{"nothing"}}})
		if res.Correct != 0 {
			t.Errorf("Expected an unpaired label to score nothing, got %d", res.Correct)
		}
		if len(res.Items) != 1 || !res.Items[0].StaleReference {
			t.Error("Expected the unpaired label to be marked stale")
		}
	})

	t.Run("OrphanedResponseFlagsInconsistent", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "z1", Type: models.ZoneTextInput, Points: 1},
		}, nil)
		res := ScoreWorksheet(agg, models.ResponseSet{
			"z1":   {Text: "kept"},
			"gone": {Text: "orphan"},
		})
		if !res.Inconsistent {
			t.Error("Expected the orphaned response to flag the result")
		}
		if res.Score != MaxScore {
			t.Errorf("Expected the surviving zone to still score, got %d", res.Score)
		}
	})

	t.Run("NoZonesScoresZero", func(t *testing.T) {
		res := ScoreWorksheet(worksheet(nil, nil), models.ResponseSet{})
		if res.Score != 0 || res.Total != 0 {
			t.Errorf("Expected zero result, got score %d total %d", res.Score, res.Total)
		}
	})
}

func TestScore(t *testing.T) {
	t.Run("StrippedAggregateFailsClosed", func(t *testing.T) {
		stripped := &models.ContentAggregate{Kind: models.ContentQuiz, HasContent: true}
		_, err := Score(stripped, &models.SubmissionRecord{})
		if !errors.Is(err, ErrStrippedContent) {
			t.Errorf("Expected ErrStrippedContent, got %v", err)
		}
	})

	t.Run("NilAggregate", func(t *testing.T) {
		_, err := Score(nil, &models.SubmissionRecord{})
		if !errors.Is(err, ErrNoContent) {
			t.Errorf("Expected ErrNoContent, got %v", err)
		}
	})

	t.Run("RoutesTeacherJudgedQuizToEvaluation", func(t *testing.T) {
		agg := &models.ContentAggregate{
			Kind:           models.ContentQuiz,
			HasContent:     true,
			ForTeacherOnly: true,
			Questions:      quizQuestions(2),
		}
		sub := &models.SubmissionRecord{
			Responses: models.ResponseSet{"a": {SelectedOption: intPtr(1)}},
			Judgments: models.JudgmentSet{"a": true, "b": true},
		}
		res, err := Score(agg, sub)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if res.Score != MaxScore {
			t.Errorf("Expected judgments to decide the score, got %d", res.Score)
		}
	})

	t.Run("ScoreAlwaysWithinScale", func(t *testing.T) {
		agg := worksheet([]models.InteractiveZone{
			{ID: "z1", Type: models.ZoneTextInput, Points: 7, CorrectAnswer: "a"},
			{ID: "z2", Type: models.ZoneDropZone, Points: 2, CorrectAnswer: "missing"},
			{ID: "z3", Type: "LEGACY_TYPE", Points: 5},
		}, nil)
		res, err := Score(agg, &models.SubmissionRecord{Responses: models.ResponseSet{
			"z1": {Text: "a"},
			"z2": {DroppedItemID: "missing"},
		}})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if res.Score < 0 || res.Score > MaxScore {
			t.Errorf("Expected score within [0, %d], got %d", MaxScore, res.Score)
		}
	})
}
