package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func sampleWorksheet() *ContentAggregate {
	return &ContentAggregate{
		Kind:       ContentWorksheet,
		HasContent: true,
		ImageURL:   "https://cdn.example.com/cells.png",
		InteractiveZones: []InteractiveZone{
			{ID: "z1", Type: ZoneTextInput, X: 10, Y: 10, Width: 20, Height: 5, Points: 1, CorrectAnswer: "nucleus"},
			{ID: "z2", Type: ZoneDropZone, X: 40, Y: 10, Width: 20, Height: 5, Points: 2, CorrectAnswer: "item-1"},
		},
		DraggableItems: []DraggableItem{
			{ID: "item-1", Type: "text", Content: "mitochondria", Width: 12},
		},
	}
}

func TestContentAggregateJSONRoundTrip(t *testing.T) {
	cases := map[string]*ContentAggregate{
		"worksheet": sampleWorksheet(),
		"quiz": {
			Kind:       ContentQuiz,
			HasContent: true,
			VideoURL:   "https://video.example.com/intro",
			Questions: []QuizQuestion{
				{ID: "q1", Text: "2+2?", Options: []string{"3", "4"}, CorrectIndex: 1, Points: 1},
			},
		},
		"teacher judged": {
			Kind:           ContentQuiz,
			HasContent:     true,
			ForTeacherOnly: true,
			Questions: []QuizQuestion{
				{ID: "q1", Text: "Reads fluently", Options: []string{"no", "yes"}, CorrectIndex: 1, Points: 1},
			},
		},
	}

	for name, agg := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(agg)
			if err != nil {
				t.Fatalf("Expected marshal to succeed, got %v", err)
			}
			var decoded ContentAggregate
			if err := json.Unmarshal(raw, &decoded); err != nil {
				t.Fatalf("Expected unmarshal to succeed, got %v", err)
			}
			if !reflect.DeepEqual(*agg, decoded) {
				t.Errorf("Round trip changed the aggregate:\n before %+v\n after  %+v", *agg, decoded)
			}
		})
	}
}

func TestIsStripped(t *testing.T) {
	t.Run("StrippedQuiz", func(t *testing.T) {
		agg := &ContentAggregate{Kind: ContentQuiz, HasContent: true}
		if !agg.IsStripped() {
			t.Error("Expected a quiz without questions but HasContent to read as stripped")
		}
	})

	t.Run("StrippedWorksheet", func(t *testing.T) {
		agg := sampleWorksheet().Stripped()
		if !agg.IsStripped() {
			t.Error("Expected the stripped form to read as stripped")
		}
		if agg.ImageURL == "" {
			t.Error("Expected stripping to preserve metadata")
		}
	})

	t.Run("FullAggregateIsNotStripped", func(t *testing.T) {
		if sampleWorksheet().IsStripped() {
			t.Error("Expected a full worksheet to not read as stripped")
		}
	})

	t.Run("EmptyAggregateIsNotStripped", func(t *testing.T) {
		agg := &ContentAggregate{Kind: ContentQuiz}
		if agg.IsStripped() {
			t.Error("Expected an aggregate without HasContent to not read as stripped")
		}
	})

	t.Run("NilAggregateIsNotStripped", func(t *testing.T) {
		var agg *ContentAggregate
		if agg.IsStripped() {
			t.Error("Expected nil to not read as stripped")
		}
	})
}

func TestAggregateUpdatesAreImmutable(t *testing.T) {
	t.Run("WithZoneReplacesById", func(t *testing.T) {
		agg := sampleWorksheet()
		updated := agg.WithZone(InteractiveZone{ID: "z1", Type: ZoneTextInput, Points: 5, CorrectAnswer: "membrane"})
		if agg.InteractiveZones[0].Points != 1 {
			t.Error("Expected the original aggregate to be untouched")
		}
		if updated.InteractiveZones[0].Points != 5 {
			t.Errorf("Expected the zone to be replaced in place, got %+v", updated.InteractiveZones[0])
		}
		if len(updated.InteractiveZones) != 2 {
			t.Errorf("Expected zone count to stay 2, got %d", len(updated.InteractiveZones))
		}
	})

	t.Run("WithZoneAppendsNewId", func(t *testing.T) {
		agg := sampleWorksheet()
		updated := agg.WithZone(InteractiveZone{ID: "z3", Type: ZoneSelectable, Points: 1})
		if len(updated.InteractiveZones) != 3 {
			t.Errorf("Expected 3 zones, got %d", len(updated.InteractiveZones))
		}
		if len(agg.InteractiveZones) != 2 {
			t.Error("Expected the original aggregate to be untouched")
		}
	})

	t.Run("WithoutZone", func(t *testing.T) {
		agg := sampleWorksheet()
		updated := agg.WithoutZone("z1")
		if len(updated.InteractiveZones) != 1 || updated.InteractiveZones[0].ID != "z2" {
			t.Errorf("Expected only z2 to survive, got %+v", updated.InteractiveZones)
		}
	})

	t.Run("WithoutDraggableItemLeavesAnswersDangling", func(t *testing.T) {
		agg := sampleWorksheet()
		updated := agg.WithoutDraggableItem("item-1")
		if len(updated.DraggableItems) != 0 {
			t.Errorf("Expected the item to be removed, got %+v", updated.DraggableItems)
		}
		// The drop zone's answer key still names the removed item; scoring
		// resolves that, deletion does not.
		if updated.InteractiveZones[1].CorrectAnswer != "item-1" {
			t.Error("Expected the referencing answer key to be left untouched")
		}
	})
}

func TestTotalZonePoints(t *testing.T) {
	agg := sampleWorksheet()
	if got := agg.TotalZonePoints(); got != 3 {
		t.Errorf("Expected 3 points, got %d", got)
	}
}
