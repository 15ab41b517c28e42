package models

import (
	"testing"
)

func TestNewZoneFromRect(t *testing.T) {
	t.Run("NormalizesCorners", func(t *testing.T) {
		zone, ok := NewZoneFromRect(Point{X: 30, Y: 60}, Point{X: 10, Y: 20})
		if !ok {
			t.Fatal("Expected a zone to be produced")
		}
		if zone.X != 10 || zone.Y != 20 {
			t.Errorf("Expected origin (10, 20), got (%v, %v)", zone.X, zone.Y)
		}
		if zone.Width != 20 || zone.Height != 40 {
			t.Errorf("Expected size (20, 40), got (%v, %v)", zone.Width, zone.Height)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		zone, ok := NewZoneFromRect(Point{X: 0, Y: 0}, Point{X: 50, Y: 50})
		if !ok {
			t.Fatal("Expected a zone to be produced")
		}
		if zone.Type != ZoneTextInput {
			t.Errorf("Expected default type TEXT_INPUT, got %s", zone.Type)
		}
		if zone.Points != 1 {
			t.Errorf("Expected default points 1, got %d", zone.Points)
		}
		if zone.CorrectAnswer != "" {
			t.Errorf("Expected empty answer key, got %q", zone.CorrectAnswer)
		}
		if zone.ID == "" {
			t.Error("Expected a generated zone id")
		}
	})

	t.Run("DiscardsNarrowRect", func(t *testing.T) {
		if _, ok := NewZoneFromRect(Point{X: 10, Y: 10}, Point{X: 11.5, Y: 80}); ok {
			t.Error("Expected a rect narrower than 2% to be discarded")
		}
	})

	t.Run("ClampsToPercentRange", func(t *testing.T) {
		zone, ok := NewZoneFromRect(Point{X: -20, Y: -5}, Point{X: 130, Y: 110})
		if !ok {
			t.Fatal("Expected a zone to be produced")
		}
		for name, v := range map[string]float64{
			"x": zone.X, "y": zone.Y, "width": zone.Width, "height": zone.Height,
		} {
			if v < 0 || v > 100 {
				t.Errorf("Expected %s in [0, 100], got %v", name, v)
			}
		}
	})
}

func TestRetyped(t *testing.T) {
	zone, _ := NewZoneFromRect(Point{X: 0, Y: 0}, Point{X: 10, Y: 10})

	t.Run("MatchRoleGetsDefaultLabel", func(t *testing.T) {
		source := zone.Retyped(ZoneMatchSource)
		if source.MatchID == "" {
			t.Error("Expected a non-empty default match label")
		}

		target := zone.Retyped(ZoneMatchTarget)
		if target.MatchID == "" {
			t.Error("Expected a non-empty default match label")
		}
	})

	t.Run("ExistingLabelPreserved", func(t *testing.T) {
		z := zone
		z.MatchID = "animals"
		if got := z.Retyped(ZoneMatchTarget).MatchID; got != "animals" {
			t.Errorf("Expected existing label to be preserved, got %q", got)
		}
	})

	t.Run("NonMatchRoleDoesNotAssignLabel", func(t *testing.T) {
		if got := zone.Retyped(ZoneSelectable).MatchID; got != "" {
			t.Errorf("Expected no label for SELECTABLE, got %q", got)
		}
	})

	t.Run("OriginalUnchanged", func(t *testing.T) {
		_ = zone.Retyped(ZoneMatchSource)
		if zone.Type != ZoneTextInput || zone.MatchID != "" {
			t.Error("Retyped must not mutate the receiver")
		}
	})
}
