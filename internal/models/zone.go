package models

import (
	"math"

	"github.com/google/uuid"
)

type ZoneType string

const (
	ZoneTextInput   ZoneType = "TEXT_INPUT"
	ZoneDropZone    ZoneType = "DROP_ZONE"
	ZoneSelectable  ZoneType = "SELECTABLE"
	ZoneMatchSource ZoneType = "MATCH_SOURCE"
	ZoneMatchTarget ZoneType = "MATCH_TARGET"
)

// MinZoneWidthPercent is the smallest drawn width (as % of the image width)
// that still produces a zone. Anything narrower is treated as an accidental
// click and discarded.
const MinZoneWidthPercent = 2.0

// InteractiveZone is one spatial, gradeable region anchored over a worksheet
// image. Coordinates and sizes are percentages of the image bounding box.
type InteractiveZone struct {
	ID            string   `json:"id" validate:"required"`
	Type          ZoneType `json:"type" validate:"required,zone_type"`
	X             float64  `json:"x" validate:"min=0,max=100"`
	Y             float64  `json:"y" validate:"min=0,max=100"`
	Width         float64  `json:"width" validate:"min=0,max=100"`
	Height        float64  `json:"height" validate:"min=0,max=100"`
	Points        int      `json:"points" validate:"min=1"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	IsCorrect     bool     `json:"is_correct,omitempty"`
	MatchID       string   `json:"match_id,omitempty"`
}

// DraggableItem is a labeled token referenced by DROP_ZONE answers. It is
// owned by the same aggregate as the zones that reference it; deleting one
// does not cascade to those zones.
type DraggableItem struct {
	ID      string  `json:"id" validate:"required"`
	Type    string  `json:"type"`
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// Point is a position on the normalized image plane, in percentages.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewZoneFromRect builds a zone from two drawn corner points. The zone's
// origin is the per-axis minimum and its size the absolute difference, all
// clamped to [0, 100]. Returns false when the drawn width is below
// MinZoneWidthPercent; no zone is produced in that case.
//
// New zones start as TEXT_INPUT with points = 1 and an empty answer key;
// the authoring flow retypes and fills them in afterwards.
func NewZoneFromRect(p1, p2 Point) (InteractiveZone, bool) {
	width := math.Abs(p1.X - p2.X)
	if width < MinZoneWidthPercent {
		return InteractiveZone{}, false
	}

	return InteractiveZone{
		ID:     uuid.NewString(),
		Type:   ZoneTextInput,
		X:      clampPercent(math.Min(p1.X, p2.X)),
		Y:      clampPercent(math.Min(p1.Y, p2.Y)),
		Width:  clampPercent(width),
		Height: clampPercent(math.Abs(p1.Y - p2.Y)),
		Points: 1,
	}, true
}

// Retyped returns a copy of the zone with its type changed. Switching into a
// match role without an existing match label assigns a non-empty default so
// the zone is immediately visualizable as paired-or-not. Other zones' labels
// are never touched.
func (z InteractiveZone) Retyped(t ZoneType) InteractiveZone {
	z.Type = t
	if (t == ZoneMatchSource || t == ZoneMatchTarget) && z.MatchID == "" {
		z.MatchID = "pair-" + z.ID
	}
	return z
}

// IsMatch reports whether the zone participates in match pairing.
func (z InteractiveZone) IsMatch() bool {
	return z.Type == ZoneMatchSource || z.Type == ZoneMatchTarget
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
