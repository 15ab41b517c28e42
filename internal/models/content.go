package models

type ContentKind string

const (
	ContentQuiz      ContentKind = "QUIZ"
	ContentWorksheet ContentKind = "WORKSHEET"
)

// QuizQuestion is a multiple-choice question with a single correct option.
type QuizQuestion struct {
	ID           string   `json:"id" validate:"required"`
	Text         string   `json:"text" validate:"required"`
	Options      []string `json:"options" validate:"min=2"`
	CorrectIndex int      `json:"correct_index" validate:"min=0"`
	Points       int      `json:"points" validate:"min=1"`
}

// ContentAggregate is the interactive payload attached to an activity: a
// quiz (ordered questions) or a worksheet (background image plus zones and
// draggable items). Kind discriminates the union; every consumer switches
// on it exhaustively.
//
// The aggregate may travel in stripped form for list views: HasContent set
// with the kind-specific content arrays omitted. A stripped aggregate must
// be upgraded to its full form before grading or editing (see
// services.ContentLoader).
type ContentAggregate struct {
	Kind       ContentKind `json:"kind" validate:"required,content_kind"`
	HasContent bool        `json:"has_content"`
	VideoURL   string      `json:"video_url,omitempty"`

	// QUIZ fields
	Questions      []QuizQuestion `json:"questions,omitempty" validate:"omitempty,dive"`
	ForTeacherOnly bool           `json:"for_teacher_only,omitempty"`

	// WORKSHEET fields
	ImageURL         string            `json:"image_url,omitempty"`
	GradingCriteria  string            `json:"grading_criteria,omitempty"`
	InteractiveZones []InteractiveZone `json:"interactive_zones,omitempty" validate:"omitempty,dive"`
	DraggableItems   []DraggableItem   `json:"draggable_items,omitempty" validate:"omitempty,dive"`
}

// IsStripped reports whether the aggregate is the lightweight shell: content
// advertised but the kind-specific array absent. A nil aggregate and an
// aggregate without HasContent are not stripped, they simply carry nothing.
func (c *ContentAggregate) IsStripped() bool {
	if c == nil || !c.HasContent {
		return false
	}
	switch c.Kind {
	case ContentQuiz:
		return c.Questions == nil
	case ContentWorksheet:
		return c.InteractiveZones == nil
	}
	return false
}

// Stripped returns the list-view form of the aggregate: metadata preserved,
// content arrays dropped, HasContent set so readers know a full form exists.
func (c *ContentAggregate) Stripped() *ContentAggregate {
	if c == nil {
		return nil
	}
	s := *c
	s.HasContent = true
	s.Questions = nil
	s.InteractiveZones = nil
	s.DraggableItems = nil
	return &s
}

// ZoneIndex returns the worksheet's zones keyed by id. Updates go through
// WithZone/WithoutZone rather than in-place mutation so stale references
// stay detectable.
func (c *ContentAggregate) ZoneIndex() map[string]InteractiveZone {
	idx := make(map[string]InteractiveZone, len(c.InteractiveZones))
	for _, z := range c.InteractiveZones {
		idx[z.ID] = z
	}
	return idx
}

// WithZone returns a copy of the aggregate with the zone inserted, or
// replaced when a zone with the same id already exists. Order of existing
// zones is preserved.
func (c *ContentAggregate) WithZone(z InteractiveZone) *ContentAggregate {
	out := *c
	out.InteractiveZones = make([]InteractiveZone, 0, len(c.InteractiveZones)+1)
	replaced := false
	for _, existing := range c.InteractiveZones {
		if existing.ID == z.ID {
			out.InteractiveZones = append(out.InteractiveZones, z)
			replaced = true
			continue
		}
		out.InteractiveZones = append(out.InteractiveZones, existing)
	}
	if !replaced {
		out.InteractiveZones = append(out.InteractiveZones, z)
	}
	return &out
}

// WithoutZone returns a copy of the aggregate with the zone removed. Removal
// does not cascade into match labels or drop answers that referenced the
// zone; dangling references are resolved at scoring time.
func (c *ContentAggregate) WithoutZone(zoneID string) *ContentAggregate {
	out := *c
	out.InteractiveZones = make([]InteractiveZone, 0, len(c.InteractiveZones))
	for _, z := range c.InteractiveZones {
		if z.ID != zoneID {
			out.InteractiveZones = append(out.InteractiveZones, z)
		}
	}
	return &out
}

// WithoutDraggableItem returns a copy with the item removed. DROP_ZONE
// answers referencing the item are left untouched; they score as "no answer
// accepted" from then on.
func (c *ContentAggregate) WithoutDraggableItem(itemID string) *ContentAggregate {
	out := *c
	out.DraggableItems = make([]DraggableItem, 0, len(c.DraggableItems))
	for _, it := range c.DraggableItems {
		if it.ID != itemID {
			out.DraggableItems = append(out.DraggableItems, it)
		}
	}
	return &out
}

// TotalZonePoints sums the point weight of every zone.
func (c *ContentAggregate) TotalZonePoints() int {
	total := 0
	for _, z := range c.InteractiveZones {
		total += z.Points
	}
	return total
}
