package scoring

import "github.com/aulalink/activity-service/internal/models"

// zoneStrategy grades one zone type. Strategies receive the worksheet
// context so reference checks (draggable items, match pairs) stay cheap.
type zoneStrategy interface {
	grade(z models.InteractiveZone, r models.Response, ok bool, ctx *worksheetContext) (correct, stale bool)
}

// worksheetContext is derived once per scoring pass.
type worksheetContext struct {
	items     map[string]struct{}            // draggable item ids
	targets   map[string][]string            // matchId -> target zone ids
	connected map[string]map[string]struct{} // matchId -> target zone ids the student connected
}

var zoneStrategies = map[models.ZoneType]zoneStrategy{
	models.ZoneTextInput:   textInputStrategy{},
	models.ZoneDropZone:    dropZoneStrategy{},
	models.ZoneSelectable:  selectableStrategy{},
	models.ZoneMatchSource: matchStrategy{},
	models.ZoneMatchTarget: matchStrategy{},
}

// ScoreWorksheet grades a worksheet submission: each zone is graded by its
// type's strategy, correct zone points are summed against total zone points,
// and the ratio is scaled onto [0, 10]. Result.Correct and Result.Total are
// point sums here, not item counts.
//
// Dangling references never throw. A DROP_ZONE whose answer key points at a
// removed draggable item, or a match label with no counterpart zone, scores
// as "no answer accepted" and counts as incorrect.
func ScoreWorksheet(agg *models.ContentAggregate, responses models.ResponseSet) Result {
	res := Result{Total: agg.TotalZonePoints()}
	if res.Total == 0 {
		return res
	}

	ctx := newWorksheetContext(agg, responses)
	known := make(map[string]struct{}, len(agg.InteractiveZones))

	for _, z := range agg.InteractiveZones {
		known[z.ID] = struct{}{}
		r, ok := responses[z.ID]

		strategy, found := zoneStrategies[z.Type]
		if !found {
			// Unknown zone type: unresolvable, counts as incorrect.
			res.Items = append(res.Items, ItemResult{ID: z.ID, Points: z.Points, StaleReference: true})
			continue
		}

		correct, stale := strategy.grade(z, r, ok, ctx)
		if correct {
			res.Correct += z.Points
		}
		res.Items = append(res.Items, ItemResult{ID: z.ID, Correct: correct, Points: z.Points, StaleReference: stale})
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

func newWorksheetContext(agg *models.ContentAggregate, responses models.ResponseSet) *worksheetContext {
	ctx := &worksheetContext{
		items:     make(map[string]struct{}, len(agg.DraggableItems)),
		targets:   make(map[string][]string),
		connected: make(map[string]map[string]struct{}),
	}
	for _, it := range agg.DraggableItems {
		ctx.items[it.ID] = struct{}{}
	}
	for _, z := range agg.InteractiveZones {
		if z.Type == models.ZoneMatchTarget && z.MatchID != "" {
			ctx.targets[z.MatchID] = append(ctx.targets[z.MatchID], z.ID)
		}
	}
	for _, z := range agg.InteractiveZones {
		if z.Type != models.ZoneMatchSource || z.MatchID == "" {
			continue
		}
		r, ok := responses[z.ID]
		if !ok {
			continue
		}
		set := ctx.connected[z.MatchID]
		if set == nil {
			set = make(map[string]struct{})
			ctx.connected[z.MatchID] = set
		}
		for _, target := range r.ConnectedTo {
			set[target] = struct{}{}
		}
	}
	return ctx
}

// pairComplete reports whether every target sharing the label was connected
// by a source. Partial connection is incorrect for the whole pair; a label
// with no targets at all is a dangling reference.
func (ctx *worksheetContext) pairComplete(matchID string) (complete, stale bool) {
	targets := ctx.targets[matchID]
	if len(targets) == 0 {
		return false, true
	}
	connected := ctx.connected[matchID]
	for _, id := range targets {
		if _, ok := connected[id]; !ok {
			return false, false
		}
	}
	return true, false
}

type textInputStrategy struct{}

func (textInputStrategy) grade(z models.InteractiveZone, r models.Response, ok bool, _ *worksheetContext) (bool, bool) {
	if !ok || r.Text == "" {
		return false, false
	}
	// Empty answer key means any answer is accepted.
	if z.CorrectAnswer == "" {
		return true, false
	}
	// Case-sensitive, by contract.
	return r.Text == z.CorrectAnswer, false
}

type dropZoneStrategy struct{}

func (dropZoneStrategy) grade(z models.InteractiveZone, r models.Response, ok bool, ctx *worksheetContext) (bool, bool) {
	if !ok || r.DroppedItemID == "" {
		return false, false
	}
	if z.CorrectAnswer == "" {
		return true, false
	}
	// An answer key pointing at a removed item accepts nothing.
	if _, exists := ctx.items[z.CorrectAnswer]; !exists {
		return false, true
	}
	return r.DroppedItemID == z.CorrectAnswer, false
}

type selectableStrategy struct{}

func (selectableStrategy) grade(z models.InteractiveZone, r models.Response, _ bool, _ *worksheetContext) (bool, bool) {
	// An untouched zone has toggle state false, which is correct exactly
	// when the zone was not meant to be selected.
	return r.Selected == z.IsCorrect, false
}

type matchStrategy struct{}

func (matchStrategy) grade(z models.InteractiveZone, _ models.Response, _ bool, ctx *worksheetContext) (bool, bool) {
	if z.MatchID == "" {
		return false, true
	}
	return ctx.pairComplete(z.MatchID)
}
