// Package progression derives the run stage from the score.
package progression

import "github.com/vovakirdan/tui-snake/internal/events"

// Tracker holds the current stage of a run. Stages start at 1 and never
// decrease.
type Tracker struct {
	pointsPerStage int
	current        int
}

// NewTracker creates a tracker at stage 1. pointsPerStage must be positive.
func NewTracker(pointsPerStage int) *Tracker {
	return &Tracker{pointsPerStage: max(1, pointsPerStage), current: 1}
}

// Stage returns the current stage.
func (t *Tracker) Stage() int {
	return t.current
}

// StageForScore returns max(1, score/pointsPerStage + 1).
func (t *Tracker) StageForScore(score int) int {
	return max(1, score/t.pointsPerStage+1)
}

// UpdateFromScore advances to the stage matching score. One StageAdvanced
// event is emitted per stage crossed, in ascending order, each carrying
// the score passed in. Reports whether the stage changed.
func (t *Tracker) UpdateFromScore(score int, emit events.Emitter) bool {
	target := t.StageForScore(score)
	if target <= t.current {
		return false
	}
	for stage := t.current + 1; stage <= target; stage++ {
		t.current = stage
		if emit != nil {
			emit.Emit(events.New(events.StageAdvanced, "stage", stage, "score", score))
		}
	}
	return true
}

// Reset returns the tracker to stage 1.
func (t *Tracker) Reset() {
	t.current = 1
}
