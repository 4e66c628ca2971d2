package session

import (
	"github.com/vovakirdan/tui-snake/internal/events"
	"github.com/vovakirdan/tui-snake/internal/persist"
)

// Achievement names stored in the save record.
const (
	AchievementFirstBite = "first_bite"
	AchievementStage5    = "stage_5"
	AchievementScore50   = "score_50"
	AchievementCollector = "collector"
	AchievementSurvivor  = "survivor"
	AchievementFullBoard = "full_board"
)

// Achievements lists every name in display order.
var Achievements = []string{
	AchievementFirstBite,
	AchievementStage5,
	AchievementScore50,
	AchievementCollector,
	AchievementSurvivor,
	AchievementFullBoard,
}

// achievements unlocks names from bus events. Survivor and full board are
// decided by the session itself since they depend on what it does with a
// death.
type achievements struct {
	s *Session
}

func newAchievements(s *Session) *achievements {
	return &achievements{s: s}
}

func (a *achievements) EventTypes() []events.Type {
	return []events.Type{events.FoodEaten, events.StageAdvanced, events.PowerupCollected}
}

func (a *achievements) HandleEvent(ev events.Event) {
	switch ev.Type {
	case events.FoodEaten:
		a.s.unlock(AchievementFirstBite)
		if ev.Int("score", 0) >= 50 {
			a.s.unlock(AchievementScore50)
		}
	case events.StageAdvanced:
		if ev.Int("stage", 0) >= 5 {
			a.s.unlock(AchievementStage5)
		}
	case events.PowerupCollected:
		a.s.unlock(AchievementCollector)
	}
}

// unlock records name in the save data and remembers it for the run result.
func (s *Session) unlock(name string) {
	if persist.UnlockAchievement(s.data, name) {
		s.unlocked = append(s.unlocked, name)
		s.logger.Debug("achievement unlocked", "name", name)
	}
}
