package session

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/persist"
	"github.com/vovakirdan/tui-snake/internal/powerups"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// step is one scheduler interval at the normal base rate plus a little slack.
const step = 0.13

type recorder struct {
	audio.Silent
	played []audio.Cue
}

func (r *recorder) Play(c audio.Cue) { r.played = append(r.played, c) }

func (r *recorder) count(c audio.Cue) int {
	n := 0
	for _, p := range r.played {
		if p == c {
			n++
		}
	}
	return n
}

func testConfig() config.GameConfig {
	cfg := config.Default()
	cfg.Grid.Width, cfg.Grid.Height = 8, 8
	cfg.Timing.CountdownSeconds = 0
	cfg.Obstacles.Count = 0
	cfg.PowerUps.SpawnChance = 0
	return cfg
}

type fixture struct {
	s      *Session
	player *recorder
	file   *persist.File
	store  *storage.Store
}

func newFixture(t *testing.T, cfg config.GameConfig, data *persist.PersistentData) fixture {
	t.Helper()
	dir := t.TempDir()
	file, err := persist.NewFile(filepath.Join(dir, "save.json"), cfg.Leaderboard.Limit, nil)
	if err != nil {
		t.Fatalf("NewFile() failed: %v", err)
	}
	store, err := storage.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if data == nil {
		data = persist.Default()
		data.OnboardingSeen = true
	}
	player := &recorder{}
	s := New(Options{Config: cfg, Data: data, File: file, Store: store, Player: player, Seed: 42})
	return fixture{s: s, player: player, file: file, store: store}
}

// place puts a three-cell snake heading right with its head at (hx, hy)
// and parks the food in the bottom-left corner.
func place(s *Session, hx, hy int) {
	st := s.State()
	st.Snake = []core.Point{{X: hx, Y: hy}, {X: hx - 1, Y: hy}, {X: hx - 2, Y: hy}}
	st.Direction = core.DirRight
	st.Pending = nil
	st.Food = core.Point{X: 0, Y: st.Height - 1}
}

func TestOnboardingGatesSimulation(t *testing.T) {
	data := persist.Default()
	f := newFixture(t, testConfig(), data)
	s := f.s

	if !s.OnboardingVisible() {
		t.Fatal("expected onboarding overlay on a fresh save")
	}
	head := s.State().Head()
	s.HandleAction(core.ActionUp)
	s.Update(1)
	if s.State().Head() != head || s.State().Pending != nil {
		t.Fatal("simulation moved behind the onboarding overlay")
	}

	s.HandleAction(core.ActionConfirm)
	if s.OnboardingVisible() {
		t.Fatal("confirm did not dismiss onboarding")
	}
	if f.player.count(audio.CueConfirm) != 1 {
		t.Errorf("confirm cues = %d, expected 1", f.player.count(audio.CueConfirm))
	}
	if !f.file.Load().OnboardingSeen {
		t.Error("onboarding_seen was not persisted")
	}
}

func TestOnboardingSkippedWhenSeen(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	if f.s.OnboardingVisible() {
		t.Fatal("onboarding shown although already seen")
	}
}

func TestCountdownHoldsRun(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.CountdownSeconds = 1
	f := newFixture(t, cfg, nil)
	s := f.s
	place(s, 4, 4)

	s.Update(0.6)
	s.Update(0.6)
	if s.State().Steps != 0 {
		t.Fatalf("steps during countdown = %d, expected 0", s.State().Steps)
	}
	if s.Countdown() != 0 {
		t.Fatalf("countdown = %v, expected 0", s.Countdown())
	}
	if s.RunSeconds() != 0 {
		t.Errorf("run seconds counted during countdown: %v", s.RunSeconds())
	}

	s.Update(step)
	if s.State().Steps != 1 {
		t.Fatalf("steps after countdown = %d, expected 1", s.State().Steps)
	}
}

func TestPauseToggle(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	s := f.s
	place(s, 4, 4)

	s.HandleAction(core.ActionPause)
	if s.State().Status != game.StatusPaused {
		t.Fatalf("status = %v, expected paused", s.State().Status)
	}
	s.Update(1)
	if s.State().Steps != 0 {
		t.Fatal("paused run advanced")
	}
	s.HandleAction(core.ActionPause)
	if s.State().Status != game.StatusRunning {
		t.Fatalf("status = %v, expected running", s.State().Status)
	}
	if f.player.count(audio.CueConfirm) != 2 {
		t.Errorf("confirm cues = %d, expected 2", f.player.count(audio.CueConfirm))
	}
}

func TestDirectionActionQueuesTurn(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	s := f.s
	place(s, 4, 4)

	s.HandleAction(core.ActionLeft)
	if s.State().Pending != nil {
		t.Fatal("reverse turn was queued")
	}
	s.HandleAction(core.ActionUp)
	s.Update(step)
	if got := s.State().Head(); got != (core.Point{X: 4, Y: 3}) {
		t.Fatalf("head = %v, expected (4,3)", got)
	}
}

func TestEatingFood(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	s := f.s
	place(s, 4, 4)
	s.State().Food = core.Point{X: 5, Y: 4}

	s.Update(step)
	if s.State().Score != 1 {
		t.Fatalf("score = %d, expected 1", s.State().Score)
	}
	if s.FoodEaten() != 1 {
		t.Errorf("food eaten = %d, expected 1", s.FoodEaten())
	}
	if f.player.count(audio.CueEat) != 1 {
		t.Errorf("eat cues = %d, expected 1", f.player.count(audio.CueEat))
	}
	if !s.Data().HasAchievement(AchievementFirstBite) {
		t.Error("first_bite not unlocked")
	}
	if s.BestScore() != 1 {
		t.Errorf("best score = %d, expected 1", s.BestScore())
	}
}

func TestGameOverRecordsOnce(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	s := f.s
	place(s, 6, 4)
	s.State().Food = core.Point{X: 7, Y: 4}

	s.Update(step) // eat at the edge
	s.Update(step) // into the wall
	if s.State().Status != game.StatusGameOver {
		t.Fatalf("status = %v, expected game over", s.State().Status)
	}

	r := s.Result()
	if r == nil {
		t.Fatal("no result after game over")
	}
	if r.Score != 1 || r.DeathReason != game.DeathWall || r.FoodEaten != 1 || r.Stage != 1 {
		t.Errorf("result = %+v", r)
	}
	if r.LeaderboardKey != "normal|bounded|clear" {
		t.Errorf("key = %q", r.LeaderboardKey)
	}
	if !reflect.DeepEqual(r.Leaderboard, []int{1}) {
		t.Errorf("leaderboard = %v, expected [1]", r.Leaderboard)
	}
	if !r.NewHighScore {
		t.Error("first positive score should be a new high score")
	}
	if r.RunID != s.RunID() || r.RunID == "" {
		t.Errorf("run id = %q, session run id = %q", r.RunID, s.RunID())
	}

	s.Update(step)
	s.Update(step)

	saved := f.file.Load()
	if saved.Stats.Runs != 1 || saved.Stats.BestScore != 1 {
		t.Errorf("saved stats = %+v, expected one run with best 1", saved.Stats)
	}
	if f.player.count(audio.CueDeath) != 1 {
		t.Errorf("death cues = %d, expected 1", f.player.count(audio.CueDeath))
	}

	runs, err := f.store.TopRuns(r.LeaderboardKey, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != r.RunID || runs[0].Score != 1 || runs[0].DeathReason != "wall" {
		t.Fatalf("stored runs = %+v", runs)
	}
}

func TestZeroScoreIsNotHighScore(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	s := f.s
	place(s, 7, 4)

	s.Update(step)
	r := s.Result()
	if r == nil {
		t.Fatal("no result after wall death")
	}
	if r.NewHighScore {
		t.Error("zero score reported as new high score")
	}
}

func TestShieldAbsorbsWallDeath(t *testing.T) {
	cfg := testConfig()
	cfg.PowerUps.SpawnChance = 1
	cfg.PowerUps.Enabled = []string{"shield"}
	f := newFixture(t, cfg, nil)
	s := f.s
	place(s, 4, 4)

	occupied := make(map[core.Point]struct{})
	for y := range 8 {
		for x := range 8 {
			occupied[core.Point{X: x, Y: y}] = struct{}{}
		}
	}
	delete(occupied, core.Point{X: 5, Y: 4})
	if sp := s.PowerUps().TryToSpawn(s.rng, occupied, 8, 8); sp == nil || sp.Type != powerups.Shield {
		t.Fatalf("spawned = %+v, expected a shield at (5,4)", sp)
	}

	s.Update(step) // (5,4), collects the shield
	if !s.PowerUps().IsActive(powerups.Shield) {
		t.Fatal("shield not active after pickup")
	}
	if n := len(s.Particles()); n != burstPickup {
		t.Errorf("particles after pickup = %d, expected %d", n, burstPickup)
	}
	if !s.Data().HasAchievement(AchievementCollector) {
		t.Error("collector not unlocked")
	}

	s.Update(step) // (6,4)
	s.Update(step) // (7,4)
	s.Update(step) // wall, absorbed
	if s.State().Status != game.StatusRunning {
		t.Fatalf("status = %v, expected running after absorption", s.State().Status)
	}
	if s.Result() != nil {
		t.Fatal("absorbed death was recorded")
	}
	if s.PowerUps().IsActive(powerups.Shield) {
		t.Fatal("shield not consumed")
	}
	if got := s.State().Head(); got != (core.Point{X: 7, Y: 4}) {
		t.Fatalf("head = %v, expected (7,4)", got)
	}

	s.Update(step) // wall again, no shield left
	r := s.Result()
	if r == nil {
		t.Fatal("second wall hit did not end the run")
	}
	want := map[string]bool{AchievementCollector: true, AchievementSurvivor: true}
	for _, name := range r.Unlocked {
		delete(want, name)
	}
	if len(want) != 0 {
		t.Errorf("unlocked = %v, missing %v", r.Unlocked, want)
	}
}

func TestStageBanner(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	s := f.s
	place(s, 4, 4)
	s.State().Score = 9
	s.State().Food = core.Point{X: 5, Y: 4}

	s.Update(step)
	if s.Stage() != 2 {
		t.Fatalf("stage = %d, expected 2", s.Stage())
	}
	text, ok := s.Banner()
	if !ok || text != "Stage 2" {
		t.Fatalf("banner = %q, %v", text, ok)
	}
	if f.player.count(audio.CueConfirm) != 1 {
		t.Errorf("confirm cues = %d, expected 1", f.player.count(audio.CueConfirm))
	}
}

func TestReducedMotionSuppressesEffects(t *testing.T) {
	data := persist.Default()
	data.OnboardingSeen = true
	data.Graphics.ReducedMotion = true
	f := newFixture(t, testConfig(), data)
	s := f.s
	place(s, 4, 4)
	s.State().Score = 9
	s.State().Food = core.Point{X: 5, Y: 4}

	s.Update(step)
	if _, ok := s.Banner(); ok {
		t.Error("banner shown with reduced motion")
	}
	if s.Flashing() || s.Shaking() {
		t.Error("flash or shake with reduced motion")
	}
}

func TestFoodBurstFollowsGraphicsSettings(t *testing.T) {
	tests := []struct {
		name          string
		particles     bool
		reducedMotion bool
		want          int
	}{
		{"enabled", true, false, burstFood},
		{"disabled", false, false, 0},
		{"reduced motion", true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := persist.Default()
			data.OnboardingSeen = true
			data.Graphics.Particles = tt.particles
			data.Graphics.ReducedMotion = tt.reducedMotion
			f := newFixture(t, testConfig(), data)
			s := f.s
			place(s, 4, 4)
			s.State().Food = core.Point{X: 5, Y: 4}

			s.Update(step)
			if s.State().Score != 1 {
				t.Fatalf("score = %d, expected 1", s.State().Score)
			}
			if n := len(s.Particles()); n != tt.want {
				t.Fatalf("particles = %d, expected %d", n, tt.want)
			}
			for _, p := range s.Particles() {
				if p.Cell() != (core.Point{X: 5, Y: 4}) {
					t.Errorf("particle starts at %v, expected the eaten cell", p.Cell())
				}
				if p.Life < burstMinLife || p.Life > burstMaxLife {
					t.Errorf("life = %v, outside [%v, %v]", p.Life, burstMinLife, burstMaxLife)
				}
				if p.Color != core.ColorFood {
					t.Errorf("color = %v, expected food", p.Color)
				}
			}
		})
	}
}

func TestParticlesAgeOut(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	s := f.s
	place(s, 4, 4)
	s.State().Food = core.Point{X: 5, Y: 4}

	s.Update(step)
	if len(s.Particles()) == 0 {
		t.Fatal("no burst on food")
	}
	start := s.Particles()[0]

	s.HandleAction(core.ActionPause)
	s.Update(0.1)
	if len(s.Particles()) != burstFood {
		t.Fatalf("particles = %d, expected all %d alive after 0.1s", len(s.Particles()), burstFood)
	}
	moved := s.Particles()[0]
	if moved.Life >= start.Life || (moved.X == start.X && moved.Y == start.Y) {
		t.Errorf("particle did not advance: %+v -> %+v", start, moved)
	}

	s.Update(burstMaxLife)
	if n := len(s.Particles()); n != 0 {
		t.Errorf("particles = %d, expected none past max life", n)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	f := newFixture(t, testConfig(), nil)
	s := f.s
	place(s, 7, 4)
	s.Update(step)
	first := s.Result()
	if first == nil {
		t.Fatal("run did not end")
	}

	s.HandleAction(core.ActionUp)
	if s.State().Status != game.StatusGameOver {
		t.Fatal("direction input changed a finished run")
	}
	s.HandleAction(core.ActionRestart)
	if s.State().Status != game.StatusRunning || s.State().Score != 0 {
		t.Fatalf("restart state = %v score %d", s.State().Status, s.State().Score)
	}
	if s.Result() != nil {
		t.Error("result kept after restart")
	}
	if s.RunID() == first.RunID {
		t.Error("restart reused the run id")
	}
	if s.Stage() != 1 || s.FoodEaten() != 0 {
		t.Errorf("stage %d food %d after restart", s.Stage(), s.FoodEaten())
	}
}

func TestSessionsAreDeterministic(t *testing.T) {
	run := func() game.Snapshot {
		f := newFixture(t, testConfig(), nil)
		s := f.s
		turns := []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight}
		for i := range 40 {
			if i%3 == 0 {
				s.HandleAction(turns[(i/3)%len(turns)])
			}
			s.Update(1.0 / 60)
			s.Update(1.0 / 30)
		}
		return s.State().Snapshot()
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestMutedSettingReachesPlayer(t *testing.T) {
	data := persist.Default()
	data.OnboardingSeen = true
	data.Settings.Muted = true
	f := newFixture(t, testConfig(), data)
	if !f.player.Muted() {
		t.Fatal("player not muted from settings")
	}
}
