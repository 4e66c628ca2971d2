// Package session runs one player's games: it owns the simulation state,
// the event bus and every system that reacts to it, and records each
// finished run exactly once.
package session

import (
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/events"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/persist"
	"github.com/vovakirdan/tui-snake/internal/powerups"
	"github.com/vovakirdan/tui-snake/internal/progression"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	bannerSeconds = 1.2

	flashStage    = 0.12
	flashPickup   = 0.16
	flashAbsorbed = 0.18
	shakePickup   = 0.08
	shakeAbsorbed = 0.12
)

// Options wires a session to its collaborators. Only Config and Data are
// required; a nil File or Store skips that kind of persistence.
type Options struct {
	Config config.GameConfig
	Data   *persist.PersistentData
	File   *persist.File
	Store  *storage.Store
	Player audio.Player
	Logger *log.Logger
	Seed   int64
}

// Result summarises a finished run.
type Result struct {
	RunID          string
	Score          int
	LeaderboardKey string
	Leaderboard    []int // bucket after recording, descending
	NewHighScore   bool
	Stage          int
	FoodEaten      int
	RunSeconds     float64
	DeathReason    game.DeathReason
	Unlocked       []string // achievements earned during the run
}

// Session is a single-player game loop. It is not safe for concurrent use;
// the front end calls Update and HandleAction from one goroutine.
type Session struct {
	cfg    config.GameConfig
	board  game.Config
	data   *persist.PersistentData
	file   *persist.File
	store  *storage.Store
	player audio.Player
	logger *log.Logger

	rng      *rand.Rand
	fx       *rand.Rand // visual effects only
	state    *game.State
	bus      *events.Bus
	router   *events.Router
	powerups *powerups.System
	stages   *progression.Tracker

	runID       string
	countdown   float64
	onboarding  bool
	recorded    bool
	bestAtStart int
	foodEaten   int
	runSeconds  float64
	unlocked    []string
	result      *Result

	banner      string
	bannerTimer float64
	flashTimer  float64
	shakeTimer  float64
	particles   []Particle
}

// New creates a session and starts its first run.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	data := opts.Data
	if data == nil {
		data = persist.Default()
	}
	player := opts.Player
	if player == nil {
		player = &audio.Silent{}
	}
	player.SetMuted(data.Settings.Muted)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		cfg:        opts.Config,
		board:      opts.Config.Board(),
		data:       data,
		file:       opts.File,
		store:      opts.Store,
		player:     player,
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)),
		fx:         rand.New(rand.NewSource(seed + 1)),
		bus:        events.NewBus(),
		powerups:   powerups.NewSystem(opts.Config.PowerUpConfig()),
		stages:     progression.NewTracker(opts.Config.Progression.StagePointsInterval),
		onboarding: !data.OnboardingSeen,
	}
	s.router = events.NewRouter(s.bus)
	s.registerHandlers()
	s.start()
	return s
}

func (s *Session) registerHandlers() {
	s.router.Register(events.HandlerFunc{Types: []events.Type{events.FoodEaten}, Fn: s.onFoodEaten})
	s.router.Register(events.HandlerFunc{Types: []events.Type{events.StepAdvanced}, Fn: s.onStepAdvanced})
	s.router.Register(events.HandlerFunc{Types: []events.Type{events.StageAdvanced}, Fn: s.onStageAdvanced})
	s.router.Register(events.HandlerFunc{Types: []events.Type{events.PlayerDied}, Fn: s.onPlayerDied})
	s.router.Register(events.HandlerFunc{Types: []events.Type{events.PowerupCollected}, Fn: s.onPowerupCollected})
	s.router.Register(audio.NewCueHandler(s.player))
	s.router.Register(newAchievements(s))
}

// setup derives the run setup from the saved settings.
func (s *Session) setup() game.Setup {
	st := s.data.Settings
	return s.cfg.Setup(st.Difficulty, st.MapMode, st.ObstaclesEnabled)
}

func (s *Session) start() {
	s.state = game.NewState(s.board, s.setup(), s.rng)
	s.bus.Drain()
	s.powerups.Reset()
	s.stages.Reset()
	s.runID = uuid.NewString()
	s.countdown = s.cfg.Timing.CountdownSeconds
	s.recorded = false
	s.bestAtStart = persist.BestScore(s.data, persist.LeaderboardKey(s.data.Settings))
	s.foodEaten = 0
	s.runSeconds = 0
	s.unlocked = nil
	s.banner, s.bannerTimer = "", 0
	s.flashTimer, s.shakeTimer = 0, 0
	s.particles = nil
}

// Restart begins a fresh run reseeded from the session's generator, so a
// seeded session replays the same sequence of runs.
func (s *Session) Restart() {
	s.rng = rand.New(rand.NewSource(s.rng.Int63()))
	s.start()
}

// Update advances the session by delta seconds of wall time.
func (s *Session) Update(delta float64) {
	delta = max(0, delta)
	s.tickEffects(delta)

	if s.onboarding || s.state.Status == game.StatusPaused {
		return
	}
	if s.state.Status == game.StatusGameOver {
		s.finish()
		return
	}
	if s.countdown > 0 {
		s.countdown = max(0, s.countdown-delta)
		return
	}

	s.runSeconds += delta
	s.powerups.Update(delta)
	game.AdvanceSimulation(s.state, s.board, delta, s.rng, s.powerups, s.bus)
	s.stages.UpdateFromScore(s.state.Score, s.bus)
	s.router.Dispatch()

	if s.state.Status == game.StatusGameOver {
		s.finish()
	}
}

func (s *Session) tickEffects(delta float64) {
	if s.data.Graphics.ReducedMotion {
		s.banner, s.bannerTimer = "", 0
		s.flashTimer, s.shakeTimer = 0, 0
		s.particles = nil
		return
	}
	s.updateParticles(delta)
	if s.bannerTimer > 0 {
		s.bannerTimer = max(0, s.bannerTimer-delta)
		if s.bannerTimer == 0 {
			s.banner = ""
		}
	}
	s.flashTimer = max(0, s.flashTimer-delta)
	s.shakeTimer = max(0, s.shakeTimer-delta)
}

// HandleAction applies one input intent. While the onboarding overlay is
// up, only Confirm and Pause do anything: they dismiss it.
func (s *Session) HandleAction(a core.Action) {
	if s.onboarding {
		if a == core.ActionConfirm || a == core.ActionPause {
			s.DismissOnboarding()
		}
		return
	}

	if dir, ok := a.Direction(); ok {
		game.QueueDirectionChange(s.state, dir)
		return
	}

	switch a {
	case core.ActionPause:
		if s.state.Status == game.StatusGameOver {
			return
		}
		game.TogglePause(s.state)
		s.player.Play(audio.CueConfirm)
	case core.ActionRestart, core.ActionConfirm:
		if s.state.Status == game.StatusGameOver {
			s.Restart()
		}
	}
}

// DismissOnboarding hides the help overlay and remembers that it was seen.
func (s *Session) DismissOnboarding() {
	if !s.onboarding {
		return
	}
	s.onboarding = false
	s.player.Play(audio.CueConfirm)
	if s.data.OnboardingSeen {
		return
	}
	s.data.OnboardingSeen = true
	s.save()
}

func (s *Session) onFoodEaten(ev events.Event) {
	s.foodEaten++
	s.spawnBurst(s.eventHead(ev), core.ColorFood, burstFood)
	s.powerups.TryToSpawn(s.rng, s.state.OccupiedCells(), s.state.Width, s.state.Height)
}

// eventHead reads the head cell from an event payload, falling back to the
// live head.
func (s *Session) eventHead(ev events.Event) core.Point {
	head := s.state.Head()
	return core.Point{X: ev.Int("head_x", head.X), Y: ev.Int("head_y", head.Y)}
}

func (s *Session) onStepAdvanced(ev events.Event) {
	head := s.eventHead(ev)
	collected := s.powerups.CollectAt(head)
	if collected == nil {
		return
	}
	s.bus.Emit(events.New(events.PowerupCollected,
		"powerup", collected.Type.String(),
		"duration_seconds", math.Round(collected.Remaining*10)/10,
	))
}

func (s *Session) onStageAdvanced(ev events.Event) {
	if s.data.Graphics.ReducedMotion {
		return
	}
	s.banner = "Stage " + strconv.Itoa(ev.Int("stage", s.stages.Stage()))
	s.bannerTimer = bannerSeconds
	s.flashTimer = max(s.flashTimer, flashStage)
}

func (s *Session) onPlayerDied(ev events.Event) {
	reason := game.DeathReason(ev.String("reason"))
	if !s.powerups.AbsorbFatalCollision(reason) {
		return
	}
	s.state.Revive()
	s.player.Play(audio.CueConfirm)
	s.unlock(AchievementSurvivor)
	if !s.data.Graphics.ReducedMotion {
		s.flashTimer = max(s.flashTimer, flashAbsorbed)
		s.shakeTimer = max(s.shakeTimer, shakeAbsorbed)
	}
}

func (s *Session) onPowerupCollected(ev events.Event) {
	s.logger.Debug("power-up collected",
		"run", s.runID,
		"powerup", ev.String("powerup"),
		"seconds", ev.Float("duration_seconds", 0),
	)
	if s.data.Graphics.ReducedMotion {
		return
	}
	s.flashTimer = max(s.flashTimer, flashPickup)
	s.shakeTimer = max(s.shakeTimer, shakePickup)
	s.spawnBurst(s.state.Head(), core.ColorPowerUp, burstPickup)
}

// finish records the ended run. Later calls for the same run do nothing.
func (s *Session) finish() {
	if s.recorded {
		return
	}
	s.recorded = true

	key := persist.LeaderboardKey(s.data.Settings)
	existing := append([]int(nil), s.data.Leaderboard[key]...)
	bucket := persist.RecordScore(s.data, key, s.state.Score, s.cfg.Leaderboard.Limit)
	persist.UpdateRunStats(s.data, s.state.Score)
	if s.state.DeathReason == game.DeathBoardFull {
		s.unlock(AchievementFullBoard)
	}

	s.result = &Result{
		RunID:          s.runID,
		Score:          s.state.Score,
		LeaderboardKey: key,
		Leaderboard:    bucket,
		NewHighScore:   persist.IsNewHighScore(existing, s.state.Score),
		Stage:          s.stages.Stage(),
		FoodEaten:      s.foodEaten,
		RunSeconds:     s.runSeconds,
		DeathReason:    s.state.DeathReason,
		Unlocked:       append([]string(nil), s.unlocked...),
	}

	s.save()
	s.saveRun(s.result)
	s.player.Play(audio.CueDeath)
	s.logger.Info("run finished",
		"run", s.runID,
		"key", key,
		"score", s.state.Score,
		"stage", s.result.Stage,
		"reason", string(s.state.DeathReason),
		"high", s.result.NewHighScore,
	)
}

func (s *Session) save() {
	if s.file == nil {
		return
	}
	if err := s.file.Save(s.data); err != nil {
		s.logger.Error("cannot save progress", "err", err)
	}
}

func (s *Session) saveRun(r *Result) {
	if s.store == nil {
		return
	}
	st := s.data.Settings
	_, err := s.store.SaveRun(storage.Run{
		RunID:          r.RunID,
		LeaderboardKey: r.LeaderboardKey,
		Difficulty:     st.Difficulty.String(),
		MapMode:        st.MapMode.String(),
		Obstacles:      st.ObstaclesEnabled,
		Score:          r.Score,
		Stage:          r.Stage,
		FoodEaten:      r.FoodEaten,
		Duration:       time.Duration(r.RunSeconds * float64(time.Second)),
		DeathReason:    string(r.DeathReason),
	})
	if err != nil {
		s.logger.Error("cannot record run history", "err", err)
	}
}

// State returns the live simulation state.
func (s *Session) State() *game.State { return s.state }

// PowerUps returns the live power-up system.
func (s *Session) PowerUps() *powerups.System { return s.powerups }

// Stage returns the current stage number.
func (s *Session) Stage() int { return s.stages.Stage() }

// Countdown returns the seconds left before the run starts moving.
func (s *Session) Countdown() float64 { return s.countdown }

// Particles returns the live burst particles.
func (s *Session) Particles() []Particle { return s.particles }

// OnboardingVisible reports whether the help overlay is up.
func (s *Session) OnboardingVisible() bool { return s.onboarding }

// BestScore is the best score for the current settings, counting this run.
func (s *Session) BestScore() int { return max(s.bestAtStart, s.state.Score) }

// RunID identifies the current run.
func (s *Session) RunID() string { return s.runID }

// RunSeconds is the time the current run has spent moving.
func (s *Session) RunSeconds() float64 { return s.runSeconds }

// FoodEaten counts food eaten in the current run.
func (s *Session) FoodEaten() int { return s.foodEaten }

// Banner returns the stage banner text while it is showing.
func (s *Session) Banner() (string, bool) { return s.banner, s.bannerTimer > 0 }

// Flashing reports whether a highlight flash is running.
func (s *Session) Flashing() bool { return s.flashTimer > 0 }

// Shaking reports whether the board should be jolted this frame.
func (s *Session) Shaking() bool {
	return s.shakeTimer > 0 && s.data.Graphics.ScreenShake
}

// Result returns the summary of the last finished run, or nil while the
// current run is still going.
func (s *Session) Result() *Result {
	if !s.recorded {
		return nil
	}
	return s.result
}

// Data returns the save record the session writes to.
func (s *Session) Data() *persist.PersistentData { return s.data }

// Config returns the game configuration.
func (s *Session) Config() config.GameConfig { return s.cfg }
