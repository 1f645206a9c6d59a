package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/gridiron/internal/config"
	"github.com/vovakirdan/gridiron/internal/core"
	"github.com/vovakirdan/gridiron/internal/registry"
)

type callerFunc func(core.Situation) core.PlayCall

func (f callerFunc) Call(s core.Situation) core.PlayCall { return f(s) }

type simFunc func(core.PlayCall, core.Situation) core.PlayOutcome

func (f simFunc) Simulate(c core.PlayCall, s core.Situation) core.PlayOutcome { return f(c, s) }

// queue replays scripted outcomes in order; the call is the kind of the next one.
type queue struct {
	outcomes []core.PlayOutcome
}

func (q *queue) Call(core.Situation) core.PlayCall {
	if len(q.outcomes) == 0 {
		return core.PlayCall{Kind: core.KindRush}
	}
	return core.PlayCall{Kind: q.outcomes[0].Kind()}
}

func (q *queue) Simulate(core.PlayCall, core.Situation) core.PlayOutcome {
	o := q.outcomes[0]
	q.outcomes = q.outcomes[1:]
	return o
}

// marcher runs for a fixed gain on every down, converts every try and
// kicks every kickoff through the end zone. It punts on fourth down.
func marcher(gain int) (callerFunc, simFunc) {
	caller := func(s core.Situation) core.PlayCall {
		if s.Mode == core.ModeScrimmage && s.Downs.Down == 4 {
			return core.PlayCall{Kind: core.KindPunt}
		}
		return core.PlayCall{Kind: core.KindRush}
	}
	sim := func(c core.PlayCall, s core.Situation) core.PlayOutcome {
		switch c.Kind {
		case core.KindKickoff:
			return core.PlayOutcome{Result: core.Kickoff{Result: core.KickEndZoneDirect}, Elapsed: 5 * time.Second}
		case core.KindTry:
			return core.PlayOutcome{Result: core.Try{Good: true}}
		case core.KindPunt:
			return core.PlayOutcome{Result: core.Punt{Distance: 40, Result: core.PuntFairCatch}, Elapsed: 8 * time.Second}
		default:
			return core.PlayOutcome{Result: core.Rush{Yards: gain}, Elapsed: 30 * time.Second}
		}
	}
	return caller, sim
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Penalties.Enabled = false
	return cfg
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(
		registry.TeamIdentity{ID: 1, Abbreviation: "BOS"},
		registry.TeamIdentity{ID: 2, Abbreviation: "CHI"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func newEngine(t *testing.T, cfg config.Config, caller PlayCaller, sim PlaySimulator) *Engine {
	t.Helper()
	e, err := New(Deps{Registry: testRegistry(t), Caller: caller, Simulator: sim}, cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

// atScrimmage puts the engine mid-drive for team.
func atScrimmage(t *testing.T, e *Engine, team core.TeamHandle, line int, d core.DownState) {
	t.Helper()
	e.state = core.GameState{
		Quarter:    2,
		Clock:      8 * time.Minute,
		Possession: team,
		Field:      core.NewFieldPosition(team, line),
		Downs:      d,
		Mode:       core.ModeScrimmage,
	}
	if _, err := e.drives.Start(team, e.state.Field, 2, e.state.Clock); err != nil {
		t.Fatal(err)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Deps{}, testConfig()); err == nil {
		t.Error("expected error without registry, caller and simulator")
	}

	cfg := testConfig()
	cfg.Rules.Quarters = 0
	caller, sim := marcher(4)
	if _, err := New(Deps{Registry: testRegistry(t), Caller: caller, Simulator: sim}, cfg); err == nil {
		t.Error("expected error for invalid config")
	}
}

// Fourth and 3 from the own 35 gains 2. The ball changes hands at the
// current spot, the 37, which is the other team's 63.
func TestTurnoverOnDowns(t *testing.T) {
	q := &queue{outcomes: []core.PlayOutcome{{Result: core.Rush{Yards: 2}, Elapsed: 6 * time.Second}}}
	e := newEngine(t, testConfig(), q, q)
	atScrimmage(t, e, core.Home, 35, core.DownState{Down: 4, ToGo: 3})

	if err := e.play(); err != nil {
		t.Fatalf("play() failed: %v", err)
	}

	s := e.State()
	if s.Possession != core.Away || s.Field.Attacking() != core.Away || s.Field.YardLine != 63 {
		t.Errorf("state = %s at %v", s.Possession, s.Field)
	}
	if s.Downs != (core.DownState{Down: 1, ToGo: 10}) {
		t.Errorf("Downs = %v", s.Downs)
	}

	res := e.plays[0]
	if !res.TurnoverOnDowns || !res.PossessionChanged || res.Status != core.StatusTurnover {
		t.Errorf("result = %+v", res)
	}

	drives := e.drives.Drives()
	if len(drives) != 1 || drives[0].Reason != core.EndTurnoverOnDowns {
		t.Fatalf("drives = %+v", drives)
	}
	if cur := e.drives.Current(); cur == nil || cur.Team != core.Away || cur.Start.YardLine != 63 {
		t.Errorf("current drive = %+v", cur)
	}
}

func TestHoldingWipesOutTouchdown(t *testing.T) {
	holding := core.Penalty{Type: core.OffensiveHolding, Phase: core.PhaseDuringPlay, Against: core.Home, Yards: 10}
	q := &queue{outcomes: []core.PlayOutcome{
		core.PlayOutcome{Result: core.Pass{Result: core.PassComplete, Yards: 12}, Elapsed: 6 * time.Second}.WithPenalty(holding),
	}}
	e := newEngine(t, testConfig(), q, q)
	atScrimmage(t, e, core.Home, 92, core.DownState{Down: 2, ToGo: 8, GoalToGo: true})

	if err := e.play(); err != nil {
		t.Fatalf("play() failed: %v", err)
	}

	res := e.plays[0]
	if res.Score != nil || res.ScoreDelta != (core.Score{}) || res.Event != core.BoundaryNone {
		t.Errorf("holding should cancel the score: %+v", res)
	}
	if res.Status != core.StatusContinuing || res.PossessionChanged {
		t.Errorf("status %s, possession changed %v", res.Status, res.PossessionChanged)
	}

	s := e.State()
	if s.Score != (core.Score{}) || s.Mode != core.ModeScrimmage || s.Possession != core.Home {
		t.Errorf("state: score %+v mode %s possession %s", s.Score, s.Mode, s.Possession)
	}
	if s.Field.YardLine != 82 {
		t.Errorf("YardLine = %d, expected 82 (enforced from the line)", s.Field.YardLine)
	}
	if s.Downs != (core.DownState{Down: 2, ToGo: 18, GoalToGo: true}) {
		t.Errorf("Downs = %v, expected 2nd and goal from the 18", s.Downs)
	}
}

func TestTouchdownTryAndKickoff(t *testing.T) {
	q := &queue{outcomes: []core.PlayOutcome{
		{Result: core.Pass{Result: core.PassComplete, Yards: 9}, Elapsed: 7 * time.Second},
		{Result: core.Try{Good: true}},
		{Result: core.Kickoff{Result: core.KickLandingZoneThenEndZone}, Elapsed: 4 * time.Second},
	}}
	e := newEngine(t, testConfig(), q, q)
	atScrimmage(t, e, core.Away, 93, core.DownState{Down: 1, ToGo: 7, GoalToGo: true})

	if err := e.play(); err != nil {
		t.Fatalf("touchdown: %v", err)
	}
	s := e.State()
	if s.Score != (core.Score{Away: 6}) || s.Mode != core.ModeTry || s.Possession != core.Away {
		t.Fatalf("after touchdown: score %+v mode %s possession %s", s.Score, s.Mode, s.Possession)
	}
	if ds := e.drives.Drives(); len(ds) != 1 || ds[0].Reason != core.EndScore || ds[0].Points() != 6 {
		t.Errorf("drives = %+v", ds)
	}

	if err := e.play(); err != nil {
		t.Fatalf("try: %v", err)
	}
	s = e.State()
	if s.Score != (core.Score{Away: 7}) || s.Mode != core.ModeKickoff || s.Possession != core.Neutral {
		t.Fatalf("after try: score %+v mode %s possession %s", s.Score, s.Mode, s.Possession)
	}
	if s.Field.Attacking() != core.Away || s.Field.YardLine != 35 {
		t.Errorf("kickoff spot = %v", s.Field)
	}

	if err := e.play(); err != nil {
		t.Fatalf("kickoff: %v", err)
	}
	s = e.State()
	if s.Possession != core.Home || s.Field.YardLine != core.KickoffTouchbackLandingZone || s.Mode != core.ModeScrimmage {
		t.Errorf("after kickoff: %s at %v in %s", s.Possession, s.Field, s.Mode)
	}
	if cur := e.drives.Current(); cur == nil || cur.Team != core.Home {
		t.Errorf("current drive = %+v", cur)
	}
}

func TestSafetyLeadsToFreeKick(t *testing.T) {
	q := &queue{outcomes: []core.PlayOutcome{
		{Result: core.Rush{Yards: -3}, Elapsed: 5 * time.Second},
	}}
	e := newEngine(t, testConfig(), q, q)
	atScrimmage(t, e, core.Home, 2, core.DownState{Down: 2, ToGo: 8})

	if err := e.play(); err != nil {
		t.Fatalf("play() failed: %v", err)
	}

	s := e.State()
	if s.Score != (core.Score{Away: 2}) {
		t.Errorf("Score = %+v", s.Score)
	}
	if s.Mode != core.ModeFreeKick || s.Possession != core.Neutral {
		t.Errorf("mode %s possession %s", s.Mode, s.Possession)
	}
	if s.Field.Attacking() != core.Home || s.Field.YardLine != 20 {
		t.Errorf("free kick spot = %v", s.Field)
	}
	if res := e.plays[0]; res.Event != core.BoundarySafety || res.Score.Team != core.Away {
		t.Errorf("result = %+v", res)
	}
}

func TestKickoffTouchbackStartsDrive(t *testing.T) {
	q := &queue{outcomes: []core.PlayOutcome{
		{Result: core.Kickoff{Result: core.KickEndZoneDirect}, Elapsed: 4 * time.Second},
	}}
	e := newEngine(t, testConfig(), q, q)
	e.state = core.GameState{Quarter: 1, Clock: 15 * time.Minute}
	if err := e.applicator.PrepareFreeKick(&e.state, core.Home, core.ModeKickoff); err != nil {
		t.Fatal(err)
	}

	if err := e.play(); err != nil {
		t.Fatalf("play() failed: %v", err)
	}

	s := e.State()
	if s.Possession != core.Away || s.Field.YardLine != core.KickoffTouchbackEndZone {
		t.Errorf("state = %s at %v", s.Possession, s.Field)
	}
	if s.Downs != (core.DownState{Down: 1, ToGo: 10}) {
		t.Errorf("Downs = %v", s.Downs)
	}
	if res := e.plays[0]; res.Status != core.StatusFreeKick || res.Offense != core.Home {
		t.Errorf("result = %+v", res)
	}
}

func TestPreSnapFoulReplaysDown(t *testing.T) {
	cfg := config.Default()
	cfg.Penalties.BaseRates = config.PhaseRates{PreSnap: 1}
	cfg.Penalties.OffenseShare = config.PhaseRates{PreSnap: 1}

	sim := simFunc(func(core.PlayCall, core.Situation) core.PlayOutcome {
		t.Fatal("simulator called for a dead-ball foul")
		return core.PlayOutcome{}
	})
	caller, _ := marcher(0)
	e := newEngine(t, cfg, caller, sim)
	atScrimmage(t, e, core.Home, 35, core.DownState{Down: 1, ToGo: 10})

	if err := e.play(); err != nil {
		t.Fatalf("play() failed: %v", err)
	}

	s := e.State()
	if s.Field.YardLine != 30 || s.Downs != (core.DownState{Down: 1, ToGo: 15}) {
		t.Errorf("state = %v %v", s.Field, s.Downs)
	}
	if s.Clock != 8*time.Minute {
		t.Errorf("Clock = %v, a dead-ball foul should not run time", s.Clock)
	}
	res := e.plays[0]
	if res.Kind != core.KindNoPlay || len(res.Penalties) != 1 || res.Penalties[0].Against != core.Home {
		t.Errorf("result = %+v", res)
	}
}

func TestSimulatorWrongKindHaltsGame(t *testing.T) {
	sim := simFunc(func(core.PlayCall, core.Situation) core.PlayOutcome {
		return core.PlayOutcome{Result: core.Rush{Yards: 3}}
	})
	caller, _ := marcher(0)
	e := newEngine(t, testConfig(), caller, sim)

	_, err := e.Run(context.Background())

	var pe *core.PlayError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *core.PlayError, got %v", err)
	}
	if pe.Index != 1 || pe.Component != "simulator" {
		t.Errorf("PlayError = %+v", pe)
	}
	if len(e.plays) != 0 {
		t.Errorf("%d plays committed", len(e.plays))
	}
}

func TestCallerKickOnScrimmageDown(t *testing.T) {
	_, sim := marcher(0)
	caller := callerFunc(func(s core.Situation) core.PlayCall {
		return core.PlayCall{Kind: core.KindKickoff}
	})
	e := newEngine(t, testConfig(), caller, sim)

	_, err := e.Run(context.Background())

	var pe *core.PlayError
	if !errors.As(err, &pe) || pe.Component != "play caller" || pe.Index != 2 {
		t.Fatalf("err = %v", err)
	}
}

func TestRunTwice(t *testing.T) {
	caller, sim := marcher(0)
	cfg := testConfig()
	cfg.Rules.QuarterLength = time.Minute
	cfg.Rules.Overtime.Enabled = false
	e := newEngine(t, cfg, caller, sim)

	if _, err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Run(context.Background()); !errors.Is(err, ErrAlreadyRun) {
		t.Errorf("err = %v, want ErrAlreadyRun", err)
	}
}

func TestPlayLimit(t *testing.T) {
	caller, sim := marcher(0)
	cfg := testConfig()
	cfg.Rules.MaxPlays = 5
	e := newEngine(t, cfg, caller, sim)

	_, err := e.Run(context.Background())
	if !errors.Is(err, ErrPlayLimit) {
		t.Fatalf("err = %v, want ErrPlayLimit", err)
	}
	if len(e.plays) != 5 {
		t.Errorf("%d plays committed", len(e.plays))
	}
}

type cancelSink struct {
	after  int
	seen   int
	cancel context.CancelFunc
}

func (c *cancelSink) RecordPlay(core.GameStateResult, core.PlayOutcome) {
	c.seen++
	if c.seen == c.after {
		c.cancel()
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	caller, sim := marcher(4)
	sink := &cancelSink{after: 10, cancel: cancel}
	e, err := New(Deps{Registry: testRegistry(t), Caller: caller, Simulator: sim, Sinks: []Sink{sink}}, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(e.plays) != 10 || e.State().PlayIndex != 10 {
		t.Errorf("plays = %d, index = %d", len(e.plays), e.State().PlayIndex)
	}
}

func TestFullGame(t *testing.T) {
	caller, sim := marcher(4)
	e := newEngine(t, testConfig(), caller, sim)

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	var total core.Score
	for i, p := range res.Plays {
		if p.Index != i+1 {
			t.Fatalf("play %d has index %d", i+1, p.Index)
		}
		total.Home += p.ScoreDelta.Home
		total.Away += p.ScoreDelta.Away
	}
	if total != res.Final {
		t.Errorf("score deltas sum to %+v, final is %+v", total, res.Final)
	}
	if res.Final.Home == 0 && res.Final.Away == 0 {
		t.Error("a four-yard-per-carry offense should score")
	}
	if res.Periods < 4 {
		t.Errorf("Periods = %d", res.Periods)
	}

	switch {
	case res.Final.Home > res.Final.Away && res.Winner != core.Home,
		res.Final.Away > res.Final.Home && res.Winner != core.Away,
		res.Final.Home == res.Final.Away && res.Winner != core.Neutral:
		t.Errorf("winner %s for %+v", res.Winner, res.Final)
	}

	for _, d := range res.Drives {
		if d.State != core.DriveEnded || d.Reason == core.EndNone {
			t.Errorf("drive %d not closed: %+v", d.Number, d)
		}
	}
	if e.drives.Current() != nil {
		t.Error("open drive after the final whistle")
	}
}

func TestScorelessGame(t *testing.T) {
	tests := []struct {
		name     string
		overtime bool
		periods  int
	}{
		{name: "overtime tie", overtime: true, periods: 5},
		{name: "no overtime", overtime: false, periods: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Rules.QuarterLength = 3 * time.Minute
			cfg.Rules.Overtime.Enabled = tt.overtime
			cfg.Rules.Overtime.PeriodLength = 3 * time.Minute

			caller, sim := marcher(0)
			e := newEngine(t, cfg, caller, sim)

			res, err := e.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			if res.Final != (core.Score{}) || res.Winner != core.Neutral {
				t.Errorf("final %+v winner %s", res.Final, res.Winner)
			}
			if res.Periods != tt.periods || res.Overtime != tt.overtime {
				t.Errorf("periods %d overtime %v", res.Periods, res.Overtime)
			}
		})
	}
}

func TestOvertimeOpeningTouchdownWins(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.QuarterLength = 3 * time.Minute
	cfg.Rules.Overtime.PeriodLength = 5 * time.Minute

	caller, regulation := marcher(0)
	_, extra := marcher(25)
	sim := simFunc(func(c core.PlayCall, s core.Situation) core.PlayOutcome {
		if s.Overtime {
			return extra(c, s)
		}
		return regulation(c, s)
	})
	e := newEngine(t, cfg, caller, sim)

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	last := res.Plays[len(res.Plays)-1]
	if last.Score == nil || last.Score.Kind != core.ScoreTouchdown {
		t.Fatalf("game should end on the touchdown, last play %+v", last)
	}
	if res.Winner != last.Score.Team || !res.Overtime || res.Periods != 5 {
		t.Errorf("winner %s overtime %v periods %d", res.Winner, res.Overtime, res.Periods)
	}
	if res.Final.Home+res.Final.Away != 6 {
		t.Errorf("final %+v, want the touchdown without a try", res.Final)
	}
}

func TestOvertimeOpeningKickoffReturnWins(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.QuarterLength = 3 * time.Minute
	cfg.Rules.Overtime.PeriodLength = 5 * time.Minute

	caller, regulation := marcher(0)
	sim := simFunc(func(c core.PlayCall, s core.Situation) core.PlayOutcome {
		if s.Overtime && c.Kind == core.KindKickoff {
			return core.PlayOutcome{Result: core.Kickoff{Result: core.KickReturned, ReturnSpot: 100}, Elapsed: 12 * time.Second}
		}
		return regulation(c, s)
	})
	e := newEngine(t, cfg, caller, sim)

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	last := res.Plays[len(res.Plays)-1]
	if last.Kind != core.KindKickoff || last.Score == nil || last.Score.Kind != core.ScoreTouchdown {
		t.Fatalf("game should end on the return touchdown, last play %+v", last)
	}

	overtimePlays := 0
	for _, p := range res.Plays {
		if p.Quarter > cfg.Rules.Quarters {
			overtimePlays++
		}
	}
	if overtimePlays != 1 {
		t.Errorf("overtime plays = %d, want only the opening kickoff", overtimePlays)
	}
	if res.Winner != last.Score.Team || !res.Overtime {
		t.Errorf("winner %s overtime %v", res.Winner, res.Overtime)
	}
	if res.Final.Home+res.Final.Away != 6 {
		t.Errorf("final %+v, want the touchdown without a try", res.Final)
	}
}

func TestOpeningScoreDecides(t *testing.T) {
	ended := func(reason core.EndReason, score *core.ScoreEvent) core.Drive {
		return core.Drive{
			Team:   core.Home,
			Reason: reason,
			Plays:  []core.GameStateResult{{Score: score}},
		}
	}

	tests := []struct {
		name  string
		drive core.Drive
		want  bool
	}{
		{"touchdown", ended(core.EndScore, &core.ScoreEvent{Team: core.Home, Kind: core.ScoreTouchdown}), true},
		{"field goal", ended(core.EndScore, &core.ScoreEvent{Team: core.Home, Kind: core.ScoreFieldGoal}), false},
		{"safety by the defense", ended(core.EndScore, &core.ScoreEvent{Team: core.Away, Kind: core.ScoreSafety}), true},
		{"return touchdown", ended(core.EndTurnover, &core.ScoreEvent{Team: core.Away, Kind: core.ScoreTouchdown}), true},
		{"punt", ended(core.EndPunt, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := openingScoreDecides(tt.drive); got != tt.want {
				t.Errorf("openingScoreDecides() = %v, want %v", got, tt.want)
			}
		})
	}

	o := overtime{active: true, possessions: make(map[core.TeamHandle]int)}
	o.record(ended(core.EndScore, &core.ScoreEvent{Team: core.Home, Kind: core.ScoreFieldGoal}))
	if o.suddenDeath(true) {
		t.Error("opening field goal should not start sudden death")
	}
	o.record(core.Drive{Team: core.Away, Reason: core.EndPunt})
	if !o.suddenDeath(true) {
		t.Error("sudden death after both teams possessed")
	}

	kick := overtime{active: true, possessions: make(map[core.TeamHandle]int)}
	kick.kickScored(nil)
	if kick.suddenDeath(true) {
		t.Error("a kickoff without a score should not start sudden death")
	}
	kick.kickScored(&core.ScoreEvent{Team: core.Away, Kind: core.ScoreTouchdown})
	if !kick.suddenDeath(true) {
		t.Error("opening kickoff return touchdown should decide the game")
	}
}

type recordingPersister struct {
	drives int
	games  []GameResult
	err    error
}

func (p *recordingPersister) SaveDrive(string, core.Drive) error {
	p.drives++
	return p.err
}

func (p *recordingPersister) SaveGame(res GameResult) error {
	p.games = append(p.games, res)
	return p.err
}

func TestPersisterFailureDoesNotHalt(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.QuarterLength = 2 * time.Minute
	cfg.Rules.Overtime.Enabled = false

	p := &recordingPersister{err: errors.New("disk full")}
	caller, sim := marcher(0)
	e, err := New(Deps{Registry: testRegistry(t), Caller: caller, Simulator: sim, Persister: p, GameID: "g-1"}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.ID != "g-1" || len(p.games) != 1 || p.games[0].ID != "g-1" {
		t.Errorf("saved games = %+v", p.games)
	}
	if p.drives != len(res.Drives) {
		t.Errorf("saved %d drives, game has %d", p.drives, len(res.Drives))
	}
}
