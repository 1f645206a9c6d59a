package metrics

import (
	"sync"
	"time"

	"github.com/vovakirdan/gridiron/internal/core"
)

// Recorder counts plays, scores, penalties and finished games. It is an
// engine sink and is safe to share between concurrently running games.
type Recorder struct {
	mu        sync.Mutex
	plays     map[core.OutcomeKind]int
	scores    map[core.ScoreKind]int
	penalties map[core.PenaltyType]int
	games     int
	halted    int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		plays:     make(map[core.OutcomeKind]int),
		scores:    make(map[core.ScoreKind]int),
		penalties: make(map[core.PenaltyType]int),
		otel:      otel,
	}
}

// RecordPlay counts a committed play.
func (r *Recorder) RecordPlay(res core.GameStateResult, _ core.PlayOutcome) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.plays[res.Kind]++
	if res.Score != nil {
		r.scores[res.Score.Kind]++
	}
	for _, p := range res.Penalties {
		r.penalties[p.Type]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPlay(res)
	}
}

// RecordGame counts a finished or halted game and its wall-clock duration.
func (r *Recorder) RecordGame(duration time.Duration, plays int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.games++
	if err != nil {
		r.halted++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordGame(duration, plays, err)
	}
}

// Snapshot is a copy of the recorder's counters.
type Snapshot struct {
	Plays     map[core.OutcomeKind]int
	Scores    map[core.ScoreKind]int
	Penalties map[core.PenaltyType]int
	Games     int
	Halted    int
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Plays:     make(map[core.OutcomeKind]int, len(r.plays)),
		Scores:    make(map[core.ScoreKind]int, len(r.scores)),
		Penalties: make(map[core.PenaltyType]int, len(r.penalties)),
		Games:     r.games,
		Halted:    r.halted,
	}
	for k, v := range r.plays {
		s.Plays[k] = v
	}
	for k, v := range r.scores {
		s.Scores[k] = v
	}
	for k, v := range r.penalties {
		s.Penalties[k] = v
	}
	return s
}
