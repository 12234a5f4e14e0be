// simulation/simulation.go
package simulation

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
	practicesession "github.com/factdojo/backend/internal/domain/practice_session"
	"github.com/factdojo/backend/internal/domain/scoring"
	"github.com/factdojo/backend/internal/worker"
)

// Config describes one tuning run: a population of virtual learners, each
// practicing Rounds sessions planned by the real planner and scored by the
// real updater.
type Config struct {
	Learners      int
	Rounds        int
	SessionSize   int
	Range         fact.Range
	Policy        scoring.Policy
	InitialRecall float64 // chance a learner knows an unpracticed fact
	LearnRate     float64 // share of the remaining gap closed per attempt
	Seed          int64
	Workers       int
}

// DefaultConfig is a class of 20 learners doing 30 ten-problem sessions.
func DefaultConfig() Config {
	return Config{
		Learners:      20,
		Rounds:        30,
		SessionSize:   practicesession.DefaultSessionSize,
		Range:         fact.DrillRange,
		Policy:        scoring.DefaultPolicy(),
		InitialRecall: 0.3,
		LearnRate:     0.15,
		Seed:          1,
		Workers:       4,
	}
}

func (c Config) validate() error {
	switch {
	case c.Learners < 1:
		return errors.New("simulation: learners must be positive")
	case c.Rounds < 1:
		return errors.New("simulation: rounds must be positive")
	case c.SessionSize < 1:
		return errors.New("simulation: session size must be positive")
	case !c.Range.Valid() || !fact.TableRange.Contains(c.Range.Min) || !fact.TableRange.Contains(c.Range.Max):
		return errors.New("simulation: range must lie within 1..10")
	case c.InitialRecall < 0 || c.InitialRecall > 1:
		return errors.New("simulation: initial recall must lie in [0,1]")
	case c.LearnRate < 0 || c.LearnRate > 1:
		return errors.New("simulation: learn rate must lie in [0,1]")
	}
	return c.Policy.Validate()
}

// RoundStats is the population average after one round.
type RoundStats struct {
	Round     int
	Mastered  float64
	Learning  float64
	Gaps      float64
	MeanScore float64
	Accuracy  float64
}

// Result is the output of Run.
type Result struct {
	Total  int // distinct facts in the range
	Rounds []RoundStats
}

// RoundsToMastery returns the first round where the average learner has at
// least share of the facts MASTERED, or -1 if it never happens.
func (r Result) RoundsToMastery(share float64) int {
	if r.Total == 0 {
		return -1
	}
	for _, rs := range r.Rounds {
		if rs.Mastered/float64(r.Total) >= share {
			return rs.Round
		}
	}
	return -1
}

// learner is a virtual student. Each fact has a hidden recall probability
// that grows with practice; fluent facts are answered fast.
type learner struct {
	rng       *rand.Rand
	recall    map[fact.Fact]float64
	initial   float64
	learnRate float64
}

func (l *learner) answer(f fact.Fact, threshold time.Duration) (scoring.Outcome, time.Duration) {
	p, ok := l.recall[f]
	if !ok {
		p = l.initial
	}

	var outcome scoring.Outcome
	var rt time.Duration
	switch {
	case l.rng.Float64() >= p:
		outcome, rt = scoring.Wrong, threshold
	case l.rng.Float64() < p:
		outcome, rt = scoring.Correct, threshold/2
	default:
		outcome, rt = scoring.Correct, threshold+threshold/2
	}

	// Wrong attempts teach half as much as right ones.
	rate := l.learnRate
	if outcome == scoring.Wrong {
		rate /= 2
	}
	l.recall[f] = p + (1-p)*rate
	return outcome, rt
}

type learnerRun struct {
	rounds []RoundStats
	err    error
}

// Run simulates every learner on the worker pool and averages their rounds.
func Run(cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	updater, err := scoring.NewUpdater(cfg.Policy)
	if err != nil {
		return Result{}, err
	}

	pool := worker.NewPool[learnerRun](cfg.Workers, cfg.Learners)
	for i := 0; i < cfg.Learners; i++ {
		seed := cfg.Seed + int64(i)
		pool.Submit(strconv.Itoa(i), func() learnerRun {
			return simulateLearner(cfg, updater, seed)
		})
	}
	pool.Close()

	runs := make([][]RoundStats, cfg.Learners)
	for res := range pool.Results() {
		if res.Output.err != nil {
			return Result{}, fmt.Errorf("learner %s: %w", res.JobID, res.Output.err)
		}
		i, _ := strconv.Atoi(res.JobID)
		runs[i] = res.Output.rounds
	}

	// Summed in learner order so float totals do not depend on scheduling.
	result := Result{
		Total:  cfg.Range.Count(),
		Rounds: make([]RoundStats, cfg.Rounds),
	}
	for _, rounds := range runs {
		for i, rs := range rounds {
			sum := &result.Rounds[i]
			sum.Mastered += rs.Mastered
			sum.Learning += rs.Learning
			sum.Gaps += rs.Gaps
			sum.MeanScore += rs.MeanScore
			sum.Accuracy += rs.Accuracy
		}
	}

	n := float64(cfg.Learners)
	for i := range result.Rounds {
		rs := &result.Rounds[i]
		rs.Round = i + 1
		rs.Mastered /= n
		rs.Learning /= n
		rs.Gaps /= n
		rs.MeanScore /= n
		rs.Accuracy /= n
	}
	return result, nil
}

func simulateLearner(cfg Config, updater *scoring.Updater, seed int64) learnerRun {
	l := &learner{
		rng:       rand.New(rand.NewSource(seed)),
		recall:    make(map[fact.Fact]float64),
		initial:   cfg.InitialRecall,
		learnRate: cfg.LearnRate,
	}
	store := mastery.NewStore(nil)
	planner := practicesession.NewPlanner(seed)
	sessionCfg := practicesession.SessionConfig{
		SessionSize:       cfg.SessionSize,
		MissingSlotPolicy: practicesession.SlotNone,
		Range:             cfg.Range,
	}

	rounds := make([]RoundStats, 0, cfg.Rounds)
	for round := 1; round <= cfg.Rounds; round++ {
		problems := planner.Build(store, sessionCfg)

		results := make([]scoring.Result, 0, len(problems))
		for _, p := range problems {
			outcome, rt := l.answer(p.Fact, cfg.Policy.FastThreshold)
			res, err := updater.ApplyOutcome(store, p.FactorA, p.FactorB, outcome, rt)
			if err != nil {
				return learnerRun{err: err}
			}
			results = append(results, res)
		}

		stats := store.Aggregate(cfg.Range)
		rounds = append(rounds, RoundStats{
			Round:     round,
			Mastered:  float64(stats.Mastered),
			Learning:  float64(stats.Learning),
			Gaps:      float64(stats.Gaps),
			MeanScore: stats.MeanScore,
			Accuracy:  scoring.NewReport(results).Accuracy(),
		})
	}
	return learnerRun{rounds: rounds}
}
