// Package main runs virtual learners through the planner and scoring policy
// and prints how the class average evolves, for tuning the K_* constants.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/factdojo/backend/internal/simulation"
)

func main() {
	cfg := simulation.DefaultConfig()

	flag.IntVar(&cfg.Learners, "learners", cfg.Learners, "number of virtual learners")
	flag.IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "sessions per learner")
	flag.IntVar(&cfg.SessionSize, "size", cfg.SessionSize, "problems per session")
	flag.IntVar(&cfg.Range.Min, "min", cfg.Range.Min, "smallest factor")
	flag.IntVar(&cfg.Range.Max, "max", cfg.Range.Max, "largest factor")
	flag.DurationVar(&cfg.Policy.FastThreshold, "fast", cfg.Policy.FastThreshold, "fast answer threshold")
	flag.Float64Var(&cfg.Policy.CorrectFast, "k-fast", cfg.Policy.CorrectFast, "gain share for a fast correct answer")
	flag.Float64Var(&cfg.Policy.CorrectSlow, "k-slow", cfg.Policy.CorrectSlow, "gain share for a slow correct answer")
	flag.Float64Var(&cfg.Policy.Wrong, "k-wrong", cfg.Policy.Wrong, "score multiplier for a wrong answer")
	flag.Float64Var(&cfg.InitialRecall, "recall", cfg.InitialRecall, "initial recall probability of an unseen fact")
	flag.Float64Var(&cfg.LearnRate, "learn", cfg.LearnRate, "share of the remaining gap closed per attempt")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent learners")
	flag.Parse()

	result, err := simulation.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "round\tmastered\tlearning\tgaps\tmean\taccuracy\t")
	for _, rs := range result.Rounds {
		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%.1f\t%.3f\t%.2f\t\n",
			rs.Round, rs.Mastered, rs.Learning, rs.Gaps, rs.MeanScore, rs.Accuracy)
	}
	tw.Flush()

	fmt.Printf("\n%d facts; half mastered at round %d, 90%% at round %d (-1 = not reached)\n",
		result.Total, result.RoundsToMastery(0.5), result.RoundsToMastery(0.9))
}
