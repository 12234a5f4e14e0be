package scoring

// Report is the Evolution Report shown at the end of a session: every answer
// in the order it was given plus the level changes it caused.
type Report struct {
	Items       []Result `json:"items"`
	Correct     int      `json:"correct"`
	Slow        int      `json:"slow"`
	Wrong       int      `json:"wrong"`
	Promotions  []Result `json:"promotions"`
	Regressions []Result `json:"regressions"`
}

// NewReport builds a Report from results in answer order.
func NewReport(results []Result) Report {
	report := Report{
		Items:       results,
		Promotions:  []Result{},
		Regressions: []Result{},
	}
	if report.Items == nil {
		report.Items = []Result{}
	}

	for _, r := range results {
		switch r.Outcome {
		case Correct:
			report.Correct++
		case Slow:
			report.Slow++
		case Wrong:
			report.Wrong++
		}

		if !r.Flipped() {
			continue
		}
		if r.NewLevel > r.OldLevel {
			report.Promotions = append(report.Promotions, r)
		} else {
			report.Regressions = append(report.Regressions, r)
		}
	}
	return report
}

// Accuracy is the share of answers that were right, fast or slow.
func (r Report) Accuracy() float64 {
	if len(r.Items) == 0 {
		return 0
	}
	return float64(r.Correct+r.Slow) / float64(len(r.Items))
}
