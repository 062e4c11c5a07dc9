package dialect

// Classification is the result of scoring evidence for a file.
type Classification struct {
	ID              string
	Score           int
	TotalScore      int
	Confidence      float64
	RunnerUp        string
	RunnerUpScore   int
	Reason          string // reason of the strongest hint for ID
	ObservedSignals int
}

// Classifier scores evidence and chooses a dominant dialect.
// Ties go to the dialect hinted first.
type Classifier struct{}

func (Classifier) Classify(e *Evidence) Classification {
	if e == nil || len(e.hints) == 0 {
		return Classification{ID: Text, Reason: "fallback"}
	}

	scores := make(map[string]int, len(e.hints))
	reasons := make(map[string]Hint, len(e.hints))
	order := make([]string, 0, len(e.hints))
	total := 0
	observed := 0
	for _, h := range e.hints {
		observed++
		if h.Score <= 0 {
			continue
		}
		if _, seen := scores[h.Dialect]; !seen {
			order = append(order, h.Dialect)
		}
		scores[h.Dialect] += h.Score
		total += h.Score
		if best, ok := reasons[h.Dialect]; !ok || h.Score > best.Score {
			reasons[h.Dialect] = h
		}
	}
	if len(order) == 0 {
		return Classification{ID: Text, Reason: "fallback", ObservedSignals: observed}
	}

	bestID := ""
	bestScore := 0
	runnerID := ""
	runnerScore := 0
	for _, id := range order {
		score := scores[id]
		if score > bestScore {
			runnerID, runnerScore = bestID, bestScore
			bestID, bestScore = id, score
			continue
		}
		if score > runnerScore {
			runnerID, runnerScore = id, score
		}
	}

	conf := 0.0
	if total > 0 {
		conf = float64(bestScore) / float64(total)
	}

	return Classification{
		ID:              bestID,
		Score:           bestScore,
		TotalScore:      total,
		Confidence:      conf,
		RunnerUp:        runnerID,
		RunnerUpScore:   runnerScore,
		Reason:          reasons[bestID].Reason,
		ObservedSignals: observed,
	}
}
