// internal/service/dashboard.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
	"github.com/factdojo/backend/internal/store"
	"github.com/factdojo/backend/internal/worker"
)

// ProfileSummary is one row of the dashboard.
type ProfileSummary struct {
	ProfileID string
	Name      string
	Stats     mastery.Stats
	Err       error
}

// DashboardService aggregates every profile's mastery concurrently.
type DashboardService struct {
	store   store.Store
	workers int
	logger  *slog.Logger
}

func NewDashboardService(s store.Store, workers int, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		store:   s,
		workers: workers,
		logger:  logger,
	}
}

// Overview loads each profile on the worker pool and buckets its facts over r.
// A profile that fails to load is reported with Err set instead of failing
// the whole dashboard. Rows come back in the profile listing order.
func (ds *DashboardService) Overview(ctx context.Context, r fact.Range) ([]ProfileSummary, error) {
	if !r.Valid() || !fact.TableRange.Contains(r.Min) || !fact.TableRange.Contains(r.Max) {
		return nil, ErrInvalidRange
	}

	profiles, err := ds.store.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	if len(profiles) == 0 {
		return []ProfileSummary{}, nil
	}

	pool := worker.NewPool[ProfileSummary](ds.workers, len(profiles))
	order := make(map[string]int, len(profiles))
	for i, p := range profiles {
		order[p.ID] = i
		pool.Submit(p.ID, func() ProfileSummary {
			summary := ProfileSummary{ProfileID: p.ID, Name: p.Name}
			m, err := ds.store.LoadMastery(ctx, p.ID)
			if err != nil {
				summary.Err = err
				return summary
			}
			summary.Stats = mastery.NewStore(m).Aggregate(r)
			return summary
		})
	}
	pool.Close()

	summaries := make([]ProfileSummary, 0, len(profiles))
	for res := range pool.Results() {
		if res.Output.Err != nil {
			ds.logger.Error("dashboard profile failed", "profile_id", res.JobID, "error", res.Output.Err)
		}
		summaries = append(summaries, res.Output)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return order[summaries[i].ProfileID] < order[summaries[j].ProfileID]
	})
	return summaries, nil
}
