/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package insight owns the health aggregation pipeline: it validates a
// snapshot, evaluates every entity, and composes the immutable
// SystemInsightReport. The pipeline is a pure function of its input;
// recomputation always produces a new report.
package insight

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/siteradar/pkg/alerting"
	"github.com/carverauto/siteradar/pkg/capacity"
	"github.com/carverauto/siteradar/pkg/logger"
	"github.com/carverauto/siteradar/pkg/models"
	"github.com/carverauto/siteradar/pkg/normalize"
	"github.com/carverauto/siteradar/pkg/scoring"
	"github.com/carverauto/siteradar/pkg/topology"
)

// Config tunes the analyzer. Zero values select the defaults, so an empty
// config is fully usable.
type Config struct {
	Logging           logger.Config      `json:"logging"`
	Thresholds        scoring.Thresholds `json:"thresholds"`
	CollapseThreshold int                `json:"collapse_threshold"`
}

// Analyzer runs the snapshot-to-report pipeline. It holds no state between
// runs and is safe for concurrent use.
type Analyzer struct {
	scorer            *scoring.Scorer
	collapseThreshold int
	logger            logger.Logger
}

// NewAnalyzer builds an analyzer from config. A nil logger falls back to
// the no-op test logger.
func NewAnalyzer(cfg Config, log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Analyzer{
		scorer:            scoring.NewScorer(cfg.Thresholds),
		collapseThreshold: cfg.CollapseThreshold,
		logger:            log,
	}
}

// Analyze produces one report from one snapshot. The trend is optional;
// without it capacity projection reports no months-remaining. The call
// either finishes fully or returns an error; partial results are never
// surfaced.
func (a *Analyzer) Analyze(ctx context.Context, snap *models.SystemSnapshot, trend *models.UsageTrend) (*models.SystemInsightReport, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}

	classified := normalize.Snapshot(snap)
	refs := entityRefs(classified)

	entities, err := a.evaluateEntities(ctx, refs)
	if err != nil {
		return nil, err
	}

	healthByID := make(map[string]models.EntityHealth, len(entities))
	for _, e := range entities {
		healthByID[e.EntityID] = e
	}

	root, summary, protocols := topology.NewBuilder(a.collapseThreshold).Build(classified, healthByID)

	report := compose(entities, root, summary, protocols, capacity.Project(entities, trend))

	a.logger.Debug().
		Int("entities", len(entities)).
		Int("alerts", len(report.Alerts)).
		Int("overall_score", report.OverallScore).
		Msg("Snapshot analysis complete")

	return report, nil
}

// entityRef pairs an entity with its snapshot value; the supervisor is
// evaluated like any other entity.
type entityRef struct {
	entity models.EntitySnapshot
}

// entityRefs collects all entities ordered by stable identifier so output
// collections are deterministic regardless of evaluation order.
func entityRefs(snap *models.SystemSnapshot) []entityRef {
	refs := make([]entityRef, 0, len(snap.Entities)+1)

	if snap.Supervisor != nil {
		refs = append(refs, entityRef{entity: *snap.Supervisor})
	}

	for _, entity := range snap.Entities {
		refs = append(refs, entityRef{entity: entity})
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].entity.ID < refs[j].entity.ID
	})

	return refs
}

// evaluateEntities scores every entity concurrently. Each task reads its
// own slice of the immutable snapshot and writes its own result index, so
// no locks are needed. A panicking task fails the whole call.
func (a *Analyzer) evaluateEntities(ctx context.Context, refs []entityRef) ([]models.EntityHealth, error) {
	results := make([]models.EntityHealth, len(refs))

	g, gctx := errgroup.WithContext(ctx)

	for i := range refs {
		i := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: entity %s: %v", ErrComputation, refs[i].entity.ID, r)
				}
			}()

			if gctx.Err() != nil {
				return gctx.Err()
			}

			results[i] = a.evaluateEntity(&refs[i].entity)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (a *Analyzer) evaluateEntity(entity *models.EntitySnapshot) models.EntityHealth {
	metrics := normalize.Resources(entity)
	drivers := scoring.SummarizeDrivers(entity.Drivers)

	return a.scorer.ScoreEntity(entity.ID, entity.Name, metrics, drivers)
}

// compose assembles the final report from the stage outputs. It computes
// nothing new beyond the overall mean; every field is a reference to an
// already-finished value.
func compose(entities []models.EntityHealth, root *models.TopologyNode,
	summary models.HealthSummary, protocols map[string]int,
	projections []models.CapacityProjection) *models.SystemInsightReport {
	if entities == nil {
		entities = []models.EntityHealth{}
	}

	if protocols == nil {
		protocols = map[string]int{}
	}

	alerts := alerting.FromEntities(entities)
	if alerts == nil {
		alerts = []models.Alert{}
	}

	overall := scoring.OverallScore(entities)

	return &models.SystemInsightReport{
		OverallScore:      overall,
		OverallClass:      models.ClassifyScore(float64(overall)),
		Entities:          entities,
		Alerts:            alerts,
		AlertGroups:       alerting.Group(alerts),
		Topology:          root,
		Capacity:          projections,
		ProtocolBreakdown: protocols,
		Summary:           summary,
	}
}
