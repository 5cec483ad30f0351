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

// Package scoring computes per-entity health scores from normalized
// resource metrics and driver summaries. Every entity starts at 100 and
// threshold rules subtract weighted deductions; the result is clamped to
// [0, 100].
package scoring

import (
	"math"

	"github.com/carverauto/siteradar/pkg/models"
)

const baseScore = 100

// Scorer evaluates entities against a fixed rule set.
type Scorer struct {
	thresholds Thresholds
	rules      []rule
}

// NewScorer builds a scorer. Zero-valued threshold fields fall back to the
// stock defaults.
func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{
		thresholds: thresholds.withDefaults(),
		rules:      defaultRules(),
	}
}

// ScoreEntity scores one entity from its normalized inputs. Deductions
// accumulate uncapped before the final clamp, so extreme inputs still
// produce a valid score.
func (s *Scorer) ScoreEntity(id, name string, metrics models.ResourceMetrics, drivers []models.DriverSummary) models.EntityHealth {
	in := &entityInput{
		Name:       name,
		Metrics:    metrics,
		Drivers:    drivers,
		Thresholds: s.thresholds,
	}

	score := float64(baseScore)
	factors := make([]models.HealthFactor, 0, len(s.rules))

	for _, r := range s.rules {
		for _, d := range r.Evaluate(in) {
			score -= d.Points
			factors = append(factors, d.Factor)
		}
	}

	score = clampScore(score)

	return models.EntityHealth{
		EntityID:       id,
		EntityName:     name,
		Score:          score,
		Classification: models.ClassifyScore(score),
		Factors:        factors,
		Resources:      metrics,
		Drivers:        drivers,
	}
}

// OverallScore is the arithmetic mean of per-entity scores rounded to the
// nearest integer. An empty system reports the default score.
func OverallScore(entities []models.EntityHealth) int {
	if len(entities) == 0 {
		return models.DefaultOverallScore
	}

	var sum float64
	for _, e := range entities {
		sum += e.Score
	}

	return int(math.Round(sum / float64(len(entities))))
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}

	if score > baseScore {
		return baseScore
	}

	return score
}
