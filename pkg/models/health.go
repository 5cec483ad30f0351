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

package models

// Severity classifies a health factor or alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// ImpactLevel weights a health factor for presentation.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "high"
	ImpactMedium ImpactLevel = "medium"
	ImpactLow    ImpactLevel = "low"
)

// HealthClass is the banded classification of a 0-100 health score.
type HealthClass string

const (
	HealthExcellent HealthClass = "excellent"
	HealthGood      HealthClass = "good"
	HealthWarning   HealthClass = "warning"
	HealthCritical  HealthClass = "critical"
)

// Classification band thresholds.
const (
	excellentFloor = 90
	goodFloor      = 75
	warningFloor   = 60
)

// ClassifyScore maps a health score onto its fixed classification band.
func ClassifyScore(score float64) HealthClass {
	switch {
	case score >= excellentFloor:
		return HealthExcellent
	case score >= goodFloor:
		return HealthGood
	case score >= warningFloor:
		return HealthWarning
	default:
		return HealthCritical
	}
}

// ResourceMetrics is the canonical per-entity resource record produced by
// the normalizer. All fields default to zero when absent from the snapshot;
// absence is scoring-relevant, not an error.
type ResourceMetrics struct {
	CPUUsagePercent  float64 `json:"cpu_usage_percent"`
	MemoryUsedBytes  int64   `json:"memory_used_bytes"`
	MemoryTotalBytes int64   `json:"memory_total_bytes"`
	HeapUsedPercent  float64 `json:"heap_used_percent"`
	DevicesUsed      int     `json:"devices_used"`
	DevicesLicensed  int     `json:"devices_licensed"`
	PointsUsed       int     `json:"points_used"`
	PointsLicensed   int     `json:"points_licensed"`
}

// DriverSummary reduces one protocol's device inventory to counts.
type DriverSummary struct {
	Protocol          string  `json:"protocol"`
	Total             int     `json:"total"`
	HealthyCount      int     `json:"healthy_count"`
	FaultyCount       int     `json:"faulty_count"`
	HealthyPercentage float64 `json:"healthy_percentage"`
}

// HealthFactor is one scoring deduction finding. Factors are append-only;
// they are never edited after the scorer emits them.
type HealthFactor struct {
	Category string      `json:"category"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Impact   ImpactLevel `json:"impact"`
}

// EntityHealth is the per-entity scoring output.
type EntityHealth struct {
	EntityID       string          `json:"entity_id"`
	EntityName     string          `json:"entity_name"`
	Score          float64         `json:"score"`
	Classification HealthClass     `json:"classification"`
	Factors        []HealthFactor  `json:"factors"`
	Resources      ResourceMetrics `json:"resources"`
	Drivers        []DriverSummary `json:"drivers,omitempty"`
}
