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

// CapacityKind names a finite licensed resource.
type CapacityKind string

const (
	CapacityPoints  CapacityKind = "points"
	CapacityDevices CapacityKind = "devices"
)

// UsageTrend is a caller-supplied linear growth assumption used for
// capacity projection. Zero or negative rates disable projection for
// that capacity kind.
type UsageTrend struct {
	PointsPerMonth  float64 `json:"points_per_month"`
	DevicesPerMonth float64 `json:"devices_per_month"`
}

// CapacityProjection estimates time remaining before license exhaustion.
// MonthsRemaining is nil when usage is flat or the license is unlimited.
type CapacityProjection struct {
	Kind            CapacityKind `json:"kind"`
	UsedPercent     float64      `json:"used_percent"`
	MonthsRemaining *float64     `json:"months_remaining,omitempty"`
	AtRisk          bool         `json:"at_risk"`
}

// Alert is one severity-classified finding projected from a health factor.
type Alert struct {
	ID       string      `json:"id"`
	Source   string      `json:"source"`
	Category string      `json:"category"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
	Impact   ImpactLevel `json:"impact"`
}

// AlertGroups partitions alerts by severity for presentation. Grouping is
// a pure partition of the flat alert list, not a separate computation.
type AlertGroups struct {
	Critical []Alert `json:"critical"`
	Warning  []Alert `json:"warning"`
	Info     []Alert `json:"info"`
}

// DefaultOverallScore is reported when a snapshot carries no entities.
const DefaultOverallScore = 85

// SystemInsightReport is the engine's top-level immutable result. A new
// report is produced per pipeline run; nothing in it is ever mutated.
type SystemInsightReport struct {
	OverallScore      int                  `json:"overall_score"`
	OverallClass      HealthClass          `json:"overall_class"`
	Entities          []EntityHealth       `json:"entities"`
	Alerts            []Alert              `json:"alerts"`
	AlertGroups       AlertGroups          `json:"alert_groups"`
	Topology          *TopologyNode        `json:"topology,omitempty"`
	Capacity          []CapacityProjection `json:"capacity"`
	ProtocolBreakdown map[string]int       `json:"protocol_breakdown"`
	Summary           HealthSummary        `json:"summary"`
}
