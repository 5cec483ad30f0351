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

package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/siteradar/pkg/logger"
	"github.com/carverauto/siteradar/pkg/models"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return NewAnalyzer(Config{}, logger.NewTestLogger())
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func devices(total, down int) []models.Device {
	out := make([]models.Device, total)
	for i := range out {
		status := models.DeviceStatusOK
		if i < down {
			status = models.DeviceStatusDown
		}

		out[i] = models.Device{Name: fmt.Sprintf("dev-%03d", i), Status: status}
	}

	return out
}

func TestAnalyzeNilSnapshot(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Analyze(context.Background(), nil, nil)

	require.ErrorIs(t, err, ErrNilSnapshot)
	assert.Nil(t, report)
}

func TestAnalyzeMalformedSnapshot(t *testing.T) {
	a := newTestAnalyzer(t)

	snap := &models.SystemSnapshot{
		Entities: map[string]models.EntitySnapshot{
			"jace-1": {Name: "missing id"},
		},
	}

	report, err := a.Analyze(context.Background(), snap, nil)

	require.ErrorIs(t, err, models.ErrMalformedSnapshot)
	assert.Nil(t, report)
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.Analyze(context.Background(), &models.SystemSnapshot{}, nil)

	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, models.DefaultOverallScore, report.OverallScore)
	assert.Equal(t, models.HealthGood, report.OverallClass)
	assert.Empty(t, report.Entities)
	assert.Empty(t, report.Alerts)
	assert.Nil(t, report.Topology)
	assert.Equal(t, models.HealthSummary{}, report.Summary)
	assert.Empty(t, report.ProtocolBreakdown)
	require.Len(t, report.Capacity, 2)
}

func TestAnalyzeScenarioDegraded(t *testing.T) {
	// Supervisor heap at 95%, one subordinate with BACnet at 55% healthy.
	snap := &models.SystemSnapshot{
		Supervisor: &models.EntitySnapshot{
			ID:   "sup-1",
			Name: "Supervisor",
			Resources: &models.CurrentResources{
				Heap: &models.HeapResource{UsedPercent: floatPtr(95)},
			},
		},
		Entities: map[string]models.EntitySnapshot{
			"jace-1": {
				ID:   "jace-1",
				Name: "JACE 1",
				Drivers: map[string]models.DriverSnapshot{
					"BACnetNetwork": {Devices: devices(20, 9)},
				},
			},
		},
	}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), snap, nil)

	require.NoError(t, err)

	// Entities are ordered by ID.
	require.Len(t, report.Entities, 2)
	assert.Equal(t, "jace-1", report.Entities[0].EntityID)
	assert.Equal(t, "sup-1", report.Entities[1].EntityID)

	// BACnet at 55%: (80-55)*0.5 off. Heap at 95%: (95-75)*0.3 off.
	assert.InDelta(t, 87.5, report.Entities[0].Score, 0.001)
	assert.InDelta(t, 94, report.Entities[1].Score, 0.001)
	assert.Equal(t, 91, report.OverallScore)

	require.Len(t, report.AlertGroups.Critical, 2)
	assert.Contains(t, report.AlertGroups.Critical[0].Category, "BACnet")
	assert.Contains(t, report.AlertGroups.Critical[1].Category, "heap")

	// Down devices drive the tree critical even though entity scores
	// stay in the upper bands.
	require.NotNil(t, report.Topology)
	assert.Equal(t, models.NodeStatusCritical, report.Topology.Status)

	assert.Equal(t, models.HealthSummary{Healthy: 11, Offline: 9}, report.Summary)
}

func TestAnalyzeScenarioNominal(t *testing.T) {
	nominal := func(id, name string, deviceCount int) models.EntitySnapshot {
		return models.EntitySnapshot{
			ID:   id,
			Name: name,
			Resources: &models.CurrentResources{
				CPU:  &models.CPUResource{UsagePercent: floatPtr(20)},
				Heap: &models.HeapResource{UsedPercent: floatPtr(30)},
			},
			Drivers: map[string]models.DriverSnapshot{
				"BACnetNetwork": {Devices: devices(deviceCount, 0)},
			},
		}
	}

	sup := nominal("sup-1", "Supervisor", 4)
	snap := &models.SystemSnapshot{
		Supervisor: &sup,
		Entities: map[string]models.EntitySnapshot{
			"jace-1": nominal("jace-1", "JACE 1", 6),
			"jace-2": nominal("jace-2", "JACE 2", 10),
		},
	}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), snap, nil)

	require.NoError(t, err)

	assert.Equal(t, 100, report.OverallScore)
	assert.Equal(t, models.HealthExcellent, report.OverallClass)
	assert.Empty(t, report.Alerts)
	assert.Equal(t, models.HealthSummary{Healthy: 20}, report.Summary)
	assert.Equal(t, map[string]int{"BACnetNetwork": 20}, report.ProtocolBreakdown)
	assert.Equal(t, models.NodeStatusOK, report.Topology.Status)
}

func TestAnalyzeScenarioDeviceCapacity(t *testing.T) {
	// Device license at 96% and nothing else wrong.
	snap := &models.SystemSnapshot{
		Entities: map[string]models.EntitySnapshot{
			"jace-1": {
				ID:   "jace-1",
				Name: "JACE 1",
				Resources: &models.CurrentResources{
					Licenses: &models.LicenseResource{
						Devices: &models.LicenseCounter{Used: intPtr(96), Limit: intPtr(100)},
					},
				},
			},
		},
	}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), snap, nil)

	require.NoError(t, err)

	require.Len(t, report.Alerts, 1)
	assert.Equal(t, models.SeverityWarning, report.Alerts[0].Severity)
	assert.Contains(t, report.Alerts[0].Category, "device capacity")
	assert.Empty(t, report.AlertGroups.Critical)

	score := report.Entities[0].Score
	assert.Greater(t, score, 90.0)
	assert.Less(t, score, 100.0)
}

func TestAnalyzeLegacyShapeSnapshot(t *testing.T) {
	snap := &models.SystemSnapshot{
		Entities: map[string]models.EntitySnapshot{
			"jace-1": {
				ID:      "jace-1",
				Name:    "JACE 1",
				Metrics: &models.LegacyResources{CPUUsage: floatPtr(95)},
			},
		},
	}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), snap, nil)

	require.NoError(t, err)
	require.Len(t, report.Entities, 1)
	assert.InDelta(t, 92.5, report.Entities[0].Score, 0.001)
	require.Len(t, report.AlertGroups.Critical, 1)
}

func TestAnalyzeWithTrend(t *testing.T) {
	snap := &models.SystemSnapshot{
		Entities: map[string]models.EntitySnapshot{
			"jace-1": {
				ID:   "jace-1",
				Name: "JACE 1",
				Resources: &models.CurrentResources{
					Licenses: &models.LicenseResource{
						Points: &models.LicenseCounter{Used: intPtr(450), Limit: intPtr(500)},
					},
				},
			},
		},
	}

	trend := &models.UsageTrend{PointsPerMonth: 25}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), snap, trend)

	require.NoError(t, err)

	var points models.CapacityProjection

	for _, p := range report.Capacity {
		if p.Kind == models.CapacityPoints {
			points = p
		}
	}

	require.NotNil(t, points.MonthsRemaining)
	assert.InDelta(t, 2, *points.MonthsRemaining, 0.001)
	assert.True(t, points.AtRisk)
}

func TestAnalyzeDeterministic(t *testing.T) {
	snap := &models.SystemSnapshot{
		Supervisor: &models.EntitySnapshot{
			ID:   "sup-1",
			Name: "Supervisor",
			Resources: &models.CurrentResources{
				CPU: &models.CPUResource{UsagePercent: floatPtr(85)},
			},
		},
		Entities: map[string]models.EntitySnapshot{
			"jace-3": {ID: "jace-3", Name: "JACE 3", Drivers: map[string]models.DriverSnapshot{
				"N2Network": {Devices: devices(10, 4)},
			}},
			"jace-1": {ID: "jace-1", Name: "JACE 1", Drivers: map[string]models.DriverSnapshot{
				"BACnetNetwork": {Devices: devices(8, 1)},
			}},
			"jace-2": {ID: "jace-2", Name: "JACE 2", Drivers: map[string]models.DriverSnapshot{
				"BACnetNetwork": {Devices: devices(30, 0)},
				"N2Network":     {Devices: devices(5, 5)},
			}},
		},
	}

	a := newTestAnalyzer(t)

	first, err := a.Analyze(context.Background(), snap, nil)
	require.NoError(t, err)

	second, err := a.Analyze(context.Background(), snap, nil)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
}

func TestAnalyzeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap := &models.SystemSnapshot{
		Entities: map[string]models.EntitySnapshot{
			"jace-1": {ID: "jace-1", Name: "JACE 1"},
		},
	}

	_, err := newTestAnalyzer(t).Analyze(ctx, snap, nil)

	require.Error(t, err)
}

func TestAnalyzeInputSnapshotNotMutated(t *testing.T) {
	snap := &models.SystemSnapshot{
		Entities: map[string]models.EntitySnapshot{
			"jace-1": {
				ID:   "jace-1",
				Name: "JACE 1",
				Drivers: map[string]models.DriverSnapshot{
					"BACnetNetwork": {Devices: []models.Device{{Name: "ahu-1", RawStatus: "ONLINE"}}},
				},
			},
		},
	}

	_, err := newTestAnalyzer(t).Analyze(context.Background(), snap, nil)

	require.NoError(t, err)
	assert.Empty(t, snap.Entities["jace-1"].Drivers["BACnetNetwork"].Devices[0].Status)
}
