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

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carverauto/siteradar/pkg/models"
)

func floatPtr(v float64) *float64 { return &v }
func int64Ptr(v int64) *int64     { return &v }
func intPtr(v int) *int           { return &v }

func TestResourcesPrefersCurrentShape(t *testing.T) {
	entity := &models.EntitySnapshot{
		ID: "jace-1",
		Resources: &models.CurrentResources{
			CPU:    &models.CPUResource{UsagePercent: floatPtr(42)},
			Memory: &models.MemoryResource{UsedBytes: int64Ptr(512), TotalBytes: int64Ptr(1024)},
			Heap:   &models.HeapResource{UsedPercent: floatPtr(33)},
			Licenses: &models.LicenseResource{
				Devices: &models.LicenseCounter{Used: intPtr(10), Limit: intPtr(100)},
				Points:  &models.LicenseCounter{Used: intPtr(200), Limit: intPtr(500)},
			},
		},
		Metrics: &models.LegacyResources{
			CPUUsage:        floatPtr(99),
			MemUsed:         int64Ptr(9999),
			HeapPercentUsed: floatPtr(99),
			DeviceCount:     intPtr(99),
			PointLimit:      intPtr(9),
		},
	}

	got := Resources(entity)

	assert.InDelta(t, 42, got.CPUUsagePercent, 0.001)
	assert.Equal(t, int64(512), got.MemoryUsedBytes)
	assert.Equal(t, int64(1024), got.MemoryTotalBytes)
	assert.InDelta(t, 33, got.HeapUsedPercent, 0.001)
	assert.Equal(t, 10, got.DevicesUsed)
	assert.Equal(t, 100, got.DevicesLicensed)
	assert.Equal(t, 200, got.PointsUsed)
	assert.Equal(t, 500, got.PointsLicensed)
}

func TestResourcesFallsBackPerField(t *testing.T) {
	// Current shape present but sparse: absent fields fall back to the
	// legacy value individually, not wholesale.
	entity := &models.EntitySnapshot{
		ID: "jace-1",
		Resources: &models.CurrentResources{
			CPU: &models.CPUResource{UsagePercent: floatPtr(15)},
		},
		Metrics: &models.LegacyResources{
			CPUUsage:        floatPtr(77),
			HeapPercentUsed: floatPtr(44),
			MemUsed:         int64Ptr(256),
			DeviceLimit:     intPtr(50),
		},
	}

	got := Resources(entity)

	assert.InDelta(t, 15, got.CPUUsagePercent, 0.001)
	assert.InDelta(t, 44, got.HeapUsedPercent, 0.001)
	assert.Equal(t, int64(256), got.MemoryUsedBytes)
	assert.Equal(t, 50, got.DevicesLicensed)
}

func TestResourcesDefaultsToZero(t *testing.T) {
	tests := []struct {
		name   string
		entity *models.EntitySnapshot
	}{
		{"nil entity", nil},
		{"no resource blocks", &models.EntitySnapshot{ID: "jace-1"}},
		{"empty blocks", &models.EntitySnapshot{
			ID:        "jace-1",
			Resources: &models.CurrentResources{},
			Metrics:   &models.LegacyResources{},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resources(tt.entity)
			assert.Equal(t, models.ResourceMetrics{}, got)
		})
	}
}

func TestResourcesClampsNegativeValues(t *testing.T) {
	entity := &models.EntitySnapshot{
		ID: "jace-1",
		Resources: &models.CurrentResources{
			CPU:  &models.CPUResource{UsagePercent: floatPtr(-12)},
			Heap: &models.HeapResource{UsedPercent: floatPtr(-1)},
		},
		Metrics: &models.LegacyResources{
			MemUsed: int64Ptr(-100),
		},
	}

	got := Resources(entity)

	assert.Zero(t, got.CPUUsagePercent)
	assert.Zero(t, got.HeapUsedPercent)
	assert.Zero(t, got.MemoryUsedBytes)
}
