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

// Package normalize resolves the legacy/current resource shapes carried by
// an entity snapshot into one canonical ResourceMetrics record. Downstream
// components never branch on shape again.
package normalize

import (
	"github.com/carverauto/siteradar/pkg/models"
)

// Resources maps an entity's raw resource blocks onto the canonical record.
// Current-shape fields win field-by-field; legacy fields fill the gaps;
// both absent defaults to zero. Missing data is a valid state, never an
// error.
func Resources(entity *models.EntitySnapshot) models.ResourceMetrics {
	var out models.ResourceMetrics

	if entity == nil {
		return out
	}

	cur := entity.Resources
	leg := entity.Metrics

	out.CPUUsagePercent = pickFloat(currentCPU(cur), legacyFloat(leg, func(l *models.LegacyResources) *float64 { return l.CPUUsage }))
	out.HeapUsedPercent = pickFloat(currentHeap(cur), legacyFloat(leg, func(l *models.LegacyResources) *float64 { return l.HeapPercentUsed }))

	out.MemoryUsedBytes = pickInt64(currentMemUsed(cur), legacyInt64(leg, func(l *models.LegacyResources) *int64 { return l.MemUsed }))
	out.MemoryTotalBytes = pickInt64(currentMemTotal(cur), legacyInt64(leg, func(l *models.LegacyResources) *int64 { return l.MemTotal }))

	out.DevicesUsed = pickInt(currentLicense(cur, licenseDevices, counterUsed), legacyInt(leg, func(l *models.LegacyResources) *int { return l.DeviceCount }))
	out.DevicesLicensed = pickInt(currentLicense(cur, licenseDevices, counterLimit), legacyInt(leg, func(l *models.LegacyResources) *int { return l.DeviceLimit }))
	out.PointsUsed = pickInt(currentLicense(cur, licensePoints, counterUsed), legacyInt(leg, func(l *models.LegacyResources) *int { return l.PointCount }))
	out.PointsLicensed = pickInt(currentLicense(cur, licensePoints, counterLimit), legacyInt(leg, func(l *models.LegacyResources) *int { return l.PointLimit }))

	clampNonNegative(&out)

	return out
}

type licenseKind int

const (
	licenseDevices licenseKind = iota
	licensePoints
)

type counterField int

const (
	counterUsed counterField = iota
	counterLimit
)

func currentCPU(r *models.CurrentResources) *float64 {
	if r == nil || r.CPU == nil {
		return nil
	}

	return r.CPU.UsagePercent
}

func currentHeap(r *models.CurrentResources) *float64 {
	if r == nil || r.Heap == nil {
		return nil
	}

	return r.Heap.UsedPercent
}

func currentMemUsed(r *models.CurrentResources) *int64 {
	if r == nil || r.Memory == nil {
		return nil
	}

	return r.Memory.UsedBytes
}

func currentMemTotal(r *models.CurrentResources) *int64 {
	if r == nil || r.Memory == nil {
		return nil
	}

	return r.Memory.TotalBytes
}

func currentLicense(r *models.CurrentResources, kind licenseKind, field counterField) *int {
	if r == nil || r.Licenses == nil {
		return nil
	}

	var counter *models.LicenseCounter

	switch kind {
	case licenseDevices:
		counter = r.Licenses.Devices
	case licensePoints:
		counter = r.Licenses.Points
	}

	if counter == nil {
		return nil
	}

	if field == counterUsed {
		return counter.Used
	}

	return counter.Limit
}

func legacyFloat(l *models.LegacyResources, get func(*models.LegacyResources) *float64) *float64 {
	if l == nil {
		return nil
	}

	return get(l)
}

func legacyInt64(l *models.LegacyResources, get func(*models.LegacyResources) *int64) *int64 {
	if l == nil {
		return nil
	}

	return get(l)
}

func legacyInt(l *models.LegacyResources, get func(*models.LegacyResources) *int) *int {
	if l == nil {
		return nil
	}

	return get(l)
}

func pickFloat(current, legacy *float64) float64 {
	if current != nil {
		return *current
	}

	if legacy != nil {
		return *legacy
	}

	return 0
}

func pickInt64(current, legacy *int64) int64 {
	if current != nil {
		return *current
	}

	if legacy != nil {
		return *legacy
	}

	return 0
}

func pickInt(current, legacy *int) int {
	if current != nil {
		return *current
	}

	if legacy != nil {
		return *legacy
	}

	return 0
}

// clampNonNegative enforces the model invariant that every numeric field is
// non-negative. Percentages are clamped where computed, not here.
func clampNonNegative(m *models.ResourceMetrics) {
	if m.CPUUsagePercent < 0 {
		m.CPUUsagePercent = 0
	}

	if m.HeapUsedPercent < 0 {
		m.HeapUsedPercent = 0
	}

	if m.MemoryUsedBytes < 0 {
		m.MemoryUsedBytes = 0
	}

	if m.MemoryTotalBytes < 0 {
		m.MemoryTotalBytes = 0
	}

	if m.DevicesUsed < 0 {
		m.DevicesUsed = 0
	}

	if m.DevicesLicensed < 0 {
		m.DevicesLicensed = 0
	}

	if m.PointsUsed < 0 {
		m.PointsUsed = 0
	}

	if m.PointsLicensed < 0 {
		m.PointsLicensed = 0
	}
}
