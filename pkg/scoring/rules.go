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

package scoring

import (
	"fmt"
	"strings"

	"github.com/carverauto/siteradar/pkg/models"
)

// Deduction is one fired scoring rule: points off the base score plus the
// finding that explains it.
type Deduction struct {
	Points float64
	Factor models.HealthFactor
}

// entityInput is the evaluated view of one entity handed to every rule.
type entityInput struct {
	Name       string
	Metrics    models.ResourceMetrics
	Drivers    []models.DriverSummary
	Thresholds Thresholds
}

// rule inspects one subsystem of an entity and reports any deductions.
type rule interface {
	Name() string
	Evaluate(in *entityInput) []Deduction
}

func defaultRules() []rule {
	return []rule{
		&bacnetRule{},
		&n2Rule{},
		&cpuRule{},
		&heapRule{},
		&deviceLicenseRule{},
	}
}

type bacnetRule struct{}

func (*bacnetRule) Name() string { return "bacnet-health" }

func (*bacnetRule) Evaluate(in *entityInput) []Deduction {
	var out []Deduction

	for _, drv := range in.Drivers {
		if !protocolMatches(drv.Protocol, "bacnet") {
			continue
		}

		pct := drv.HealthyPercentage
		if pct >= in.Thresholds.BACnetHealthyPct {
			continue
		}

		severity := models.SeverityWarning
		if pct < in.Thresholds.BACnetCriticalPct {
			severity = models.SeverityCritical
		}

		out = append(out, Deduction{
			Points: (in.Thresholds.BACnetHealthyPct - pct) * in.Thresholds.BACnetWeight,
			Factor: models.HealthFactor{
				Category: in.Name + " BACnet",
				Severity: severity,
				Message: fmt.Sprintf("BACnet driver %s: %d of %d devices healthy (%.1f%%)",
					drv.Protocol, drv.HealthyCount, drv.Total, pct),
				Impact: models.ImpactHigh,
			},
		})
	}

	return out
}

type n2Rule struct{}

func (*n2Rule) Name() string { return "n2-online" }

func (*n2Rule) Evaluate(in *entityInput) []Deduction {
	var out []Deduction

	for _, drv := range in.Drivers {
		if !protocolMatches(drv.Protocol, "n2") {
			continue
		}

		pct := drv.HealthyPercentage
		if pct >= in.Thresholds.N2OnlinePct {
			continue
		}

		severity := models.SeverityWarning
		if pct < in.Thresholds.N2CriticalPct {
			severity = models.SeverityCritical
		}

		out = append(out, Deduction{
			Points: (in.Thresholds.N2OnlinePct - pct) * in.Thresholds.N2Weight,
			Factor: models.HealthFactor{
				Category: in.Name + " N2",
				Severity: severity,
				Message: fmt.Sprintf("N2 driver %s: %d of %d devices online (%.1f%%)",
					drv.Protocol, drv.HealthyCount, drv.Total, pct),
				Impact: models.ImpactHigh,
			},
		})
	}

	return out
}

type cpuRule struct{}

func (*cpuRule) Name() string { return "cpu-usage" }

func (*cpuRule) Evaluate(in *entityInput) []Deduction {
	cpu := in.Metrics.CPUUsagePercent
	if cpu <= in.Thresholds.CPUPct {
		return nil
	}

	severity := models.SeverityWarning
	if cpu > in.Thresholds.CPUCriticalPct {
		severity = models.SeverityCritical
	}

	return []Deduction{{
		Points: (cpu - in.Thresholds.CPUPct) * in.Thresholds.CPUWeight,
		Factor: models.HealthFactor{
			Category: in.Name + " CPU",
			Severity: severity,
			Message:  fmt.Sprintf("CPU usage at %.1f%%", cpu),
			Impact:   models.ImpactMedium,
		},
	}}
}

type heapRule struct{}

func (*heapRule) Name() string { return "heap-usage" }

func (*heapRule) Evaluate(in *entityInput) []Deduction {
	heap := in.Metrics.HeapUsedPercent
	if heap <= in.Thresholds.HeapPct {
		return nil
	}

	severity := models.SeverityWarning
	if heap > in.Thresholds.HeapCriticalPct {
		severity = models.SeverityCritical
	}

	return []Deduction{{
		Points: (heap - in.Thresholds.HeapPct) * in.Thresholds.HeapWeight,
		Factor: models.HealthFactor{
			Category: in.Name + " heap",
			Severity: severity,
			Message:  fmt.Sprintf("Heap usage at %.1f%%", heap),
			Impact:   models.ImpactMedium,
		},
	}}
}

type deviceLicenseRule struct{}

func (*deviceLicenseRule) Name() string { return "device-license" }

// deviceLicenseRule never escalates to critical on its own; capacity
// pressure is a planning problem, not an outage.
func (*deviceLicenseRule) Evaluate(in *entityInput) []Deduction {
	licensed := in.Metrics.DevicesLicensed
	if licensed <= 0 {
		return nil
	}

	pct := float64(in.Metrics.DevicesUsed) / float64(licensed) * 100
	if pct <= in.Thresholds.DeviceLicensePct {
		return nil
	}

	return []Deduction{{
		Points: (pct - in.Thresholds.DeviceLicensePct) * in.Thresholds.DeviceLicenseWeight,
		Factor: models.HealthFactor{
			Category: in.Name + " device capacity",
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("Device license usage at %.1f%% (%d of %d)",
				pct, in.Metrics.DevicesUsed, licensed),
			Impact: models.ImpactMedium,
		},
	}}
}

// protocolMatches reports whether a driver name refers to the given
// protocol family, tolerating vendor spellings like "BacnetNetwork".
func protocolMatches(protocol, family string) bool {
	return strings.Contains(strings.ToLower(protocol), family)
}
