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
	"sort"

	"github.com/carverauto/siteradar/pkg/models"
)

// SummarizeDriver reduces one protocol's inventory to counts. A native
// summary supplied by the export wins over scanning the device list.
// Devices outside ok/down/fault/alarm count toward the total but toward
// neither healthy nor faulty. An empty driver is vacuously healthy: a
// zero total yields 100 percent.
func SummarizeDriver(protocol string, driver models.DriverSnapshot) models.DriverSummary {
	summary := models.DriverSummary{Protocol: protocol}

	if native := driver.Summary; native != nil {
		summary.Total = native.Total
		summary.HealthyCount = native.Healthy
		summary.FaultyCount = native.Faulty
	} else {
		for _, d := range driver.Devices {
			summary.Total++

			switch d.Status {
			case models.DeviceStatusOK:
				summary.HealthyCount++
			case models.DeviceStatusDown, models.DeviceStatusFault, models.DeviceStatusAlarm:
				summary.FaultyCount++
			}
		}
	}

	if summary.Total == 0 {
		summary.HealthyPercentage = 100
	} else {
		summary.HealthyPercentage = float64(summary.HealthyCount) / float64(summary.Total) * 100
	}

	if summary.HealthyPercentage > 100 {
		summary.HealthyPercentage = 100
	}

	return summary
}

// SummarizeDrivers summarizes every driver of an entity, ordered by
// protocol name so repeated runs produce identical output.
func SummarizeDrivers(drivers map[string]models.DriverSnapshot) []models.DriverSummary {
	if len(drivers) == 0 {
		return nil
	}

	protos := make([]string, 0, len(drivers))
	for proto := range drivers {
		protos = append(protos, proto)
	}

	sort.Strings(protos)

	out := make([]models.DriverSummary, 0, len(protos))
	for _, proto := range protos {
		out = append(out, SummarizeDriver(proto, drivers[proto]))
	}

	return out
}
