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

// Package capacity projects license exhaustion from point-in-time usage
// and an assumed linear growth trend.
package capacity

import (
	"github.com/carverauto/siteradar/pkg/models"
)

// riskHorizonMonths flags projections at or under this many months.
const riskHorizonMonths = 6

// Project computes projections for the point and device license pools,
// summed across all scored entities. A nil trend, non-positive growth
// rate, or unlimited license yields a nil MonthsRemaining rather than a
// division error.
func Project(entities []models.EntityHealth, trend *models.UsageTrend) []models.CapacityProjection {
	var pointsUsed, pointsLicensed, devicesUsed, devicesLicensed int

	for _, e := range entities {
		pointsUsed += e.Resources.PointsUsed
		pointsLicensed += e.Resources.PointsLicensed
		devicesUsed += e.Resources.DevicesUsed
		devicesLicensed += e.Resources.DevicesLicensed
	}

	var pointsRate, devicesRate float64
	if trend != nil {
		pointsRate = trend.PointsPerMonth
		devicesRate = trend.DevicesPerMonth
	}

	return []models.CapacityProjection{
		project(models.CapacityPoints, pointsUsed, pointsLicensed, pointsRate),
		project(models.CapacityDevices, devicesUsed, devicesLicensed, devicesRate),
	}
}

func project(kind models.CapacityKind, used, licensed int, monthlyRate float64) models.CapacityProjection {
	p := models.CapacityProjection{Kind: kind}

	if licensed > 0 {
		p.UsedPercent = float64(used) / float64(licensed) * 100
		if p.UsedPercent > 100 {
			p.UsedPercent = 100
		}
	}

	if licensed <= 0 || monthlyRate <= 0 {
		return p
	}

	remaining := float64(licensed-used) / monthlyRate
	if remaining < 0 {
		remaining = 0
	}

	p.MonthsRemaining = &remaining
	p.AtRisk = remaining <= riskHorizonMonths

	return p
}
