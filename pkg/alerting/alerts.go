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

// Package alerting projects fired health factors into severity-classified
// alerts tagged with their originating entity.
package alerting

import (
	"github.com/google/uuid"

	"github.com/carverauto/siteradar/pkg/models"
)

// alertNamespace seeds deterministic alert IDs so identical snapshots
// produce byte-identical reports.
var alertNamespace = uuid.MustParse("9e2b61c0-5a7f-4d48-9c43-8f6f1e2a7b10")

// FromEntities projects every health factor of every entity into an alert,
// one-to-one, preserving entity order. The entities slice must already be
// deterministically ordered by the caller.
func FromEntities(entities []models.EntityHealth) []models.Alert {
	var alerts []models.Alert

	for _, e := range entities {
		for _, f := range e.Factors {
			alerts = append(alerts, models.Alert{
				ID:       alertID(e.EntityID, f),
				Source:   e.EntityName,
				Category: f.Category,
				Severity: f.Severity,
				Message:  f.Message,
				Impact:   f.Impact,
			})
		}
	}

	return alerts
}

// Group partitions alerts by severity. The input list is read, never
// mutated; unknown severities fall into the info bucket.
func Group(alerts []models.Alert) models.AlertGroups {
	groups := models.AlertGroups{
		Critical: []models.Alert{},
		Warning:  []models.Alert{},
		Info:     []models.Alert{},
	}

	for _, a := range alerts {
		switch a.Severity {
		case models.SeverityCritical:
			groups.Critical = append(groups.Critical, a)
		case models.SeverityWarning:
			groups.Warning = append(groups.Warning, a)
		default:
			groups.Info = append(groups.Info, a)
		}
	}

	return groups
}

func alertID(entityID string, f models.HealthFactor) string {
	name := entityID + "|" + f.Category + "|" + string(f.Severity) + "|" + f.Message
	return uuid.NewSHA1(alertNamespace, []byte(name)).String()
}
