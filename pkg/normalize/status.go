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
	"strings"

	"github.com/carverauto/siteradar/pkg/models"
)

// ClassifyStatus maps a raw vendor status token onto the closed device
// status vocabulary. Providers that pre-classify pass through unchanged;
// raw tokens are matched case-insensitively with common vendor spellings.
func ClassifyStatus(raw string) models.DeviceStatus {
	token := strings.ToLower(strings.TrimSpace(raw))

	switch token {
	case "ok", "online", "up", "normal":
		return models.DeviceStatusOK
	case "down", "offline":
		return models.DeviceStatusDown
	case "alarm", "in_alarm", "unacked_alarm":
		return models.DeviceStatusAlarm
	case "fault", "faulty", "failed":
		return models.DeviceStatusFault
	}

	// Compound tokens such as "{down,alarm}" or "fault;disabled" resolve
	// to the worst condition they mention.
	switch {
	case strings.Contains(token, "fault"):
		return models.DeviceStatusFault
	case strings.Contains(token, "down"):
		return models.DeviceStatusDown
	case strings.Contains(token, "alarm"):
		return models.DeviceStatusAlarm
	case strings.Contains(token, "ok"):
		return models.DeviceStatusOK
	}

	return models.DeviceStatusUnknown
}

// Snapshot returns a copy of the snapshot with every device carrying a
// classified status. The input snapshot is never mutated; classification
// happens exactly once, here, at ingestion into the pipeline.
func Snapshot(snap *models.SystemSnapshot) *models.SystemSnapshot {
	if snap == nil {
		return nil
	}

	out := &models.SystemSnapshot{}

	if snap.Supervisor != nil {
		sup := classifyEntity(*snap.Supervisor)
		out.Supervisor = &sup
	}

	if len(snap.Entities) > 0 {
		out.Entities = make(map[string]models.EntitySnapshot, len(snap.Entities))
		for name, entity := range snap.Entities {
			out.Entities[name] = classifyEntity(entity)
		}
	}

	return out
}

func classifyEntity(entity models.EntitySnapshot) models.EntitySnapshot {
	if len(entity.Drivers) == 0 {
		return entity
	}

	drivers := make(map[string]models.DriverSnapshot, len(entity.Drivers))

	for proto, driver := range entity.Drivers {
		driver.Devices = ClassifyDevices(driver.Devices)
		drivers[proto] = driver
	}

	entity.Drivers = drivers

	return entity
}

// ClassifyDevices applies ClassifyStatus to every device whose status is
// not already a member of the closed vocabulary, returning a new slice.
// The input slice is never mutated.
func ClassifyDevices(devices []models.Device) []models.Device {
	if len(devices) == 0 {
		return nil
	}

	out := make([]models.Device, len(devices))

	for i, d := range devices {
		switch d.Status {
		case models.DeviceStatusOK, models.DeviceStatusDown,
			models.DeviceStatusAlarm, models.DeviceStatusFault:
			out[i] = d
		default:
			// Providers that skip pre-classification may put the raw
			// token in either field.
			raw := d.RawStatus
			if raw == "" {
				raw = string(d.Status)
			}

			d.RawStatus = raw
			d.Status = ClassifyStatus(raw)
			out[i] = d
		}
	}

	return out
}
