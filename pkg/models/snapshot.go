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

// Package models provides data models for the siteradar health engine.
package models

// DeviceStatus is the closed status vocabulary for field devices.
// Classification happens once at ingestion and is immutable afterward.
type DeviceStatus string

const (
	DeviceStatusOK      DeviceStatus = "ok"
	DeviceStatusDown    DeviceStatus = "down"
	DeviceStatusAlarm   DeviceStatus = "alarm"
	DeviceStatusFault   DeviceStatus = "fault"
	DeviceStatusUnknown DeviceStatus = "unknown"
)

// SystemSnapshot is the root input to the engine: one optional supervisory
// node plus subordinate controller nodes keyed by name. Snapshots are
// produced once per import and never mutated.
type SystemSnapshot struct {
	Supervisor *EntitySnapshot           `json:"supervisor,omitempty"`
	Entities   map[string]EntitySnapshot `json:"entities,omitempty"`
}

// EntitySnapshot represents one physical or logical controller node.
type EntitySnapshot struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Platform  *PlatformInfo             `json:"platform,omitempty"`
	Resources *CurrentResources         `json:"resources,omitempty"`
	Metrics   *LegacyResources          `json:"metrics,omitempty"`
	Drivers   map[string]DriverSnapshot `json:"drivers,omitempty"`
}

// PlatformInfo carries OS/runtime identity facts for an entity.
type PlatformInfo struct {
	Model          string         `json:"model,omitempty"`
	Product        string         `json:"product,omitempty"`
	OSVersion      string         `json:"os_version,omitempty"`
	RuntimeVersion string         `json:"runtime_version,omitempty"`
	HostID         string         `json:"host_id,omitempty"`
	Storage        []StorageMount `json:"storage,omitempty"`
}

// StorageMount is one storage volume reported by the platform block.
type StorageMount struct {
	Name       string `json:"name"`
	FreeBytes  int64  `json:"free_bytes"`
	TotalBytes int64  `json:"total_bytes"`
}

// CurrentResources is the nested resource shape emitted by current exports.
// Leaf fields are pointers so the normalizer can distinguish absent from zero.
type CurrentResources struct {
	CPU      *CPUResource     `json:"cpu,omitempty"`
	Memory   *MemoryResource  `json:"memory,omitempty"`
	Heap     *HeapResource    `json:"heap,omitempty"`
	Licenses *LicenseResource `json:"licenses,omitempty"`
}

// CPUResource is the current-shape CPU block.
type CPUResource struct {
	UsagePercent *float64 `json:"usage_percent,omitempty"`
}

// MemoryResource is the current-shape physical memory block.
type MemoryResource struct {
	UsedBytes  *int64 `json:"used_bytes,omitempty"`
	TotalBytes *int64 `json:"total_bytes,omitempty"`
}

// HeapResource is the current-shape runtime heap block.
type HeapResource struct {
	UsedPercent *float64 `json:"used_percent,omitempty"`
}

// LicenseResource groups current-shape license counters.
type LicenseResource struct {
	Devices *LicenseCounter `json:"devices,omitempty"`
	Points  *LicenseCounter `json:"points,omitempty"`
}

// LicenseCounter is one used/limit pair. Limit 0 means unlimited.
type LicenseCounter struct {
	Used  *int `json:"used,omitempty"`
	Limit *int `json:"limit,omitempty"`
}

// LegacyResources is the flat metrics shape emitted by older exports.
type LegacyResources struct {
	CPUUsage        *float64 `json:"cpu_usage,omitempty"`
	MemUsed         *int64   `json:"mem_used,omitempty"`
	MemTotal        *int64   `json:"mem_total,omitempty"`
	HeapPercentUsed *float64 `json:"heap_percent_used,omitempty"`
	DeviceCount     *int     `json:"device_count,omitempty"`
	DeviceLimit     *int     `json:"device_limit,omitempty"`
	PointCount      *int     `json:"point_count,omitempty"`
	PointLimit      *int     `json:"point_limit,omitempty"`
}

// DriverSnapshot is one protocol driver's raw device inventory plus an
// optional summary precomputed by the export.
type DriverSnapshot struct {
	Devices []Device             `json:"devices,omitempty"`
	Summary *DriverNativeSummary `json:"summary,omitempty"`
}

// DriverNativeSummary carries counts supplied by the export itself. When
// present it takes precedence over scanning the device list.
type DriverNativeSummary struct {
	Total   int `json:"total"`
	Healthy int `json:"healthy"`
	Faulty  int `json:"faulty"`
}

// Device is one field-level point or unit reporting through a driver.
type Device struct {
	Name      string       `json:"name"`
	RawStatus string       `json:"raw_status,omitempty"`
	Status    DeviceStatus `json:"status"`
}
