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

// Package topology aggregates the entity hierarchy into a tree of nodes
// carrying rolled-up device counts, protocol breakdowns, and severity.
package topology

import (
	"fmt"
	"sort"

	"github.com/carverauto/siteradar/pkg/models"
)

// DefaultCollapseThreshold bounds tree size: a driver with more devices
// than this collapses to a single summary leaf instead of per-device
// leaves.
const DefaultCollapseThreshold = 200

// Builder constructs the aggregated topology tree. Nodes are owned by
// value top-down; building never shares mutable references between nodes.
type Builder struct {
	collapseThreshold int
	protocolCounts    map[string]int
	summary           models.HealthSummary
}

// NewBuilder returns a builder. A non-positive threshold selects the
// default.
func NewBuilder(collapseThreshold int) *Builder {
	if collapseThreshold <= 0 {
		collapseThreshold = DefaultCollapseThreshold
	}

	return &Builder{
		collapseThreshold: collapseThreshold,
		protocolCounts:    make(map[string]int),
	}
}

// Build walks the snapshot and the per-entity health results, returning
// the tree root, the system-wide four-bucket device summary, and the
// protocol breakdown. The root is nil only for a snapshot with neither a
// supervisor nor subordinates.
func (b *Builder) Build(snap *models.SystemSnapshot, health map[string]models.EntityHealth) (*models.TopologyNode, models.HealthSummary, map[string]int) {
	if snap == nil || (snap.Supervisor == nil && len(snap.Entities) == 0) {
		return nil, b.summary, b.protocolCounts
	}

	root := b.rootNode(snap, health)

	names := make([]string, 0, len(snap.Entities))
	for name := range snap.Entities {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		entity := snap.Entities[name]
		child := b.entityNode(&entity, models.NodeKindJACE, health)
		root.Status = models.WorseNodeStatus(root.Status, child.Status)
		root.DeviceCount += child.DeviceCount
		root.Children = append(root.Children, child)
	}

	mergeProtocols(root.Protocols, root.Children)

	return root, b.summary, b.protocolCounts
}

func (b *Builder) rootNode(snap *models.SystemSnapshot, health map[string]models.EntityHealth) *models.TopologyNode {
	if snap.Supervisor != nil {
		node := b.entityNode(snap.Supervisor, models.NodeKindSupervisor, health)
		return &node
	}

	// Supervisor-less sites still get a stable root so the tree stays
	// strictly owned top-down.
	return &models.TopologyNode{
		ID:        "system",
		Name:      "System",
		Kind:      models.NodeKindSupervisor,
		Status:    models.NodeStatusUnknown,
		Protocols: make(map[string]int),
	}
}

func (b *Builder) entityNode(entity *models.EntitySnapshot, kind models.NodeKind, health map[string]models.EntityHealth) models.TopologyNode {
	node := models.TopologyNode{
		ID:        entity.ID,
		Name:      entity.Name,
		Kind:      kind,
		Status:    entityStatus(entity.ID, health),
		Protocols: make(map[string]int),
	}

	protos := make([]string, 0, len(entity.Drivers))
	for proto := range entity.Drivers {
		protos = append(protos, proto)
	}

	sort.Strings(protos)

	for _, proto := range protos {
		driver := entity.Drivers[proto]
		count := len(driver.Devices)

		node.Protocols[proto] += count
		node.DeviceCount += count
		b.protocolCounts[proto] += count

		worst := b.tallyDevices(driver.Devices)

		if count > b.collapseThreshold {
			node.Children = append(node.Children, models.TopologyNode{
				ID:          entity.ID + "/" + proto,
				Name:        fmt.Sprintf("%s (%d devices)", proto, count),
				Kind:        models.NodeKindDevice,
				Status:      worst,
				DeviceCount: count,
			})
		} else {
			for _, d := range driver.Devices {
				node.Children = append(node.Children, models.TopologyNode{
					ID:          entity.ID + "/" + proto + "/" + d.Name,
					Name:        d.Name,
					Kind:        models.NodeKindDevice,
					Status:      deviceNodeStatus(d.Status),
					DeviceCount: 1,
				})
			}
		}

		node.Status = models.WorseNodeStatus(node.Status, worst)
	}

	return node
}

// tallyDevices classifies every device into exactly one summary bucket in
// a single pass and returns the worst status seen.
func (b *Builder) tallyDevices(devices []models.Device) models.NodeStatus {
	worst := models.NodeStatusUnknown

	for _, d := range devices {
		switch d.Status {
		case models.DeviceStatusOK:
			b.summary.Healthy++
		case models.DeviceStatusAlarm:
			b.summary.Degraded++
		case models.DeviceStatusDown, models.DeviceStatusFault:
			b.summary.Offline++
		default:
			b.summary.Unknown++
		}

		worst = models.WorseNodeStatus(worst, deviceNodeStatus(d.Status))
	}

	return worst
}

func deviceNodeStatus(status models.DeviceStatus) models.NodeStatus {
	switch status {
	case models.DeviceStatusOK:
		return models.NodeStatusOK
	case models.DeviceStatusAlarm:
		return models.NodeStatusWarning
	case models.DeviceStatusDown, models.DeviceStatusFault:
		return models.NodeStatusCritical
	default:
		return models.NodeStatusUnknown
	}
}

func entityStatus(id string, health map[string]models.EntityHealth) models.NodeStatus {
	h, ok := health[id]
	if !ok {
		return models.NodeStatusUnknown
	}

	switch h.Classification {
	case models.HealthCritical:
		return models.NodeStatusCritical
	case models.HealthWarning:
		return models.NodeStatusWarning
	default:
		return models.NodeStatusOK
	}
}

func mergeProtocols(into map[string]int, children []models.TopologyNode) {
	for _, c := range children {
		for proto, count := range c.Protocols {
			into[proto] += count
		}
	}
}
