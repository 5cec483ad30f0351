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

package models

// NodeKind identifies the level of a topology node.
type NodeKind string

const (
	NodeKindSupervisor NodeKind = "supervisor"
	NodeKindJACE       NodeKind = "jace"
	NodeKindDevice     NodeKind = "device"
)

// NodeStatus is the rolled-up severity of a topology node.
type NodeStatus string

const (
	NodeStatusCritical NodeStatus = "critical"
	NodeStatusWarning  NodeStatus = "warning"
	NodeStatusOK       NodeStatus = "ok"
	NodeStatusUnknown  NodeStatus = "unknown"
)

// nodeStatusRank orders statuses worst-first: critical > warning > ok > unknown.
func nodeStatusRank(s NodeStatus) int {
	switch s {
	case NodeStatusCritical:
		return 3
	case NodeStatusWarning:
		return 2
	case NodeStatusOK:
		return 1
	default:
		return 0
	}
}

// WorseNodeStatus returns the more severe of two node statuses.
func WorseNodeStatus(a, b NodeStatus) NodeStatus {
	if nodeStatusRank(b) > nodeStatusRank(a) {
		return b
	}

	return a
}

// TopologyNode is one entry in the aggregated network tree. Children are
// owned by value; the tree holds no back-references and no cycles.
type TopologyNode struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Kind        NodeKind       `json:"kind"`
	Status      NodeStatus     `json:"status"`
	DeviceCount int            `json:"device_count"`
	Protocols   map[string]int `json:"protocols,omitempty"`
	Children    []TopologyNode `json:"children,omitempty"`
}

// HealthSummary counts every device-level node into exactly one of four
// mutually exclusive buckets.
type HealthSummary struct {
	Healthy  int `json:"healthy"`
	Degraded int `json:"degraded"`
	Offline  int `json:"offline"`
	Unknown  int `json:"unknown"`
}
