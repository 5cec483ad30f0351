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

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedSnapshot is the sentinel wrapped by every snapshot
// validation failure.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// ValidationError names the offending field of a malformed snapshot.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: field %q: %s", ErrMalformedSnapshot, e.Field, e.Reason)
}

func (*ValidationError) Unwrap() error {
	return ErrMalformedSnapshot
}

// Validate rejects malformed snapshots before any scoring begins. Missing
// optional blocks are never an error; missing identifiers and negative
// counts are.
func (s *SystemSnapshot) Validate() error {
	if s.Supervisor != nil {
		if err := s.Supervisor.validate("supervisor"); err != nil {
			return err
		}
	}

	// Sorted traversal keeps the reported field stable when several
	// entities are malformed.
	names := make([]string, 0, len(s.Entities))
	for name := range s.Entities {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		entity := s.Entities[name]
		if err := entity.validate("entities." + name); err != nil {
			return err
		}
	}

	return nil
}

func (e *EntitySnapshot) validate(path string) error {
	if e.ID == "" {
		return &ValidationError{Field: path + ".id", Reason: "missing identifier"}
	}

	if e.Metrics != nil {
		if err := e.Metrics.validate(path + ".metrics"); err != nil {
			return err
		}
	}

	if e.Resources != nil {
		if err := e.Resources.validate(path + ".resources"); err != nil {
			return err
		}
	}

	protos := make([]string, 0, len(e.Drivers))
	for proto := range e.Drivers {
		protos = append(protos, proto)
	}

	sort.Strings(protos)

	for _, proto := range protos {
		summary := e.Drivers[proto].Summary
		if summary == nil {
			continue
		}

		if summary.Total < 0 || summary.Healthy < 0 || summary.Faulty < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("%s.drivers.%s.summary", path, proto),
				Reason: "negative count",
			}
		}
	}

	return nil
}

func (r *CurrentResources) validate(path string) error {
	if r.Licenses == nil {
		return nil
	}

	if err := r.Licenses.Devices.validate(path + ".licenses.devices"); err != nil {
		return err
	}

	return r.Licenses.Points.validate(path + ".licenses.points")
}

func (c *LicenseCounter) validate(path string) error {
	if c == nil {
		return nil
	}

	if c.Used != nil && *c.Used < 0 {
		return &ValidationError{Field: path + ".used", Reason: "negative count"}
	}

	if c.Limit != nil && *c.Limit < 0 {
		return &ValidationError{Field: path + ".limit", Reason: "negative count"}
	}

	return nil
}

func (m *LegacyResources) validate(path string) error {
	counts := map[string]*int{
		"device_count": m.DeviceCount,
		"device_limit": m.DeviceLimit,
		"point_count":  m.PointCount,
		"point_limit":  m.PointLimit,
	}

	// Stable iteration keeps the reported field deterministic.
	for _, field := range []string{"device_count", "device_limit", "point_count", "point_limit"} {
		if v := counts[field]; v != nil && *v < 0 {
			return &ValidationError{Field: path + "." + field, Reason: "negative count"}
		}
	}

	return nil
}
