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

// Package snapshot loads SystemSnapshot documents produced by an export
// provider. Export tooling has wrapped the snapshot under a few different
// top-level keys over time; this loader locates the snapshot body before
// decoding it into the typed model.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/carverauto/siteradar/pkg/models"
)

var (
	ErrNotJSON     = errors.New("document is not valid JSON")
	ErrNoSnapshot  = errors.New("document contains no snapshot body")
	ErrDecodeShape = errors.New("failed to decode snapshot body")
)

// Wrapper keys observed in export documents, probed in order. The root
// object itself is the final fallback.
var wrapperPaths = []string{"snapshot", "export.system", "system"}

// LoadFile reads and parses one export document.
func LoadFile(path string) (*models.SystemSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file %q: %w", path, err)
	}

	return Parse(data)
}

// Parse locates the snapshot body in an export document and decodes it.
// The body is recognized by carrying a "supervisor" or "entities" key.
func Parse(data []byte) (*models.SystemSnapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrNotJSON
	}

	body := locateBody(data)
	if !body.Exists() {
		return nil, ErrNoSnapshot
	}

	var snap models.SystemSnapshot
	if err := json.Unmarshal([]byte(body.Raw), &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeShape, err)
	}

	return &snap, nil
}

func locateBody(data []byte) gjson.Result {
	for _, path := range wrapperPaths {
		body := gjson.GetBytes(data, path)
		if isSnapshotBody(body) {
			return body
		}
	}

	root := gjson.ParseBytes(data)
	if isSnapshotBody(root) {
		return root
	}

	return gjson.Result{}
}

func isSnapshotBody(v gjson.Result) bool {
	if !v.IsObject() {
		return false
	}

	return v.Get("supervisor").Exists() || v.Get("entities").Exists()
}
