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

package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotBody = `{
	"supervisor": {"id": "sup-1", "name": "Supervisor"},
	"entities": {
		"jace-1": {
			"id": "jace-1",
			"name": "JACE 1",
			"resources": {"cpu": {"usage_percent": 42.5}},
			"drivers": {
				"BACnetNetwork": {
					"devices": [{"name": "ahu-1", "raw_status": "ONLINE"}]
				}
			}
		}
	}
}`

func TestParseRootBody(t *testing.T) {
	snap, err := Parse([]byte(snapshotBody))

	require.NoError(t, err)
	require.NotNil(t, snap.Supervisor)
	assert.Equal(t, "sup-1", snap.Supervisor.ID)

	jace, ok := snap.Entities["jace-1"]
	require.True(t, ok)
	require.NotNil(t, jace.Resources)
	require.NotNil(t, jace.Resources.CPU)
	assert.InDelta(t, 42.5, *jace.Resources.CPU.UsagePercent, 0.001)

	require.Len(t, jace.Drivers["BACnetNetwork"].Devices, 1)
	assert.Equal(t, "ONLINE", jace.Drivers["BACnetNetwork"].Devices[0].RawStatus)
}

func TestParseWrappedBodies(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"snapshot wrapper", `{"snapshot": ` + snapshotBody + `}`},
		{"export.system wrapper", `{"export": {"system": ` + snapshotBody + `}}`},
		{"system wrapper", `{"system": ` + snapshotBody + `}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Parse([]byte(tt.doc))

			require.NoError(t, err)
			require.NotNil(t, snap.Supervisor)
			assert.Equal(t, "sup-1", snap.Supervisor.ID)
		})
	}
}

func TestParseEntitiesOnlyBody(t *testing.T) {
	snap, err := Parse([]byte(`{"entities": {"jace-1": {"id": "jace-1", "name": "JACE 1"}}}`))

	require.NoError(t, err)
	assert.Nil(t, snap.Supervisor)
	assert.Len(t, snap.Entities, 1)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"invalid json", `{not json`, ErrNotJSON},
		{"no snapshot body", `{"customers": []}`, ErrNoSnapshot},
		{"array document", `[1, 2, 3]`, ErrNoSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Parse([]byte(tt.doc))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, snap)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotBody), 0o600))

	snap, err := LoadFile(path)

	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "sup-1", snap.Supervisor.ID)
	require.NoError(t, snap.Validate())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
