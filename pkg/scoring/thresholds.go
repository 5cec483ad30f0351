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

// Thresholds carries every tunable of the health scorer. Zero values are
// replaced by the defaults at scorer construction, so a config file only
// needs to name the fields it overrides.
type Thresholds struct {
	BACnetHealthyPct  float64 `json:"bacnet_healthy_pct"`
	BACnetCriticalPct float64 `json:"bacnet_critical_pct"`
	BACnetWeight      float64 `json:"bacnet_weight"`

	N2OnlinePct   float64 `json:"n2_online_pct"`
	N2CriticalPct float64 `json:"n2_critical_pct"`
	N2Weight      float64 `json:"n2_weight"`

	CPUPct         float64 `json:"cpu_pct"`
	CPUCriticalPct float64 `json:"cpu_critical_pct"`
	CPUWeight      float64 `json:"cpu_weight"`

	HeapPct         float64 `json:"heap_pct"`
	HeapCriticalPct float64 `json:"heap_critical_pct"`
	HeapWeight      float64 `json:"heap_weight"`

	DeviceLicensePct    float64 `json:"device_license_pct"`
	DeviceLicenseWeight float64 `json:"device_license_weight"`
}

// DefaultThresholds returns the stock deduction thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BACnetHealthyPct:  80,
		BACnetCriticalPct: 60,
		BACnetWeight:      0.5,

		N2OnlinePct:   85,
		N2CriticalPct: 70,
		N2Weight:      0.3,

		CPUPct:         80,
		CPUCriticalPct: 90,
		CPUWeight:      0.5,

		HeapPct:         75,
		HeapCriticalPct: 90,
		HeapWeight:      0.3,

		DeviceLicensePct:    90,
		DeviceLicenseWeight: 0.2,
	}
}

// withDefaults fills zero-valued fields from the stock thresholds.
func (t Thresholds) withDefaults() Thresholds {
	def := DefaultThresholds()

	fill := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}

	fill(&t.BACnetHealthyPct, def.BACnetHealthyPct)
	fill(&t.BACnetCriticalPct, def.BACnetCriticalPct)
	fill(&t.BACnetWeight, def.BACnetWeight)
	fill(&t.N2OnlinePct, def.N2OnlinePct)
	fill(&t.N2CriticalPct, def.N2CriticalPct)
	fill(&t.N2Weight, def.N2Weight)
	fill(&t.CPUPct, def.CPUPct)
	fill(&t.CPUCriticalPct, def.CPUCriticalPct)
	fill(&t.CPUWeight, def.CPUWeight)
	fill(&t.HeapPct, def.HeapPct)
	fill(&t.HeapCriticalPct, def.HeapCriticalPct)
	fill(&t.HeapWeight, def.HeapWeight)
	fill(&t.DeviceLicensePct, def.DeviceLicensePct)
	fill(&t.DeviceLicenseWeight, def.DeviceLicenseWeight)

	return t
}
