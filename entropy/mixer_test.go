/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMixerProbabilityRange(t *testing.T) {
	m := newMixer(8, 4, 1, 0)

	for i := 0; i < 1000; i++ {
		m.add(1500)
		m.add(-700)
		m.add(300)
		m.add(0)
		m.add(100)
		m.add(-100)
		m.add(200)
		m.add(-200)
		m.set(0, 4)
		p := m.p()
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 4095)
		m.update(i & 1)
	}
}

func TestMixerWeightsStayClamped(t *testing.T) {
	m := newMixer(8, 1, 1, 32767)

	for i := 0; i < 5000; i++ {
		m.add(2047)
		m.add(2047)
		m.add(2047)
		m.add(2047)
		m.add(2047)
		m.add(2047)
		m.add(2047)
		m.add(2047)
		m.set(0, 1)
		m.p()
		m.update(0)

		for _, w := range m.wx {
			assert.LessOrEqual(t, w, int32(32767))
			assert.GreaterOrEqual(t, w, int32(-32768))
		}
	}
}

// TestMixerOfMixers exercises the S > 1 path, where a child mixer combines
// the per-context-set outputs of the parent.
func TestMixerOfMixers(t *testing.T) {
	m := newMixer(8, 24, 3, 0)
	assert.NotNil(t, m.child)

	for i := 0; i < 500; i++ {
		for j := 0; j < 8; j++ {
			m.add(int32(100 * (j%2*2 - 1)))
		}

		m.set(0, 8)
		m.set(1, 8)
		m.set(2, 8)
		p := m.p()
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 4095)
		m.update(1)
	}
}
