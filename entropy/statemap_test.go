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

func TestStateMapConvergesTowardOne(t *testing.T) {
	sm := newStateMap()
	prev := 0

	for i := 0; i < 4000; i++ {
		p := sm.p(1, 5)

		if i > 0 {
			assert.GreaterOrEqual(t, p, prev)
		}

		prev = p
	}

	assert.Greater(t, prev, 3800)
}

func TestStateMapConvergesTowardZero(t *testing.T) {
	sm := newStateMap()
	prev := 4095

	for i := 0; i < 4000; i++ {
		p := sm.p(0, 5)

		if i > 0 {
			assert.LessOrEqual(t, p, prev)
		}

		prev = p
	}

	assert.Less(t, prev, 300)
}
