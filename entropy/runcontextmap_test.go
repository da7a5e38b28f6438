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

func TestRunContextMapTracksRepeatedByte(t *testing.T) {
	ctx := newSharedContext(1 << 12)
	rcm := newRunContextMap(ctx, 1<<12)
	m := newMixer(8, 1, 1, 0)

	for i := 0; i < 40; i++ {
		for b := 7; b >= 0; b-- {
			y := int((0x37 >> uint(b)) & 1)
			seen := rcm.mix(m)

			if i > 4 {
				assert.True(t, seen, "byte 0x37 should be recognized as a repeat after a few occurrences")
			}

			m.p()
			m.update(y)
			ctx.update(y)
		}

		rcm.set(ctx.c4)
	}
}
