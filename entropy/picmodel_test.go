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

// TestPicModelProducesBoundedLogits exercises picModel as a standalone
// reference model: own rolling context, own state table, trained after the
// fact on y and contributing logits to a Mixer.
func TestPicModelProducesBoundedLogits(t *testing.T) {
	ctx := newSharedContext(1 << 16)
	pm := newPicModel(ctx)
	m := newMixer(8, 1, 1, 0)

	for byt := 0; byt < 2000; byt++ {
		for i := 7; i >= 0; i-- {
			y := (byt >> uint(i)) & 1
			pm.mix(m)
			m.set(0, 1)
			p := m.p()
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 4095)
			m.update(y)
			ctx.update(y)
		}
	}
}
