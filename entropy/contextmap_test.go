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

func TestContextMapMixStaysInRange(t *testing.T) {
	ctx := newSharedContext(1 << 16)
	cm := newContextMap(ctx, 1<<16, 1)
	m := newMixer(8, 1, 1, 0)

	for b := 0; b < 64; b++ {
		byt := byte(b * 7)

		for i := 7; i >= 0; i-- {
			if ctx.bpos == 0 {
				cm.set(ctx.c4)
			}

			m.set(0, 1)
			cm.mix(m)
			p := m.p()
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 4095)
			y := int((byt >> uint(i)) & 1)
			m.update(y)
			ctx.update(y)
		}
	}
}

func TestContextMapResetsSlotCounterOnByteBoundary(t *testing.T) {
	ctx := newSharedContext(1 << 16)
	cm := newContextMap(ctx, 1<<16, 2)
	m := newMixer(16, 2, 2, 0)

	for bit := 0; bit < 16; bit++ {
		if ctx.bpos == 0 {
			cm.set(1)
			cm.set(2)
		}

		m.set(0, 1)
		m.set(0, 1)
		cm.mix(m)
		m.p()
		m.update(bit & 1)
		ctx.update(bit & 1)

		if ctx.bpos == 0 {
			assert.Equal(t, 0, cm.cn)
		}
	}
}

// TestContextMapTrainsRunModelOnPreviousContextRow guards against training
// the run count into the row just fetched for the new context instead of
// the row that belonged to the byte which just completed.
func TestContextMapTrainsRunModelOnPreviousContextRow(t *testing.T) {
	ctx := newSharedContext(1 << 16)
	cm := newContextMap(ctx, 1<<16, 1)
	m := newMixer(8, 1, 1, 0)

	cm.set(100)

	for i := 7; i >= 0; i-- {
		m.set(0, 1)
		cm.mix(m)
		m.p()
		m.update(1)
		ctx.update(1)
	}

	oldRow := cm.contexts[0].row

	cm.set(200)
	m.set(0, 1)
	cm.mix(m)
	m.p()

	assert.Equal(t, uint8(2), oldRow[3], "run count must train the row fetched for the byte that just completed")
	assert.Equal(t, uint8(0xff), oldRow[4])

	newRow := cm.contexts[0].row
	assert.True(t, &oldRow[0] != &newRow[0], "a new context must fetch a different row than the one it trains on the byte boundary")
}

func TestBucketGetMatchesOnChecksum(t *testing.T) {
	var b cmBucket
	row := b.get(42)
	row[0] = 5
	row2 := b.get(42)
	assert.Equal(t, uint8(5), row2[0])

	row3 := b.get(99)
	assert.Equal(t, uint8(0), row3[0])
}
