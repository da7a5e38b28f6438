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

// contextModel2 is the ensemble driver: one "all-orders" ContextMap spanning
// 9 independently-hashed contexts, three RunContextMaps (rcm7, rcm9 and
// rcm10, fed the order 7, 10 and 12 hashes), and a Mixer with room for 7
// weight sets of which 6 are selected per bit. It folds the order 0-15 hash
// chain on every byte boundary and feeds every model's verdict to the mixer
// before returning the mixed probability.
type contextModel2 struct {
	ctx   *sharedContext
	cm    *contextMap
	rcm7  *runContextMap
	rcm9  *runContextMap
	rcm10 *runContextMap
	mx    *mixer
	cxt   [16]uint32 // order 0-15 context hashes; cxt[0] stays 0 (order 0)
}

// newContextModel2 sizes every hash-backed table off mem, the caller's
// memory-budget unit; raising it trades memory for fewer collisions.
func newContextModel2(ctx *sharedContext, mem int) *contextModel2 {
	this := new(contextModel2)
	this.ctx = ctx
	this.cm = newContextMap(ctx, mem*32, 9)
	this.rcm7 = newRunContextMap(ctx, mem)
	this.rcm9 = newRunContextMap(ctx, mem)
	this.rcm10 = newRunContextMap(ctx, mem)
	this.mx = newMixer(800, 3088, 7, 128)
	return this
}

func (this *contextModel2) p() int {
	c0 := this.ctx.c0
	c4 := this.ctx.c4
	bpos := this.ctx.bpos

	this.mx.update(this.ctx.y)
	this.mx.add(256)

	if bpos == 0 {
		for i := 15; i > 0; i-- {
			this.cxt[i] = this.cxt[i-1]*257 + (c4 & 255) + 1
		}

		for i := 0; i < 7; i++ {
			this.cm.set(this.cxt[i])
		}

		this.rcm7.set(this.cxt[7])
		this.cm.set(this.cxt[8])
		this.rcm9.set(this.cxt[10])
		this.rcm10.set(this.cxt[12])
		this.cm.set(this.cxt[14])
	}

	order := this.cm.mix(this.mx)

	this.rcm7.mix(this.mx)
	this.rcm9.mix(this.mx)
	this.rcm10.mix(this.mx)

	order -= 2

	if order < 0 {
		order = 0
	}

	c1 := this.ctx.b(1)
	c2 := this.ctx.b(2)
	c3 := this.ctx.b(3)

	c1eqc2 := 0
	if c1 == c2 {
		c1eqc2 = 1
	}

	this.mx.set(c1+8, 264)
	this.mx.set(c0, 256)
	this.mx.set(order+8*(int(c4>>5)&7)+64*c1eqc2, 256)
	this.mx.set(c2, 256)
	this.mx.set(c3, 256)

	var c int

	if bpos != 0 {
		c = c0 << uint(8-bpos)

		if bpos == 1 {
			c += c3 / 2
		}

		min5 := bpos
		if min5 > 5 {
			min5 = 5
		}

		c = min5*256 + c1/32 + 8*(c2/32) + (c & 192)
	} else {
		c = c3/128 + int(c4>>31)*2 + 4*(c2/64) + (c1 & 240)
	}

	this.mx.set(c, 1536)

	return this.mx.p()
}
