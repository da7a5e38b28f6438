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

import cmix "github.com/paqlab/cmix"

// picModel predicts a 1-bit-per-pixel scanned image: three contexts built
// from the pixels directly above and to the left of the one being coded,
// rolled across four scanline accumulators (current row and the three
// preceding it, 215/431/647 bytes back for a 1728-pixel-wide row). It is a
// template for a specialized model: own rolling context, own state and
// StateMaps, train after the fact on the observed bit, contribute logits to
// a Mixer.
type picModel struct {
	ctx            *sharedContext
	r0, r1, r2, r3 uint32
	t              []uint8
	cxt            [3]int
	sm             [3]*stateMap
}

func newPicModel(ctx *sharedContext) *picModel {
	this := new(picModel)
	this.ctx = ctx
	this.t = make([]uint8, 0x10200)

	for i := range this.sm {
		this.sm[i] = newStateMap()
	}

	return this
}

// mix trains the previous round's three states on the observed bit, rolls
// the scanline accumulators, derives the three new contexts and emits one
// logit per context.
func (this *picModel) mix(m *mixer) {
	y := this.ctx.y
	bpos := this.ctx.bpos

	for i := range this.cxt {
		this.t[this.cxt[i]] = nextState(this.t[this.cxt[i]], y)
	}

	this.r0 += this.r0 + uint32(y)
	this.r1 += this.r1 + uint32((this.ctx.b(215)>>(7-bpos))&1)
	this.r2 += this.r2 + uint32((this.ctx.b(431)>>(7-bpos))&1)
	this.r3 += this.r3 + uint32((this.ctx.b(647)>>(7-bpos))&1)

	r0, r1, r2, r3 := this.r0, this.r1, this.r2, this.r3

	this.cxt[0] = int((r0 & 0x7) | ((r1 >> 4) & 0x38) | ((r2 >> 3) & 0xc0))
	this.cxt[1] = 0x100 + int((r0&1)|((r1>>4)&0x3e)|((r2>>2)&0x40)|((r3>>1)&0x80))
	this.cxt[2] = 0x200 + int((r0&0x3f)^(r1&0x3ffe)^((r2<<2)&0x7f00)^((r3<<5)&0xf800))

	for i := range this.cxt {
		p := this.sm[i].p(y, this.t[this.cxt[i]])
		m.add(int32(cmix.Stretch(p)))
	}
}
