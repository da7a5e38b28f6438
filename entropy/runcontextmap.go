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

// runContextMap maps a whole-byte context to the last byte seen in that
// context and a repeat count, up to 255. Memory usage is proportional to
// m/4 elements of 4 bytes each (2-byte checksum, count, byte).
type runContextMap struct {
	ctx *sharedContext
	t   *bh
	cp  []byte // current element: cp[0] = count, cp[1] = byte
}

func newRunContextMap(ctx *sharedContext, m int) *runContextMap {
	this := new(runContextMap)
	this.ctx = ctx
	this.t = newBH(m/4, 2)
	this.cp = this.t.get(0)
	return this
}

// set records the outcome for the context just finished and repoints cp at
// the bucket for the new context cx.
func (this *runContextMap) set(cx uint32) {
	last := byte(this.ctx.b(1))

	if this.cp[0] == 0 || this.cp[1] != last {
		this.cp[0] = 1
		this.cp[1] = last
	} else if this.cp[0] < 255 {
		this.cp[0]++
	}

	this.cp = this.t.get(cx)
}

// p predicts the next bit from the remembered byte and repeat count.
func (this *runContextMap) p() int {
	c0 := this.ctx.c0
	bpos := uint(this.ctx.bpos)

	if (int(this.cp[1])+256)>>(8-bpos) == c0 {
		sign := (int(this.cp[1])>>(7-bpos)&1)*2 - 1
		return sign * ilog(uint16(this.cp[0])+1) * 8
	}

	return 0
}

// mix pushes the run prediction into m and reports whether the context has
// been seen before.
func (this *runContextMap) mix(m *mixer) bool {
	m.add(int32(this.p()))
	return this.cp[0] != 0
}
