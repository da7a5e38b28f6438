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

// smallStationaryContextMap directly indexes a flat table of 16-bit
// probabilities by (cx*256 + c0). Context must be smaller than size/256;
// high bits of cx are discarded.
type smallStationaryContextMap struct {
	ctx  *sharedContext
	t    []int32
	size int
	cxt  int
	cp   int // index into t of the currently pointed probability
}

func newSmallStationaryContextMap(ctx *sharedContext, m int) *smallStationaryContextMap {
	this := new(smallStationaryContextMap)
	this.ctx = ctx
	this.size = m / 2
	this.t = make([]int32, this.size)

	for i := range this.t {
		this.t[i] = 32768
	}

	return this
}

func (this *smallStationaryContextMap) set(cx uint32) {
	this.cxt = int(cx)*256 & (this.size - 256)
}

// mix trains the previously pointed probability, re-points at the slot for
// the current partial byte, and feeds the mixer.
func (this *smallStationaryContextMap) mix(m *mixer, rate uint) {
	y := this.ctx.y
	this.t[this.cp] += ((int32(y<<16) - this.t[this.cp]) + (1 << (rate - 1))) >> rate
	this.cp = this.cxt + this.ctx.c0
	m.add(int32(cmix.Stretch(int(this.t[this.cp] >> 4))))
}
