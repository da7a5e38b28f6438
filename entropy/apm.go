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

// apm (adaptive probability map, a.k.a. secondary symbol estimation) maps a
// probability and a context into a refined probability that the next bit is
// 1. Each of its N contexts owns 33 entries forming a piecewise-linear
// function over the stretched input probability. Context 0 is initialized
// to the identity logistic; contexts 1..N-1 copy context 0.
//
// Like stateMap, training lags one call behind: p trains the previously
// returned index pair before computing the new one.
type apm struct {
	index int
	n     int
	t     []int32 // [n][33]: p, context -> p
}

func newAPM(n int) *apm {
	this := new(apm)
	this.n = n
	this.t = make([]int32, n*33)

	for i := 0; i < n; i++ {
		for j := 0; j < 33; j++ {
			if i == 0 {
				this.t[j] = int32(cmix.Squash((j-16)*128) * 16)
			} else {
				this.t[i*33+j] = this.t[j]
			}
		}
	}

	return this
}

// p refines pr in context cx. rate controls the learning rate: smaller is
// faster, default 7. pr must be in [0,4095], cx in [0,n), rate in (0,32).
func (this *apm) p(y int, pr int, cx int, rate uint) int {
	g := int32((y << 16) + (y << rate) - y - y)
	this.t[this.index] += (g - this.t[this.index]) >> rate
	this.t[this.index+1] += (g - this.t[this.index+1]) >> rate

	s := cmix.Stretch(pr)
	w := s & 127 // interpolation weight (33 points)
	this.index = ((s + 2048) >> 7) + cx*33
	return int((this.t[this.index]*int32(128-w) + this.t[this.index+1]*int32(w)) >> 11)
}
