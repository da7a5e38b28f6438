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

// mixer combines up to N logit-domain inputs using M sets of weights, of
// which up to S may be selected per bit. If S > 1 the S per-context outputs
// are combined by a child mixer(S, 1, 1); if S == 1 the output is direct.
//
// Usage per bit:
//
//	m.add(x)       // call up to N times, logit inputs
//	m.set(cx, rng) // call up to S times, select a weight-column context
//	m.p()          // returns a 12-bit probability
//	m.update(y)    // trains towards the observed bit, resets nx/base/ncxt
type mixer struct {
	n, m, s int
	tx      []int32 // N inputs from add()
	wx      []int32 // N*M weights
	cxt     []int   // S contexts
	ncxt    int     // number of contexts set (0 to S)
	base    int     // offset of next context
	nx      int     // number of inputs in tx (0 to N)
	pr      []int   // last result per context set, scaled 12 bits
	child   *mixer  // combines S outputs when S > 1
	lastY   int     // most recently observed bit, for training the child
}

func newMixer(n, m, s int, w int32) *mixer {
	this := new(mixer)
	this.n = (n + 7) &^ 7
	this.m = m
	this.s = s
	this.tx = make([]int32, this.n)
	this.wx = make([]int32, this.n*m)
	this.cxt = make([]int, s)
	this.pr = make([]int, s)

	for i := 0; i < s; i++ {
		this.pr[i] = 2048
	}

	for i := range this.wx {
		this.wx[i] = w
	}

	if s > 1 {
		this.child = newMixer(s, 1, 1, 0x7fff)
	}

	return this
}

// add pushes a logit-domain input, nominally +-256 to +-2048, hard ceiling
// +-32767.
func (this *mixer) add(x int32) {
	this.tx[this.nx] = x
	this.nx++
}

// set selects cx as one of range weight columns. May be called up to S
// times per bit; the sum of declared ranges must not exceed M.
func (this *mixer) set(cx int, rng int) {
	this.cxt[this.ncxt] = this.base + cx
	this.ncxt++
	this.base += rng
}

// dotProduct computes t . w over n elements (n rounded up to a multiple of
// 8), scaled down by 8 bits.
func dotProduct(t, w []int32, n int) int32 {
	n = (n + 7) &^ 7
	sum := int32(0)

	for i := 0; i < n; i += 2 {
		sum += (t[i]*w[i] + t[i+1]*w[i+1]) >> 8
	}

	return sum
}

// trainWeights adjusts w[0..n) given inputs t[0..n) and scaled error err,
// clamping every weight to [-32768, 32767].
func trainWeights(t, w []int32, n int, err int32) {
	n = (n + 7) &^ 7

	for i := 0; i < n; i++ {
		wt := w[i] + (((t[i]*err*2)>>16 + 1) >> 1)

		if wt < -32768 {
			wt = -32768
		}

		if wt > 32767 {
			wt = 32767
		}

		w[i] = wt
	}
}

// p pads inputs to a multiple of 8 and returns the mixed 12-bit probability.
func (this *mixer) p() int {
	for this.nx&7 != 0 {
		this.tx[this.nx] = 0
		this.nx++
	}

	if this.child != nil {
		this.child.update(this.lastY)

		for i := 0; i < this.ncxt; i++ {
			d := dotProduct(this.tx, this.wx[this.cxt[i]*this.n:], this.nx) >> 5
			this.pr[i] = cmix.Squash(int(d))
			this.child.add(int32(cmix.Stretch(this.pr[i])))
		}

		this.child.set(0, 1)
		return this.child.p()
	}

	d := dotProduct(this.tx, this.wx, this.nx) >> 8
	this.pr[0] = cmix.Squash(int(d))
	return this.pr[0]
}

// update trains every active context set towards the observed bit y, then
// resets nx, base and ncxt for the next bit.
func (this *mixer) update(y int) {
	for i := 0; i < this.ncxt; i++ {
		err := int32((y<<12)-this.pr[i]) * 7
		trainWeights(this.tx, this.wx[this.cxt[i]*this.n:], this.nx, err)
	}

	this.lastY = y
	this.nx, this.base, this.ncxt = 0, 0, 0
}
