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

import "github.com/pkg/errors"

// apmRate is the learning rate shared by every APM in the cascade; smaller
// values adapt faster.
const apmRate = 7

// minMemBits and maxMemBits bound the memory-budget exponent accepted by
// NewPredictorWithMemory: below minMemBits the hash tables collide too often to be
// useful, above maxMemBits a single predictor instance would dominate most
// hosts' address space.
const (
	minMemBits = 16
	maxMemBits = 26
)

// Predictor is the top-level context-mixing bitwise predictor. It owns the
// global bit/byte context, the contextModel2 ensemble and a 3+3-round APM
// cascade that refines the ensemble's probability before it is returned.
type Predictor struct {
	ctx *sharedContext
	cm2 *contextModel2

	a  *apm // primary, keyed on c0 alone
	a1 *apm // keyed on c0 and the previous byte
	a2 *apm // keyed on c0 and a hash of the previous 2 bytes
	a3 *apm // keyed on c0 and a hash of the previous 3 bytes
	a4 *apm // second round, refines a's output keyed on c0 and buf(1)
	a5 *apm // second round, keyed on c0 and hash(buf(1),buf(2))
	a6 *apm // second round, keyed on c0 and hash(buf(1),buf(2),buf(3))

	pr int
}

// defaultMemBits is the memory-budget exponent used by NewPredictor.
const defaultMemBits = 20

// NewPredictor constructs a predictor sized to the default memory budget.
func NewPredictor() *Predictor {
	this, err := NewPredictorWithMemory(defaultMemBits)

	if err != nil {
		panic(err)
	}

	return this
}

// NewPredictorWithMemory constructs a predictor whose hash-backed tables
// (the ContextMap, the RunContextMaps and the byte ring buffer) are sized
// off 1<<memBits bytes. memBits must fall within [minMemBits, maxMemBits];
// picModel's longest back-reference (647 bytes) additionally requires the
// ring buffer to hold at least that many committed bytes, which the lower
// bound already guarantees.
func NewPredictorWithMemory(memBits uint) (*Predictor, error) {
	if memBits < minMemBits || memBits > maxMemBits {
		return nil, errors.Errorf("memory budget must be between %d and %d bits, got %d", minMemBits, maxMemBits, memBits)
	}

	mem := 1 << memBits

	this := new(Predictor)
	this.ctx = newSharedContext(mem)
	this.cm2 = newContextModel2(this.ctx, mem)

	this.a = newAPM(256)
	this.a1 = newAPM(0x10000)
	this.a2 = newAPM(0x10000)
	this.a3 = newAPM(0x10000)
	this.a4 = newAPM(0x10000)
	this.a5 = newAPM(0x10000)
	this.a6 = newAPM(0x10000)

	this.pr = 2048
	return this, nil
}

// Get returns the probability, scaled to [0, 4095], that the next bit is 1.
func (this *Predictor) Get() int {
	return this.pr
}

// Update folds the observed bit into the global context, runs the ensemble,
// and refines its output through a primary APM and two rounds of three APMs
// each: the first round is averaged with the ensemble's estimate, the second
// with the primary APM's output, and the two averages are then blended.
func (this *Predictor) Update(bit byte) {
	this.ctx.update(int(bit))

	c0 := this.ctx.c0
	c1 := uint32(this.ctx.b(1))
	c2 := uint32(this.ctx.b(2))
	c3 := uint32(this.ctx.b(3))
	y := this.ctx.y

	pr0 := this.cm2.p()

	this.pr = this.a.p(y, pr0, c0, apmRate)

	pr1 := this.a1.p(y, pr0, c0+256*int(c1), apmRate)
	pr2 := this.a2.p(y, pr0, c0^int(hashCombine(c1, c2, 0xffffffff, 0xffffffff, 0xffffffff)&0xffff), apmRate)
	pr3 := this.a3.p(y, pr0, c0^int(hashCombine(c1, c2, c3, 0xffffffff, 0xffffffff)&0xffff), apmRate)
	pr0 = (pr0 + pr1 + pr2 + pr3 + 2) >> 2

	pr1 = this.a4.p(y, this.pr, c0+256*int(c1), apmRate)
	pr2 = this.a5.p(y, this.pr, c0^int(hashCombine(c1, c2, 0xffffffff, 0xffffffff, 0xffffffff)&0xffff), apmRate)
	pr3 = this.a6.p(y, this.pr, c0^int(hashCombine(c1, c2, c3, 0xffffffff, 0xffffffff)&0xffff), apmRate)
	this.pr = (this.pr + pr1 + pr2 + pr3 + 2) >> 2

	this.pr = (this.pr + pr0 + 1) >> 1
}
