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

func TestAPMConvergesTowardObservedBit(t *testing.T) {
	a := newAPM(4)
	p := 2048

	for i := 0; i < 4000; i++ {
		p = a.p(1, p, 2, 7)
	}

	assert.Greater(t, p, 3900)

	a2 := newAPM(4)
	p2 := 2048

	for i := 0; i < 4000; i++ {
		p2 = a2.p(0, p2, 2, 7)
	}

	assert.Less(t, p2, 200)
}

// TestAPMContextsAreIndependent drives context 0 toward 1 and context 1
// toward 0 in two back-to-back blocks (not interleaved: the APM trains
// whichever slot its internal index last pointed at, so alternating
// contexts every call would contaminate both with each other's bit).
func TestAPMContextsAreIndependent(t *testing.T) {
	a := newAPM(2)
	p0, p1 := 2048, 2048

	for i := 0; i < 2000; i++ {
		p0 = a.p(1, p0, 0, 7)
	}

	for i := 0; i < 2000; i++ {
		p1 = a.p(0, p1, 1, 7)
	}

	assert.Greater(t, p0, 3000)
	assert.Less(t, p1, 1000)
}
