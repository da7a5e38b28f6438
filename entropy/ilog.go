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

// ilogTable holds ilog(x) = round(16*log2(x)) for x in [0, 65535], computed
// once by numerical integration of 1/x.
var ilogTable [65536]uint8

func init() {
	x := uint32(14155776)

	for i := 2; i < 65536; i++ {
		x += 774541002 / uint32(i*2-1) // numerator is 2^29/ln 2
		ilogTable[i] = uint8(x >> 24)
	}
}

// ilog returns round(16*log2(x)) for x in [0, 65535].
func ilog(x uint16) int {
	return int(ilogTable[x])
}

// llog extends ilog to a full 32-bit argument by dispatching on the
// high-order octets of x.
func llog(x uint32) int {
	if x >= 0x1000000 {
		return 256 + ilog(uint16(x>>16))
	}

	if x >= 0x10000 {
		return 128 + ilog(uint16(x>>8))
	}

	return ilog(uint16(x))
}
