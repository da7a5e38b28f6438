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

package cmix

// array with 33 elements: 4096/(1 + exp(-alpha*x))
var _SQUASH_ANCHORS = [33]int{
	1, 2, 3, 6, 10, 16, 27, 45, 73, 120, 194, 310, 488, 747, 1101,
	1546, 2047, 2549, 2994, 3348, 3607, 3785, 3901, 3975, 4022,
	4050, 4068, 4079, 4085, 4089, 4092, 4093, 4094,
}

// SQUASH contains p = 1/(1 + exp(-d)), d scaled by 8 bits, p scaled by 12 bits
var SQUASH [4096]int

// STRETCH is the inverse of squash. d = ln(p/(1-p)), d scaled by 8 bits, p by 12 bits.
// d has range -2047 to 2047 representing -8 to 8. p in [0..4095].
var STRETCH [4096]int

func init() {
	// Init squash: anchor table with linear interpolation on the low 7 bits.
	for x := -2047; x <= 2047; x++ {
		w := x & 127
		y := (x >> 7) + 16
		SQUASH[x+2047] = (_SQUASH_ANCHORS[y]*(128-w) + _SQUASH_ANCHORS[y+1]*w + 64) >> 7
	}

	// Init stretch by inverting squash.
	pi := 0

	for x := -2047; x <= 2047; x++ {
		i := Squash(x)

		for pi <= i {
			STRETCH[pi] = x
			pi++
		}
	}

	STRETCH[4095] = 2047
}

// Squash returns p = 1/(1 + exp(-d)), d scaled by 8 bits, p scaled by 12 bits,
// clamped to the domain [-2047, 2047].
func Squash(d int) int {
	if d >= 2048 {
		return 4095
	}

	if d <= -2048 {
		return 0
	}

	return SQUASH[d+2047]
}

// Stretch returns the inverse of Squash: d = ln(p/(1-p)), scaled by 8 bits.
// p must be in [0, 4095]; the result lies in [-2047, 2047].
func Stretch(p int) int {
	return STRETCH[p]
}

// Max returns the maximum of 2 values without a branch
func Max(x, y int32) int32 {
	return x - (((x - y) >> 31) & (x - y))
}

// Min returns the minimum of 2 values without a branch
func Min(x, y int32) int32 {
	return y + (((x - y) >> 31) & (x - y))
}

// Abs returns the absolute value of the input without a branch
func Abs(x int32) int32 {
	return (x + (x >> 31)) ^ (x >> 31)
}

// IsPowerOf2 returns true if the input value is a power of two; it also
// returns true for 0
func IsPowerOf2(x int32) bool {
	return (x & (x - 1)) == 0
}
