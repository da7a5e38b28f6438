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

// cmBucket is a 64-byte cache-line-sized hash bucket holding 7 candidate
// bit-history rows, each keyed by a 16-bit checksum. last packs the indices
// of the two most recently accessed rows (low/high nibble) for LRU
// tie-breaking.
type cmBucket struct {
	chk  [7]uint16
	last uint8
	bh   [7][7]uint8
}

// get finds the row matching checksum ch, or claims the lowest-priority row
// not in the 2-entry LRU queue and resets it. The matched/claimed row is
// always recorded as most-recently-used.
func (this *cmBucket) get(ch uint16) []uint8 {
	if this.chk[this.last&15] == ch {
		return this.bh[this.last&15][:]
	}

	b := 0x10000
	bi := 0

	for i := 0; i < 7; i++ {
		if this.chk[i] == ch {
			this.last = this.last<<4 | uint8(i)
			return this.bh[i][:]
		}

		pri := int(this.bh[i][0])

		if (this.last&15) != uint8(i) && (this.last>>4) != uint8(i) && pri < b {
			b = pri
			bi = i
		}
	}

	this.last = 0xf0 | uint8(bi)
	this.chk[bi] = ch
	row := this.bh[bi][:]

	for i := range row {
		row[i] = 0
	}

	return row
}

// cmContext tracks one of a contextMap's C independent bit-history
// contexts: its permuted whole-byte hash, the current bit-history row
// (row, always valid), the offset within that row currently being trained
// (cpOff, -1 when no state should be trained this bit) and the row fetched
// on the last byte boundary, whose bytes 3 and 4 hold the run model
// (runRow).
type cmContext struct {
	cxt    uint32
	row    []uint8
	cpOff  int
	runRow []uint8
}

// contextMap maps up to C independent contexts to bit-history states and
// makes predictions to a mixer. It has a built-in run model: on a byte
// boundary, 4 bytes of each bucket row are repurposed to remember the last
// byte seen in the context and a repeat count.
type contextMap struct {
	ctx      *sharedContext
	buckets  []cmBucket
	contexts []cmContext
	sm       []*stateMap
	cn       int // next context slot to set()
}

func newContextMap(ctx *sharedContext, m, c int) *contextMap {
	this := new(contextMap)
	this.ctx = ctx
	this.buckets = make([]cmBucket, m>>6)
	this.contexts = make([]cmContext, c)
	this.sm = make([]*stateMap, c)

	for i := 0; i < c; i++ {
		this.contexts[i].row = this.buckets[0].bh[0][:]
		this.contexts[i].runRow = this.contexts[i].row
		this.sm[i] = newStateMap()
	}

	return this
}

// set assigns the next context slot to whole-byte context cx, permuting
// (not hashing) it to spread the distribution of non-hashed inputs.
func (this *contextMap) set(cx uint32) {
	this.setMasked(cx, -1)
}

// setMasked behaves like set but forces the slot index via a bitmask; -1
// (all bits set) selects the next slot in sequence, the common case.
func (this *contextMap) setMasked(cx uint32, mask int) {
	i := this.cn
	this.cn++
	i &= mask
	cx = cx*987654323 + uint32(i)
	cx = (cx << 16) | (cx >> 16)
	this.contexts[i].cxt = cx*123456791 + uint32(i)
}

// mix2 predicts to m from bit-history state s via sm, contributing five
// logit-domain features: the raw logit, a centered probability, a
// direction-weighted logit, and two asymmetric supports. Returns whether s
// carries any history.
func mix2(m *mixer, s uint8, sm *stateMap, y int) bool {
	p1 := sm.p(y, s)

	n0 := 0
	if stateN0(s) == 0 {
		n0 = -1
	}

	n1 := 0
	if stateN1(s) == 0 {
		n1 = -1
	}

	st := cmix.Stretch(p1) >> 2
	m.add(int32(st))
	p1 >>= 4
	p0 := 255 - p1
	m.add(int32(p1 - p0))
	m.add(int32(st * (n1 - n0)))
	m.add(int32((p1 & n0) - (p0 & n1)))
	m.add(int32((p1 & n1) - (p0 & n0)))
	return s > 0
}

// mix trains every context's bit history with the just-observed bit,
// advances context pointers according to the intra-byte bit position,
// emits the built-in run prediction and the bit-history prediction for
// each context, and reports how many contexts carried history.
func (this *contextMap) mix(m *mixer) int {
	cc := this.ctx.c0
	bp := this.ctx.bpos
	c1 := this.ctx.b(1)
	y1 := this.ctx.y
	size := uint32(len(this.buckets))
	result := 0

	for i := 0; i < this.cn; i++ {
		cx := &this.contexts[i]

		if cx.cpOff >= 0 {
			s := cx.row[cx.cpOff]
			ns := nextState(s, y1)
			shift := uint((452 - int(ns)) >> 3)

			if ns >= 204 && (this.ctx.rnd.next()<<shift) != 0 {
				ns -= 4
			}

			cx.row[cx.cpOff] = ns
		}

		switch {
		case bp > 1 && cx.runRow[3] == 0:
			cx.cpOff = -1
		case bp == 1 || bp == 3 || bp == 6:
			cx.cpOff = 1 + (cc & 1)
		case bp == 4 || bp == 7:
			cx.cpOff = 3 + (cc & 3)
		default:
			// oldRow is the row fetched for this context on the previous
			// byte boundary; its run count belongs to the byte that just
			// completed (c1) and is trained before cx.runRow is repointed
			// at the newly-fetched row below.
			oldRow := cx.runRow

			idx := (cx.cxt + uint32(cc)) & (size - 1)
			row := this.buckets[idx].get(uint16(cx.cxt >> 16))
			cx.row = row
			cx.cpOff = 0

			if bp == 0 {
				if row[3] == 2 {
					c := int(row[4]) + 256

					idx2 := (cx.cxt + uint32(c>>6)) & (size - 1)
					p := this.buckets[idx2].get(uint16(cx.cxt >> 16))
					p[0] = byte(1 + ((c >> 5) & 1))
					p[1+((c>>5)&1)] = byte(1 + ((c >> 4) & 1))
					p[3+((c>>4)&3)] = byte(1 + ((c >> 3) & 1))

					idx3 := (cx.cxt + uint32(c>>3)) & (size - 1)
					p = this.buckets[idx3].get(uint16(cx.cxt >> 16))
					p[0] = byte(1 + ((c >> 2) & 1))
					p[1+((c>>2)&1)] = byte(1 + ((c >> 1) & 1))
					p[3+((c>>1)&3)] = byte(1 + (c & 1))

					row[6] = 0
				}

				switch {
				case oldRow[3] == 0:
					oldRow[3], oldRow[4] = 2, byte(c1)
				case oldRow[4] != byte(c1):
					oldRow[3], oldRow[4] = 1, byte(c1)
				case oldRow[3] < 254:
					oldRow[3] += 2
				case oldRow[3] == 255:
					oldRow[3] = 128
				}

				cx.runRow = row
			}
		}

		rc := int(cx.runRow[3])

		if (int(cx.runRow[4])+256)>>(8-bp) == cc {
			b := (int(cx.runRow[4])>>(7-bp)&1)*2 - 1
			shift := uint(2 + ((^rc) & 1))
			c := ilog(uint16(rc+1)) << shift
			m.add(int32(b * c))
		} else {
			m.add(0)
		}

		var s uint8

		if cx.cpOff >= 0 {
			s = cx.row[cx.cpOff]
		}

		if mix2(m, s, this.sm[i], y1) {
			result++
		}
	}

	if bp == 7 {
		this.cn = 0
	}

	return result
}
