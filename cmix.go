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

// Package cmix provides the shared contract and fixed-point math used by a
// context-mixing bitwise predictor: a cooperating ensemble of context
// models, a logistic mixer and a chain of secondary probability maps that
// together estimate, one bit at a time, the probability that the next bit
// of a stream is 1.
//
// The predictor is byte-stream-agnostic. It does not perform entropy coding,
// file type detection or I/O; callers feed it bits (however those bits were
// obtained) and read back a probability before every bit is known.
package cmix

// Predictor predicts the probability of the next bit to be 1.
type Predictor interface {
	// Update adjusts the probability model with the bit that was just observed.
	Update(bit byte)

	// Get returns the probability that the next bit is 1, scaled to [0, 4095].
	// E.g. 410 represents roughly a 10% probability of a 1 bit.
	Get() int
}
