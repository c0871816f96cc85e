// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// seed is process-wide so that two Values hash identically within a
// single process run (required for the commutative instance-hash fold
// in package schema) without leaking a fixed, guessable hash across
// process restarts.
var seed = maphash.MakeSeed()

// Hash returns a process-stable, non-cryptographic hash of v. Used by
// package schema to fold an Instance's (name, value) pairs into a
// single hash commutatively, not as a content-addressing digest.
func (v Value) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)

	var kindByte [1]byte
	kindByte[0] = byte(v.kind)
	h.Write(kindByte[:])

	switch v.kind {
	case KindInt:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.i))
		h.Write(buf[:])
	case KindDouble:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.d))
		h.Write(buf[:])
	case KindString:
		h.WriteString(v.s)
	case KindBool:
		if v.b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case KindLocation:
		var buf [16]byte
		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(v.loc.Lon))
		binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(v.loc.Lat))
		h.Write(buf[:])
	}
	return h.Sum64()
}
