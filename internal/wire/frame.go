// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// DefaultMaxFrameSize bounds the CBOR payload a single frame may carry,
// used by ReadFrame/WriteFrame and their Raw variants. Callers that
// need a different bound (e.g. oefserver.Config.MaxFrameSize) should
// use the *Limit variants below instead of relying on this default.
const DefaultMaxFrameSize = 4 * 1024 * 1024

// lengthPrefixSize is the width, in bytes, of the frame's length
// header.
const lengthPrefixSize = 4

// ReadFrame reads one length-prefixed CBOR frame from r, bounded by
// DefaultMaxFrameSize, and decodes it into v. The length prefix is a
// 4-byte big-endian uint32 counting the bytes of the CBOR payload that
// follows.
func ReadFrame(r io.Reader, v any) error {
	return ReadFrameLimit(r, v, DefaultMaxFrameSize)
}

// ReadFrameLimit is ReadFrame with an explicit maximum frame size,
// in bytes. A peer that advertises a larger length is
// protocol-violating, not merely slow.
func ReadFrameLimit(r io.Reader, v any, maxFrameSize uint32) error {
	payload, err := ReadRawFrameLimit(r, maxFrameSize)
	if err != nil {
		return err
	}
	if err := Unmarshal(payload, v); err != nil {
		return fmt.Errorf("wire: decoding frame payload: %w", err)
	}
	return nil
}

// ReadRawFrame reads one length-prefixed frame from r, bounded by
// DefaultMaxFrameSize, and returns its undecoded CBOR payload.
func ReadRawFrame(r io.Reader) ([]byte, error) {
	return ReadRawFrameLimit(r, DefaultMaxFrameSize)
}

// ReadRawFrameLimit is ReadRawFrame with an explicit maximum frame
// size, in bytes.
func ReadRawFrameLimit(r io.Reader, maxFrameSize uint32) ([]byte, error) {
	var lenBuf [lengthPrefixSize]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(lenBuf[:])
	if length > maxFrameSize {
		return nil, fmt.Errorf("wire: frame length %d exceeds maximum %d", length, maxFrameSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("wire: reading frame payload: %w", err)
	}
	return payload, nil
}

// WriteFrame encodes v as CBOR and writes it to w as one
// length-prefixed frame, bounded by DefaultMaxFrameSize.
func WriteFrame(w io.Writer, v any) error {
	return WriteFrameLimit(w, v, DefaultMaxFrameSize)
}

// WriteFrameLimit is WriteFrame with an explicit maximum frame size,
// in bytes.
func WriteFrameLimit(w io.Writer, v any, maxFrameSize uint32) error {
	payload, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("wire: encoding frame payload: %w", err)
	}
	return WriteRawFrameLimit(w, payload, maxFrameSize)
}

// WriteRawFrame writes payload to w as one length-prefixed frame,
// bounded by DefaultMaxFrameSize.
func WriteRawFrame(w io.Writer, payload []byte) error {
	return WriteRawFrameLimit(w, payload, DefaultMaxFrameSize)
}

// WriteRawFrameLimit is WriteRawFrame with an explicit maximum frame
// size, in bytes.
func WriteRawFrameLimit(w io.Writer, payload []byte, maxFrameSize uint32) error {
	if uint32(len(payload)) > maxFrameSize {
		return fmt.Errorf("wire: frame payload of %d bytes exceeds maximum %d", len(payload), maxFrameSize)
	}

	var lenBuf [lengthPrefixSize]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))

	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("wire: writing frame length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("wire: writing frame payload: %w", err)
	}
	return nil
}
