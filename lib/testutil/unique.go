// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use this instead of time.Now() when
// tests need unique identifiers for public keys, dialogue IDs, or
// search IDs that must be distinguishable within a single test.
//
//	key := testutil.UniqueID("agent")   // "agent-1", "agent-2", ...
//	id := testutil.UniqueID("dialogue") // "dialogue-3", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
