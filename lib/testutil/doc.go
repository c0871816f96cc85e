// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for oef-node packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation. Use it instead of time.Now() when tests need unique
// dialogue IDs, search IDs, or public keys distinguishable within a
// single test's directories.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no internal dependencies.
package testutil
