// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by dockwright tests.
//
// FakeClock gives formatters and dispatchers a deterministic time source.
// MustWriteFile fails the test when a fixture cannot be written, and
// SetConfigHome isolates the configuration directory lookup.
package testutil
