// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// All helpers fail the test immediately on error and accept testing.TB so they
// work in benchmarks too.
package testutil
