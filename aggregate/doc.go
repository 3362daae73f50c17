// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package aggregate computes the event-wide results views: per-coffee
// review summaries, the medal leaderboard, flavor tag histograms, and
// per-user favorite and tag-accuracy comparisons.
//
// Every function here is pure. Handlers load rows from the store and
// hand them over; nothing in this package touches the database, so the
// scoring rules are testable with plain slices.
//
// All orderings are deterministic. Ties in the medal table break by
// ascending coffee ID, ties in the flavor histogram by first encounter
// order, so repeated requests against the same data render identically.
package aggregate
