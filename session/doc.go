// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the decision workflow: the per-session state
machine, acceptance grouping, random selection and the process-wide
session registry.

# Phases

A session moves through four phases:

	lobby → adding → accepting → result

The first member to join moves the session out of the lobby. When every
member has flagged ready the session advances to the acceptance phase.
Finalizing runs the first selection and enters the result phase; a reset
(start-fresh or a unanimous restart vote) returns to adding with the
roster intact.

# Items and Normalization

Items are compared by a normalized key: Unicode case folding followed by
stripping everything that is not a letter or digit. "Pizza", " PIZZA "
and "p-i-z-z-a!" are the same item; the display string is whatever form
was entered first. A member cannot list the same key twice.

# Acceptance Grouping

Selection is fair across member sets rather than raw items. Each item
instance gets an acceptor set: its author plus every other member who
accepted its key. Instances are bucketed by acceptor set, deduplicated
by key within a bucket, and the buckets become the selection groups:

	groups := groupAcceptance(members)

An item proposed by two members with different acceptor sets appears in
two groups. A group is picked first, then an item within it, so an
option only one member can live with still has a real chance.

# Selection

The two-stage draw uses a deliberately wide random range reduced by
modulus:

	idx := selector.Index(len(groups))

Reroll draws from the full pool again; roll-next excludes every key
picked so far and fails once the pool is exhausted.

# Registry

The Registry owns all live sessions, keyed by 6-character codes:

	reg := session.NewRegistry(session.Options{Store: st, Notifier: h})
	s := reg.Create()
	s, err := reg.Find(code)

Sessions idle past the TTL (default 7 days) are removed lazily on lookup
and by the periodic sweeper. With a store configured every Commit writes
the session through, and LoadFromStore restores live sessions at boot.

# Concurrency

Each Session serializes its own mutations behind one mutex and returns a
state snapshot from every operation. Persistence and notification happen
in Registry.Commit, outside the session lock.
*/
package session
