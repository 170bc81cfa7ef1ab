// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sort"
	"strings"
)

// Group is one acceptance bucket: the exact set of members who accept
// every item in it. Groups are recomputed from member state each time
// selection runs and are never stored.
type Group struct {
	// Members holds the accepting member ids, sorted.
	Members []string
	// Items holds the canonical display items, deduplicated by
	// normalized key, in roster order of first appearance.
	Items []Item
}

// key returns the stable serialization used to bucket and order groups.
func (g Group) key() string {
	return strings.Join(g.Members, ",")
}

// groupAcceptance partitions all items by the exact set of members who
// accept them. Every item instance is scoped to its author, so two
// members submitting the same text produce two instances; the author
// always accepts their own item, and any other member whose acceptance
// set contains the item's normalized key accepts it too. Instances whose
// acceptor sets coincide land in one bucket, where equal keys collapse to
// the first display string seen in roster order.
//
// The returned slice is ordered by each group's serialized member set so
// that selection is reproducible given a fixed random source.
func groupAcceptance(members []*Member) []Group {
	buckets := make(map[string]*Group)
	seen := make(map[string]map[string]bool) // bucket key -> item keys already added

	for _, author := range members {
		for _, item := range author.Items {
			acceptors := []string{author.ID}
			for _, m := range members {
				if m.ID == author.ID {
					continue
				}
				if m.Accepted[item.Key] {
					acceptors = append(acceptors, m.ID)
				}
			}
			sort.Strings(acceptors)

			bkey := strings.Join(acceptors, ",")
			g, ok := buckets[bkey]
			if !ok {
				g = &Group{Members: acceptors}
				buckets[bkey] = g
				seen[bkey] = make(map[string]bool)
			}
			if !seen[bkey][item.Key] {
				seen[bkey][item.Key] = true
				g.Items = append(g.Items, item)
			}
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(buckets))
	for _, k := range keys {
		groups = append(groups, *buckets[k])
	}
	return groups
}

// eligibleGroups filters out excluded item keys and drops groups that end
// up empty. A nil exclusion set keeps everything.
func eligibleGroups(groups []Group, exclude map[string]bool) []Group {
	if len(exclude) == 0 {
		return groups
	}
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		items := make([]Item, 0, len(g.Items))
		for _, it := range g.Items {
			if !exclude[it.Key] {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			out = append(out, Group{Members: g.Members, Items: items})
		}
	}
	return out
}
