package classify

import (
	"github.com/vexbolts/hunt-tracker/internal/host"
)

// IgnoredCategories is the fast-reject allow-nothing list. Some scenarios
// spawn a tonne of these very quickly, so they get discarded before any
// database query or request iteration. We could go more in depth, but
// these are the main problem categories - and adding more risks ignoring
// actual drops.
var IgnoredCategories = map[string]bool{
	"Ammo":          true,
	"Money":         true,
	"InstantHealth": true,
	"Eridium":       true,
}

// findMatchingRequest scans the host's in-flight drop requests for one
// whose candidate balances contain the pickup's balance, and extracts the
// source actor's class and extra item pool qualifier.
//
// If there are multiple requests for the same balance at the same time, we
// might grab the wrong one - which'd mean the other item would grab ours.
// This only matters for two simultaneous drops of the identical balance,
// which is niche enough that the first match in host iteration order is
// simply taken.
func findMatchingRequest(requests []host.DropRequest, balance string) (actorClass string, extraItemPool *string, found bool) {
	for _, req := range requests {
		if req.ActorClass == "" {
			continue
		}

		matched := false
		for _, bal := range req.Balances {
			if bal == balance {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		return req.ActorClass, req.ExtraItemPool, true
	}
	return "", nil, false
}
