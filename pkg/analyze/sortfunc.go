package analyze

import (
	"cmp"
	"slices"
	"strings"

	"github.com/courier-tools/courier-traffic/pkg/stats"
)

var domainSortFuncs = map[SortByFlag]func(l, r *stats.Domain) int{
	SortByName: func(l, r *stats.Domain) int {
		return strings.Compare(l.Name, r.Name)
	},
	SortByTotal: func(l, r *stats.Domain) int {
		return cmp.Compare(r.Total(), l.Total())
	},
}

var userSortFuncs = map[SortByFlag]func(l, r *stats.User) int{
	SortByName: func(l, r *stats.User) int {
		return strings.Compare(l.Name, r.Name)
	},
	SortByTotal: func(l, r *stats.User) int {
		return cmp.Compare(r.Total(), l.Total())
	},
}

// SortedDomains returns the domains of s ordered by sortBy. Ties and
// SortBySeen keep first-seen order. The store itself is not modified.
func SortedDomains(s *stats.Store, sortBy SortByFlag) []*stats.Domain {
	domains := slices.Clone(s.Domains)
	if fn, ok := domainSortFuncs[sortBy]; ok {
		slices.SortStableFunc(domains, fn)
	}
	return domains
}

func SortedUsers(d *stats.Domain, sortBy SortByFlag) []*stats.User {
	users := slices.Clone(d.Users)
	if fn, ok := userSortFuncs[sortBy]; ok {
		slices.SortStableFunc(users, fn)
	}
	return users
}
