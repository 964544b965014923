package analysis

import (
	"sort"
	"strings"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/corpus"
)

// MenuStats summarises the recorded menu structures
type MenuStats struct {
	TotalMenus   int     `json:"total_menus" yaml:"total_menus"`
	AverageItems float64 `json:"avg_items" yaml:"avg_items"`
	MaxItems     int     `json:"max_items" yaml:"max_items"`
	NestedMenus  int     `json:"nested_menus" yaml:"nested_menus"`
}

// ParameterUsage returns, per action, how many distinct value kinds each
// parameter name has been seen with.
func ParameterUsage(snap *corpus.Snapshot) map[string]map[string]int {
	usage := make(map[string]map[string]int, len(snap.ParameterTypes))
	for id, entries := range snap.ParameterTypes {
		stats := make(map[string]int)
		for _, entry := range corpus.NewStringSet(entries...).Sorted() {
			name := entry
			if i := strings.LastIndex(entry, ": "); i >= 0 {
				name = entry[:i]
			}
			stats[name]++
		}
		usage[id] = stats
	}
	return usage
}

// VersionDistribution maps each client version to the actions seen with it
func VersionDistribution(snap *corpus.Snapshot) map[string][]string {
	byVersion := make(map[string]corpus.StringSet)
	for id, versions := range snap.ActionVersions {
		for _, v := range versions {
			set, ok := byVersion[v]
			if !ok {
				set = corpus.NewStringSet()
				byVersion[v] = set
			}
			set.Add(id)
		}
	}

	distribution := make(map[string][]string, len(byVersion))
	for v, set := range byVersion {
		distribution[v] = set.Sorted()
	}
	return distribution
}

// SortedVersions returns the keys of a version distribution in order
func SortedVersions(distribution map[string][]string) []string {
	versions := make([]string, 0, len(distribution))
	for v := range distribution {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// MenuComplexity counts menus and their items. A menu is nested when one of
// its items mentions another menu's group id or prompt.
func MenuComplexity(menus map[string]corpus.Menu) MenuStats {
	stats := MenuStats{TotalMenus: len(menus)}
	if len(menus) == 0 {
		return stats
	}

	totalItems := 0
	for group, menu := range menus {
		totalItems += len(menu.Items)
		if len(menu.Items) > stats.MaxItems {
			stats.MaxItems = len(menu.Items)
		}
		if referencesOtherMenu(group, menu, menus) {
			stats.NestedMenus++
		}
	}
	stats.AverageItems = float64(totalItems) / float64(len(menus))
	return stats
}

func referencesOtherMenu(group string, menu corpus.Menu, menus map[string]corpus.Menu) bool {
	for otherGroup, other := range menus {
		if otherGroup == group {
			continue
		}
		for _, item := range menu.Items {
			if strings.Contains(item, otherGroup) {
				return true
			}
			if other.Prompt != "" && strings.Contains(item, other.Prompt) {
				return true
			}
		}
	}
	return false
}
