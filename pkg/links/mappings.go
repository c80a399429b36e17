package links

import (
	"path/filepath"

	"github.com/arthur-debert/dotdot/pkg/types"
)

// Conflict groups the mappings that claim the same target name.
type Conflict struct {
	TargetName string
	Mappings   []types.ExposeMapping
}

// CollectMappings derives mappings in source order, then repo name order,
// then expose order.
func CollectMappings(root string, sources []types.ConfigSource) []types.ExposeMapping {
	var mappings []types.ExposeMapping
	for _, source := range sources {
		for _, name := range source.Config.Names() {
			for _, expose := range source.Config.Repos[name].Expose {
				targetName := filepath.Base(filepath.Clean(filepath.FromSlash(expose)))
				mappings = append(mappings, types.ExposeMapping{
					Source:     filepath.Join(root, name, filepath.FromSlash(expose)),
					Target:     filepath.Join(root, targetName),
					TargetName: targetName,
					DeclaredBy: source.Label(),
					SourceRepo: name,
					ExposePath: expose,
				})
			}
		}
	}
	return mappings
}

// FindConflicts returns every target name claimed more than once, in order
// of first appearance.
func FindConflicts(mappings []types.ExposeMapping) []Conflict {
	var order []string
	byTarget := map[string][]types.ExposeMapping{}
	for _, m := range mappings {
		if _, seen := byTarget[m.TargetName]; !seen {
			order = append(order, m.TargetName)
		}
		byTarget[m.TargetName] = append(byTarget[m.TargetName], m)
	}

	var conflicts []Conflict
	for _, name := range order {
		if group := byTarget[name]; len(group) > 1 {
			conflicts = append(conflicts, Conflict{TargetName: name, Mappings: group})
		}
	}
	return conflicts
}

// UniqueMappings keeps the first mapping for each target name.
func UniqueMappings(mappings []types.ExposeMapping) []types.ExposeMapping {
	seen := map[string]bool{}
	var out []types.ExposeMapping
	for _, m := range mappings {
		if seen[m.TargetName] {
			continue
		}
		seen[m.TargetName] = true
		out = append(out, m)
	}
	return out
}
