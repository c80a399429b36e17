package config

import (
	"github.com/arthur-debert/dotdot/pkg/logging"
	"github.com/arthur-debert/dotdot/pkg/types"
)

// DeclaredRepos merges the ordered sources into the declared repo set.
// The first source to declare a name owns it; later declarations are
// dropped. A later declaration pinning a different revision is logged
// since it is silently shadowed.
func DeclaredRepos(sources []types.ConfigSource) []types.DeclaredRepo {
	logger := logging.GetLogger("config")
	var repos []types.DeclaredRepo
	index := map[string]int{}

	for _, source := range sources {
		for _, name := range source.Config.Names() {
			repo := source.Config.Repos[name]
			if i, seen := index[name]; seen {
				winner := repos[i]
				if repo.Revision != winner.Config.Revision {
					logger.Warn().
						Str("repo", name).
						Str("kept", winner.Source.Label()).
						Str("kept_revision", winner.Config.Revision).
						Str("ignored", source.Label()).
						Str("ignored_revision", repo.Revision).
						Msg("Repo declared with conflicting revisions, keeping the first")
				}
				continue
			}
			index[name] = len(repos)
			repos = append(repos, types.DeclaredRepo{
				Name:   name,
				Config: repo,
				Source: source,
			})
		}
	}

	return repos
}

// FindDeclared returns the declared repo with the given name.
func FindDeclared(repos []types.DeclaredRepo, name string) (types.DeclaredRepo, bool) {
	for _, r := range repos {
		if r.Name == name {
			return r, true
		}
	}
	return types.DeclaredRepo{}, false
}
