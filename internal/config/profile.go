package config

import (
	"fmt"
	"strings"
)

// maxInheritanceDepth is the chain length past which a warning is logged;
// deeper chains still resolve.
const maxInheritanceDepth = 3

// ProfileResolution is a profile with its single-level-extends inheritance
// chain flattened into one Profile value.
type ProfileResolution struct {
	// Profile is the fully merged profile. Extends is always nil.
	Profile *Profile
	// Chain is the inheritance chain from the requested profile to its
	// ultimate ancestor, e.g. ["weekly-totals", "base", "default"].
	Chain []string
}

// ResolveProfile resolves the named profile by following its extends chain
// and merging parent values beneath child values (child always wins).
//
// The built-in "default" profile is always available even if absent from
// profiles, synthesized from DefaultProfile(). Circular inheritance
// (including self-reference) returns an error naming the full cycle.
func ResolveProfile(name string, profiles map[string]*Profile) (*ProfileResolution, error) {
	resolution, err := resolveChain(name, profiles, nil)
	if err != nil {
		return nil, err
	}

	log := NewLogger("config")
	if depth := len(resolution.Chain); depth > maxInheritanceDepth {
		log.Warn("deep profile inheritance; consider flattening",
			"profile", name, "depth", depth, "chain", strings.Join(resolution.Chain, " -> "))
	}
	log.Debug("profile resolved", "profile", name, "chain", strings.Join(resolution.Chain, " -> "))

	return resolution, nil
}

func resolveChain(name string, profiles map[string]*Profile, visited []string) (*ProfileResolution, error) {
	for _, v := range visited {
		if v == name {
			cycle := append(visited, name)
			return nil, fmt.Errorf("circular profile inheritance: %s", strings.Join(cycle, " -> "))
		}
	}
	visited = append(visited, name)

	profile := lookupProfile(name, profiles)
	if profile == nil {
		return nil, fmt.Errorf("profile %q is not defined", name)
	}

	if profile.Extends == nil || *profile.Extends == "" {
		if name != "default" {
			defaultResolution, err := resolveChain("default", profiles, nil)
			if err != nil {
				return nil, fmt.Errorf("resolving default base for %q: %w", name, err)
			}
			merged := mergeProfile(defaultResolution.Profile, profile)
			chain := append([]string{name}, defaultResolution.Chain...)
			return &ProfileResolution{Profile: merged, Chain: chain}, nil
		}

		builtin := DefaultProfile()
		merged := mergeProfile(builtin, profile)
		return &ProfileResolution{Profile: merged, Chain: []string{name}}, nil
	}

	parentName := *profile.Extends
	parentResolution, err := resolveChain(parentName, profiles, visited)
	if err != nil {
		return nil, fmt.Errorf("resolving parent %q for profile %q: %w", parentName, name, err)
	}

	merged := mergeProfile(parentResolution.Profile, profile)
	chain := append([]string{name}, parentResolution.Chain...)
	return &ProfileResolution{Profile: merged, Chain: chain}, nil
}

func lookupProfile(name string, profiles map[string]*Profile) *Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	if name == "default" {
		return DefaultProfile()
	}
	return nil
}
