package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

// ResolveOptions configures the multi-source configuration resolution.
type ResolveOptions struct {
	// ProfileName selects a named profile. If empty, SJQ_PROFILE is
	// checked, then "default" is used.
	ProfileName string

	// TargetDir is the directory to search for .sjq.toml. Defaults to "."
	TargetDir string

	// GlobalConfigPath overrides the default
	// $XDG_CONFIG_HOME/sjq/config.toml, for testing.
	GlobalConfigPath string

	// CLIFlags holds explicit CLI flag overrides (highest precedence).
	// Keys are flat Profile field names: "max_text_length", "pretty", etc.
	CLIFlags map[string]any
}

// ResolvedConfig is the result of multi-source configuration resolution.
type ResolvedConfig struct {
	Profile *Profile
	Sources SourceMap
	ProfileName string
}

// Resolve runs the 5-layer configuration resolution pipeline:
// 1. Built-in defaults
// 2. Global config ($XDG_CONFIG_HOME/sjq/config.toml)
// 3. Repo config (.sjq.toml, walked up from TargetDir)
// 4. Environment variables (SJQ_* prefix)
// 5. CLI flags (highest precedence)
//
// Missing config files are silently ignored; invalid files return errors.
// A named profile not found in any loaded config returns an error naming
// that profile.
func Resolve(opts ResolveOptions) (*ResolvedConfig, error) {
	log := NewLogger("config")

	profileName := opts.ProfileName
	if profileName == "" {
		if v := os.Getenv(EnvProfile); v != "" {
			profileName = v
		} else {
			profileName = "default"
		}
	}

	log.Debug("resolving config", "profile", profileName, "targetDir", opts.TargetDir)

	k := koanf.New(".")
	sources := make(SourceMap)

	defaultProfile := DefaultProfile()
	if err := loadLayer(k, profileToFlatMap(defaultProfile), sources, SourceDefault); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	profileFound := false

	globalPath := opts.GlobalConfigPath
	if globalPath == "" {
		if p, err := DiscoverGlobalConfig(); err == nil {
			globalPath = p
		}
	}
	if globalPath != "" {
		found, err := loadFileLayer(k, globalPath, profileName, sources, SourceGlobal)
		if err != nil {
			return nil, err
		}
		if found {
			profileFound = true
		}
	}

	targetDir := opts.TargetDir
	if targetDir == "" {
		targetDir = "."
	}
	repoConfigPath, err := DiscoverRepoConfig(targetDir)
	if err != nil {
		return nil, err
	}
	if repoConfigPath != "" {
		found, err := loadFileLayer(k, repoConfigPath, profileName, sources, SourceRepo)
		if err != nil {
			return nil, err
		}
		if found {
			profileFound = true
		}
	}

	if profileName != "default" && !profileFound {
		return nil, fmt.Errorf("profile %q not found in any config file", profileName)
	}

	envMap := buildEnvMap()
	if len(envMap) > 0 {
		if err := loadLayer(k, envMap, sources, SourceEnv); err != nil {
			return nil, fmt.Errorf("loading env vars: %w", err)
		}
	}

	if len(opts.CLIFlags) > 0 {
		if err := loadLayer(k, opts.CLIFlags, sources, SourceFlag); err != nil {
			return nil, fmt.Errorf("loading CLI flags: %w", err)
		}
	}

	finalProfile := flatMapToProfile(k)

	log.Debug("config resolved",
		"profile", profileName,
		"maxTextLength", finalProfile.MaxTextLength,
		"pretty", finalProfile.Pretty,
	)

	return &ResolvedConfig{Profile: finalProfile, Sources: sources, ProfileName: profileName}, nil
}

func loadFileLayer(k *koanf.Koanf, path, profileName string, sources SourceMap, src Source) (bool, error) {
	flat, err := extractProfileFlat(path, profileName)
	if err != nil {
		return false, fmt.Errorf("loading config %s: %w", path, err)
	}
	if flat == nil {
		return false, nil
	}

	NewLogger("config").Debug("loading profile from config",
		"profile", profileName, "path", path, "source", src.String())

	if err := loadLayer(k, flat, sources, src); err != nil {
		return false, err
	}
	return true, nil
}

// extractProfileFlat parses a TOML config file into a raw map and returns a
// flat koanf-compatible map containing only the fields explicitly present in
// the TOML for the given profile, plus fields it inherits through `extends`
// from profiles defined in the same file (the child's own fields win).
// Returns nil if the file or profile is absent.
func extractProfileFlat(path, profileName string) (map[string]any, error) {
	log := NewLogger("config")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			log.Debug("config file not found, skipping", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	profilesRaw, ok := raw["profile"].(map[string]interface{})
	if !ok {
		log.Debug("no [profile] section in config", "path", path)
		return nil, nil
	}

	profileRaw, ok := profilesRaw[profileName].(map[string]interface{})
	if !ok {
		available := make([]string, 0, len(profilesRaw))
		for name := range profilesRaw {
			available = append(available, name)
		}
		sort.Strings(available)
		log.Debug("profile not found in config",
			"profile", profileName, "path", path, "available", strings.Join(available, ", "))
		return nil, nil
	}

	flat := flattenProfileRaw(profileRaw)
	seen := map[string]bool{profileName: true}
	for parent, _ := profileRaw["extends"].(string); parent != "" && !seen[parent]; parent, _ = profileRaw["extends"].(string) {
		seen[parent] = true
		if profileRaw, ok = profilesRaw[parent].(map[string]interface{}); !ok {
			break
		}
		for key, v := range flattenProfileRaw(profileRaw) {
			if _, set := flat[key]; !set {
				flat[key] = v
			}
		}
	}
	return flat, nil
}

func flattenProfileRaw(raw map[string]interface{}) map[string]any {
	flat := make(map[string]any)

	for _, key := range []string{"query", "output"} {
		if v, ok := raw[key]; ok {
			flat[key] = v
		}
	}

	if v, ok := raw["max_text_length"]; ok {
		switch n := v.(type) {
		case int64:
			flat["max_text_length"] = int(n)
		case int:
			flat["max_text_length"] = n
		default:
			flat["max_text_length"] = v
		}
	}

	for _, key := range []string{"append", "force_new", "pretty", "strict"} {
		if v, ok := raw[key]; ok {
			flat[key] = v
		}
	}

	return flat
}

func loadLayer(k *koanf.Koanf, m map[string]any, sources SourceMap, src Source) error {
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return fmt.Errorf("merge layer %s: %w", src.String(), err)
	}
	for key := range m {
		sources[key] = src
	}
	return nil
}

// profileToFlatMap converts a Profile to a flat map for the defaults layer,
// where every field has an authoritative value.
func profileToFlatMap(p *Profile) map[string]any {
	return map[string]any{
		"query": p.Query,
		"output": p.Output,
		"append": p.Append,
		"force_new": p.ForceNew,
		"pretty": p.Pretty,
		"max_text_length": p.MaxTextLength,
		"strict": p.Strict,
	}
}

func flatMapToProfile(k *koanf.Koanf) *Profile {
	return &Profile{
		Query: k.String("query"),
		Output: k.String("output"),
		Append: k.Bool("append"),
		ForceNew: k.Bool("force_new"),
		Pretty: k.Bool("pretty"),
		MaxTextLength: k.Int("max_text_length"),
		Strict: k.Bool("strict"),
	}
}

// ProfilesFromConfig returns the profile map from cfg, or an empty map if
// cfg is nil.
func ProfilesFromConfig(cfg *Config) map[string]*Profile {
	if cfg == nil {
		return map[string]*Profile{}
	}
	return cfg.Profile
}

// RepoConfigFilePath returns the path "sjq config init" writes a starter
// file to; kept separate from DiscoverGlobalConfig since init targets a
// repo-local file by default.
func RepoConfigFilePath(dir string) string {
	return filepath.Join(dir, ".sjq.toml")
}
