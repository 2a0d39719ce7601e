package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/handy-recon/internal/domain"
)

// DefaultPlatforms returns the built-in platform set.
func DefaultPlatforms() []domain.PlatformTarget {
	return []domain.PlatformTarget{
		{Name: "github", URLTemplate: "https://github.com/{}"},
		{Name: "twitter", URLTemplate: "https://twitter.com/{}"},
		{Name: "instagram", URLTemplate: "https://instagram.com/{}"},
		{Name: "reddit", URLTemplate: "https://reddit.com/user/{}"},
		{Name: "linkedin", URLTemplate: "https://linkedin.com/in/{}"},
	}
}

// platformsFile is the YAML layout of PLATFORMS_FILE:
//
//	platforms:
//	  github: https://github.com/{}
//	  reddit: https://reddit.com/user/{}
type platformsFile struct {
	Platforms map[string]string `yaml:"platforms"`
}

// LoadPlatformsFile reads a platform set from a YAML file.
func LoadPlatformsFile(path string) ([]domain.PlatformTarget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Field: "PLATFORMS_FILE", Message: err.Error()}
	}
	return ParsePlatforms(data)
}

// ParsePlatforms decodes a YAML platform set. Platforms are returned sorted by name.
func ParsePlatforms(data []byte) ([]domain.PlatformTarget, error) {
	var file platformsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &domain.ConfigError{Field: "PLATFORMS_FILE", Message: fmt.Sprintf("decode yaml: %v", err)}
	}

	platforms := make([]domain.PlatformTarget, 0, len(file.Platforms))
	for name, tmpl := range file.Platforms {
		platforms = append(platforms, domain.PlatformTarget{
			Name:        strings.TrimSpace(name),
			URLTemplate: strings.TrimSpace(tmpl),
		})
	}
	sort.Slice(platforms, func(i, j int) bool {
		return platforms[i].Name < platforms[j].Name
	})

	if err := ValidatePlatforms(platforms); err != nil {
		return nil, err
	}
	return platforms, nil
}

// ValidatePlatforms checks a platform set is usable.
func ValidatePlatforms(platforms []domain.PlatformTarget) error {
	if len(platforms) == 0 {
		return &domain.ConfigError{Field: "platforms", Message: domain.ErrNoPlatforms.Error()}
	}

	seen := make(map[string]struct{}, len(platforms))
	for i, p := range platforms {
		if p.Name == "" {
			return &domain.ConfigError{
				Field:   "platforms",
				Message: fmt.Sprintf("platform[%d] has an empty name", i),
			}
		}
		if _, dup := seen[p.Name]; dup {
			return &domain.ConfigError{
				Field:   "platforms",
				Message: fmt.Sprintf("duplicate platform %q", p.Name),
			}
		}
		seen[p.Name] = struct{}{}

		if n := strings.Count(p.URLTemplate, domain.Placeholder); n != 1 {
			return &domain.ConfigError{
				Field:   "platforms",
				Message: fmt.Sprintf("platform %q template must contain exactly one %s, found %d", p.Name, domain.Placeholder, n),
			}
		}
		if !strings.HasPrefix(p.URLTemplate, "http://") && !strings.HasPrefix(p.URLTemplate, "https://") {
			return &domain.ConfigError{
				Field:   "platforms",
				Message: fmt.Sprintf("platform %q template must be an http(s) URL", p.Name),
			}
		}
	}
	return nil
}
