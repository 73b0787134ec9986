// Package access projects classification results onto the access-control
// configuration document consumed by the docs portal and CI glue.
//
// Audience lists are containing by construction: a PUBLIC file is visible
// to every audience, so rules.public ⊆ rules.partner ⊆ rules.internal.
package access

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/docsentry/docsentry/internal/classifier"
	"github.com/docsentry/docsentry/internal/patterns"
)

// ConfigVersion is the schema version stamped on generated documents.
const ConfigVersion = "1.0.0"

// Policy describes the handling rules for one tier.
type Policy struct {
	Description      string   `json:"description"`
	AllowedAudiences []string `json:"allowedAudiences"`
	Restrictions     []string `json:"restrictions"`
}

// FileEntry is the per-file projection.
type FileEntry struct {
	Classification   patterns.Level `json:"classification"`
	Confidence       float64        `json:"confidence"`
	AllowedAudiences []string       `json:"allowedAudiences"`
	Restrictions     []string       `json:"restrictions"`
}

// Rules lists file paths visible to each audience.
type Rules struct {
	Public   []string `json:"public"`
	Partner  []string `json:"partner"`
	Internal []string `json:"internal"`
}

// Config is the generated access-control document.
type Config struct {
	Version             string                    `json:"version"`
	Generated           time.Time                 `json:"generated"`
	AccessLevels        map[patterns.Level]Policy `json:"accessLevels"`
	Rules               Rules                     `json:"rules"`
	FileClassifications map[string]FileEntry      `json:"fileClassifications"`
}

// policies is the static tier → handling table.
var policies = map[patterns.Level]Policy{
	patterns.LevelPublic: {
		Description:      "Publicly visible documentation",
		AllowedAudiences: []string{"public", "partner", "internal"},
		Restrictions:     []string{},
	},
	patterns.LevelPartner: {
		Description:      "Requires partner access",
		AllowedAudiences: []string{"partner", "internal"},
		Restrictions:     []string{"requires-partner-access"},
	},
	patterns.LevelInternal: {
		Description:      "Internal only",
		AllowedAudiences: []string{"internal"},
		Restrictions:     []string{"requires-internal-access", "no-external-sharing"},
	},
}

// Build projects classification results into a Config. Each audience list
// contains every file that audience may see, so the public list is a
// subset of the partner list, which is a subset of the internal list.
func Build(results []classifier.Result) *Config {
	cfg := &Config{
		Version:             ConfigVersion,
		Generated:           time.Now().UTC(),
		AccessLevels:        policies,
		FileClassifications: make(map[string]FileEntry, len(results)),
	}

	for _, r := range results {
		policy := policies[r.Classification]
		cfg.FileClassifications[r.FilePath] = FileEntry{
			Classification:   r.Classification,
			Confidence:       r.Confidence,
			AllowedAudiences: policy.AllowedAudiences,
			Restrictions:     policy.Restrictions,
		}

		switch r.Classification {
		case patterns.LevelPublic:
			cfg.Rules.Public = append(cfg.Rules.Public, r.FilePath)
			cfg.Rules.Partner = append(cfg.Rules.Partner, r.FilePath)
			cfg.Rules.Internal = append(cfg.Rules.Internal, r.FilePath)
		case patterns.LevelPartner:
			cfg.Rules.Partner = append(cfg.Rules.Partner, r.FilePath)
			cfg.Rules.Internal = append(cfg.Rules.Internal, r.FilePath)
		case patterns.LevelInternal:
			cfg.Rules.Internal = append(cfg.Rules.Internal, r.FilePath)
		}
	}

	sort.Strings(cfg.Rules.Public)
	sort.Strings(cfg.Rules.Partner)
	sort.Strings(cfg.Rules.Internal)
	return cfg
}

// JSON renders the config as indented JSON.
func (c *Config) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
