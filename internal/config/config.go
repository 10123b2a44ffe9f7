package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mnemonic-notes/mnemo/internal/constants"
)

// Defaults carries the retrieval knobs sent with every query and list
// call. The backend owns ranking; these pass through uninterpreted.
type Defaults struct {
	TopK          int     `yaml:"top_k"          json:"top_k"`
	MinSimilarity float64 `yaml:"min_similarity" json:"min_similarity"`
	PageSize      int     `yaml:"page_size"      json:"page_size"`
	SortBy        string  `yaml:"sort_by"        json:"sort_by"`
	SortOrder     string  `yaml:"sort_order"     json:"sort_order"`
}

type Config struct {
	BaseURL  string   `yaml:"base_url"  json:"base_url"`
	TokenURL string   `yaml:"token_url" json:"token_url"`
	Token    string   `yaml:"token"     json:"token"`
	LogFile  string   `yaml:"log_file"  json:"log_file"`
	Query    Defaults `yaml:"query"     json:"query"`

	path string
}

func newConfig() *Config {
	return &Config{
		BaseURL:  constants.DefaultBaseURL,
		TokenURL: constants.DefaultTokenURL,
		Query: Defaults{
			TopK:          constants.DefaultTopK,
			MinSimilarity: constants.DefaultMinSimilarity,
			PageSize:      constants.DefaultPageSize,
			SortBy:        constants.DefaultSortBy,
			SortOrder:     constants.DefaultSortOrder,
		},
	}
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := newConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.path = path

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return &ConfigInitError{msg: "base_url is not set"}
	}
	if cfg.Query.TopK < 1 {
		cfg.Query.TopK = constants.DefaultTopK
	}
	if cfg.Query.MinSimilarity < 0 || cfg.Query.MinSimilarity > 1 {
		return &ConfigInitError{
			msg: fmt.Sprintf("min_similarity %v is outside [0, 1]", cfg.Query.MinSimilarity),
		}
	}
	if cfg.Query.PageSize < 1 {
		cfg.Query.PageSize = constants.DefaultPageSize
	}

	switch cfg.Query.SortOrder {
	case "", "asc", "desc":
	default:
		return &ConfigInitError{
			msg: fmt.Sprintf("sort_order %q must be asc or desc", cfg.Query.SortOrder),
		}
	}
	return nil
}

// ChangeToken swaps the stored personal token and persists the change.
// An empty token reverts to session-endpoint authentication.
func (cfg *Config) ChangeToken(token string) error {
	cfg.Token = token
	return cfg.Save()
}

func (cfg *Config) Save() error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(cfg.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
