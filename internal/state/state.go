package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mnemonic-notes/mnemo/internal/api"
	"github.com/mnemonic-notes/mnemo/internal/auth"
	"github.com/mnemonic-notes/mnemo/internal/config"
	"github.com/mnemonic-notes/mnemo/internal/constants"
	"github.com/mnemonic-notes/mnemo/internal/logging"
	"github.com/mnemonic-notes/mnemo/internal/notecache"
	"github.com/mnemonic-notes/mnemo/internal/query"
)

// State bundles everything a command needs: config, logger, the token
// cache, the API client behind it, the cached note store, and the query
// engine. Constructed once per invocation in the root command.
type State struct {
	Config      *config.Config
	Logger      *zap.Logger
	Tokens      *auth.Cache
	Client      *api.Client
	Notes       *notecache.Store
	Engine      *query.Engine
	Home        string
	SessionPath string
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(home, constants.ConfigDir, constants.LogFile)
	}
	logger := logging.New(logPath, viper.GetBool("debug"))

	var provider auth.Provider = auth.NewSessionProvider(cfg.TokenURL, api.RequestTimeout)
	if cfg.Token != "" {
		provider = &auth.StaticProvider{Token: cfg.Token}
	}
	tokens := auth.NewCache(provider, logger)
	client := api.NewClient(cfg.BaseURL, tokens, logger)

	return &State{
		Config:      cfg,
		Logger:      logger,
		Tokens:      tokens,
		Client:      client,
		Notes:       notecache.NewStore(client, logger),
		Engine:      query.NewEngine(client, logger),
		Home:        home,
		SessionPath: filepath.Join(home, constants.ConfigDir, constants.SessionFile),
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	return config.Load(home)
}
