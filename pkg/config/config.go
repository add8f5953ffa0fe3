// Package config loads the client settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/journal"
	"github.com/doodlepoker/waspclient/pkg/log"
	"github.com/doodlepoker/waspclient/pkg/sign"
)

const (
	configDirPathEnv     = "DOODLE_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds every setting of the doodle client.
type Config struct {
	WaspAPIURL     string        `env:"WASP_API_URL" env-default:"127.0.0.1:9090" validate:"required"`
	WaspWSURL      string        `env:"WASP_WS_URL" env-default:"127.0.0.1:9090/chain/%chainId/ws" validate:"required"`
	ChainID        string        `env:"WASP_CHAIN_ID" validate:"omitempty,base58len=33"` // discovered from the node when empty
	Contract       string        `env:"DOODLE_CONTRACT" env-default:"b40a047a" validate:"hexadecimal,len=8"`
	Seed           string        `env:"DOODLE_SEED" validate:"omitempty,base58len=32"`
	SeedIndex      uint64        `env:"DOODLE_SEED_INDEX" env-default:"0"`
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY" env-default:"1s" validate:"gt=0"`
	MetricsAddr    string        `env:"METRICS_ADDR" env-default:""` // disabled when empty

	Log     log.Config
	Journal journal.Config
}

func getValidator() *validator.Validate {
	validate := validator.New()

	if err := validate.RegisterValidation("base58len", func(fl validator.FieldLevel) bool {
		want := fl.Param()
		raw := base58.Decode(fl.Field().String())
		return len(raw) > 0 && fmt.Sprint(len(raw)) == want
	}); err != nil {
		panic(err)
	}
	return validate
}

// Load reads the .env file in $DOODLE_CONFIG_DIR_PATH (default ".") and then
// the environment. Variables already set in the environment win.
func Load(lg log.Logger) (*Config, error) {
	lg = lg.WithName("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	configDotEnvPath := filepath.Join(configDirPath, ".env")
	lg.Info("Loading .env file", "path", configDotEnvPath)
	if err := godotenv.Load(configDotEnvPath); err != nil {
		lg.Warn(".env file not found", "path", configDotEnvPath)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ContractHname parses Contract.
func (c *Config) ContractHname() (codec.Hname, error) {
	return codec.ParseHname(c.Contract)
}

// ParsedChainID parses ChainID. ok is false when no chain is configured.
func (c *Config) ParsedChainID() (id codec.ChainID, ok bool, err error) {
	if c.ChainID == "" {
		return codec.ChainID{}, false, nil
	}
	id, err = codec.ParseChainID(c.ChainID)
	if err != nil {
		return codec.ChainID{}, false, err
	}
	return id, true, nil
}

// Signer derives the key pair at SeedIndex from Seed. It returns nil when no
// seed is configured.
func (c *Config) Signer() (sign.Signer, error) {
	if c.Seed == "" {
		return nil, nil
	}
	seed, err := sign.ParseSeed(c.Seed)
	if err != nil {
		return nil, err
	}
	return sign.NewED25519SignerFromSeed(seed, c.SeedIndex), nil
}
