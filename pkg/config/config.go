// Package config loads chartkit settings from a TOML file and the environment.
//
// Settings are resolved in order: built-in defaults, then the config file,
// then environment variables. The config file path comes from the --config
// flag, the CHARTKIT_CONFIG variable, or ~/.config/chartkit/config.toml; a
// missing default file is not an error.
//
// # File Format
//
//	theme = "~/themes/dark.toml"
//
//	[render]
//	scale = 2
//	native_raster = false
//
//	[cache]
//	backend = "redis"          # file (default), redis, none
//	redis_url = "redis://localhost:6379/0"
//
//	[store]
//	backend = "mongo"          # memory (default), file, mongo
//	mongo_url = "mongodb://localhost:27017"
//	database = "chartkit"
//
//	[server]
//	addr = ":8080"
//	request_timeout = "30s"
//
// # Environment
//
//   - CHARTKIT_CONFIG: config file path
//   - CHARTKIT_REDIS_URL: sets cache.redis_url and selects the redis backend
//   - CHARTKIT_MONGO_URL: sets store.mongo_url and selects the mongo backend
//   - CHARTKIT_ADDR: sets server.addr
package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/store"
)

// Environment variables read by [Config.ApplyEnv] and [Path].
const (
	EnvConfig   = "CHARTKIT_CONFIG"
	EnvRedisURL = "CHARTKIT_REDIS_URL"
	EnvMongoURL = "CHARTKIT_MONGO_URL"
	EnvAddr     = "CHARTKIT_ADDR"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the complete chartkit configuration.
type Config struct {
	// Theme is the path of a TOML theme file applied when a chart sets none.
	Theme  string       `toml:"theme"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds pipeline defaults.
type RenderConfig struct {
	Scale        float64 `toml:"scale"`
	NativeRaster bool    `toml:"native_raster"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// StoreConfig selects the saved chart backend.
type StoreConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	MongoURL string `toml:"mongo_url"`
	Database string `toml:"database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `toml:"addr"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	MaxBodyBytes   int64         `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{Scale: 2},
		Cache:  CacheConfig{Backend: CacheFile, Prefix: "chartkit:"},
		Store:  StoreConfig{Backend: StoreMemory, Database: "chartkit"},
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   10 << 20,
		},
	}
}

// Path returns the config file to load and whether it was chosen
// explicitly. flag wins over CHARTKIT_CONFIG, which wins over the default
// location.
func Path(flag string) (path string, explicit bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", "chartkit", "config.toml"), false
}

// Load reads the config file chosen by [Path], applies the environment and
// validates the result. A missing file is only an error when it was chosen
// explicitly.
func Load(flag string) (Config, error) {
	cfg := Default()
	path, explicit := Path(flag)
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			if !os.IsNotExist(err) || explicit {
				return cfg, err
			}
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

func (c *Config) decodeFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "stat config %s", path)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	c.Theme = expandHome(c.Theme)
	c.Cache.Dir = expandHome(c.Cache.Dir)
	c.Store.Dir = expandHome(c.Store.Dir)
	return nil
}

// ApplyEnv overlays environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
		c.Cache.Backend = CacheRedis
	}
	if v := getenv(EnvMongoURL); v != "" {
		c.Store.MongoURL = v
		c.Store.Backend = StoreMongo
	}
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks backend names, URLs and paths.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if err := errors.ValidateURL(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "cache.redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case StoreMemory, StoreFile:
	case StoreMongo:
		if err := errors.ValidateURL(c.Store.MongoURL, "mongodb", "mongodb+srv"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "store.mongo_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (must be one of: memory, file, mongo)", c.Store.Backend)
	}

	for name, p := range map[string]string{"theme": c.Theme, "cache.dir": c.Cache.Dir, "store.dir": c.Store.Dir} {
		if p == "" {
			continue
		}
		if err := errors.ValidatePath(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "%s", name)
		}
	}
	if c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.scale must not be negative")
	}
	return nil
}

// OpenCache opens the configured cache. defaultDir is used by the file
// backend when no dir is configured.
func (c CacheConfig) OpenCache(ctx context.Context, defaultDir string) (cache.Cache, error) {
	switch c.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.RedisURL, c.Prefix)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "open redis cache")
		}
		return rc, nil
	default:
		dir := c.Dir
		if dir == "" {
			dir = defaultDir
		}
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// OpenStore opens the configured saved chart store.
func (s StoreConfig) OpenStore(ctx context.Context) (store.Store, error) {
	switch s.Backend {
	case StoreMongo:
		return store.NewMongoStore(ctx, s.MongoURL, s.Database)
	case StoreFile:
		return store.NewFileStore(s.Dir)
	default:
		return store.NewMemoryStore(), nil
	}
}

// ThemeJSON loads the configured theme file and encodes it for the
// pipeline. It returns nil when no theme is configured.
func (c *Config) ThemeJSON() (json.RawMessage, error) {
	if c.Theme == "" {
		return nil, nil
	}
	t, err := chart.LoadTheme(c.Theme)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "theme")
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode theme")
	}
	return data, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
