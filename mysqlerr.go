package mysqlerr

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/juju/errors"
	"github.com/ovh/configstore"

	"github.com/ovh/mysqlerr/category"
	"github.com/ovh/mysqlerr/db/dberrors"
)

var (
	// Version holds the tag of current mysqlerr release
	Version string
	// Commit is the current git commit hash
	Commit string
	// App name (from configuration)
	App string

	// FPort is the port on which the http server listens
	FPort uint
	// FDebug is a flag to toggle debug log
	FDebug bool
	// FLogsFormat represents the format used by the Logrus formatter.
	FLogsFormat string
)

// AppName returns the name of the application (from config)
func AppName() string {
	if App == "" {
		return DefaultAppName
	}
	return App
}

const (
	// DefaultAppName is used when the configuration does not name the application
	DefaultAppName = "mysqlerr"

	// CfgSecretAlias is the key for the config item containing global configuration data
	CfgSecretAlias = "mysqlerr-cfg"

	// DefaultMaxBodyBytes caps the size of request bodies when server_options leaves it unset
	DefaultMaxBodyBytes = 256 * 1024
)

// Cfg holds global configuration data
type Cfg struct {
	ApplicationName string `json:"application_name"`
	// ClassificationOverrides maps server error numbers to category names,
	// on top of the builtin classification table
	ClassificationOverrides map[string]string `json:"classification_overrides"`
	ServerOptions           ServerOpt         `json:"server_options"`
}

// ServerOpt holds the configuration for the http server
type ServerOpt struct {
	MaxBodyBytes int64 `json:"max_body_bytes"`
}

// Overrides converts the configured classification overrides into table entries, sorted by code
func (c *Cfg) Overrides() ([]dberrors.Entry, error) {
	entries := make([]dberrors.Entry, 0, len(c.ClassificationOverrides))
	for code, name := range c.ClassificationOverrides {
		n, err := strconv.Atoi(code)
		if err != nil {
			return nil, errors.NotValidf("classification override code %q", code)
		}
		cat, err := category.Parse(name)
		if err != nil {
			return nil, errors.NewNotValid(err, fmt.Sprintf("classification override for code %d", n))
		}
		entries = append(entries, dberrors.Entry{Code: n, Category: cat})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries, nil
}

var global *Cfg

// Config returns the global configuration data of this instance
// once lazy-loaded from configstore.
// A missing configuration item yields a NotFound error, a malformed one a NotValid error.
func Config(store *configstore.Store) (*Cfg, error) {
	if global == nil {
		cfgStr, err := configstore.Filter().Slice(CfgSecretAlias).Squash().Store(store).MustGetFirstItem().Value()
		if err != nil {
			return nil, errors.NewNotFound(err, "failed to get mysqlerr configuration from store")
		}

		cfg := &Cfg{}
		if err := json.Unmarshal([]byte(cfgStr), cfg); err != nil {
			return nil, errors.NewNotValid(err, "failed to unmarshal mysqlerr configuration")
		}
		if _, err := cfg.Overrides(); err != nil {
			return nil, err
		}
		if cfg.ServerOptions.MaxBodyBytes <= 0 {
			cfg.ServerOptions.MaxBodyBytes = DefaultMaxBodyBytes
		}

		App = cfg.ApplicationName
		global = cfg
	}

	return global, nil
}
