package config

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "plantstore.yml"

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig http listener configuration
type WebConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	BodyLimit       string `yaml:"body_limit"`
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // seconds
	Metrics         bool   `yaml:"metrics"`
	Swagger         bool   `yaml:"swagger"`
}

// DBConfig database configuration
type DBConfig struct {
	Type     string `yaml:"type"` // sqlite | postgres
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"` // database name, or file path for sqlite
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// LogConfig logger configuration
type LogConfig struct {
	Mode       string `yaml:"mode"` // development | production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system"`
	Web      WebConfig `yaml:"web"`
	Database DBConfig  `yaml:"database"`
	Logger   LogConfig `yaml:"logger"`
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

// SqlitePath resolves the sqlite database file. Relative names live in the data dir.
func (c *AppConfig) SqlitePath() string {
	name := c.Database.Name
	if name == "" {
		name = "plants.db"
	}
	if name == ":memory:" || path.IsAbs(name) || strings.HasPrefix(name, "file:") {
		return name
	}
	return path.Join(c.GetDataDir(), name)
}

func (c *AppConfig) initDirs() error {
	for _, dir := range []string{c.GetDataDir(), c.GetLogDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create dir %s", dir)
		}
	}
	return nil
}

// DefaultAppConfig returns the configuration used when no file is found.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "plantstore",
			Location: "UTC",
			Workdir:  ".",
			Debug:    false,
		},
		Web: WebConfig{
			Host:            "0.0.0.0",
			Port:            5555,
			BodyLimit:       "1M",
			ShutdownTimeout: 10,
			Metrics:         true,
			Swagger:         true,
		},
		Database: DBConfig{
			Type:     "sqlite",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "plants.db",
			User:     "postgres",
			Passwd:   "",
			MaxConn:  20,
			IdleConn: 5,
			Debug:    false,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "logs/plantstore.log",
		},
	}
}

// LoadConfig reads cfile (falling back to plantstore.yml and /etc/plantstore.yml),
// applies environment overrides and creates the working directories.
func LoadConfig(cfile string) (*AppConfig, error) {
	if cfile == "" {
		cfile = defaultConfigFile
	}
	if !fileExists(cfile) {
		cfile = "/etc/plantstore.yml"
	}

	cfg := DefaultAppConfig()
	if fileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfile)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", cfile)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.initDirs(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnvOverrides() error {
	setEnvValue("PLANTSTORE_SYSTEM_WORKER_DIR", &c.System.Workdir)
	setEnvValue("PLANTSTORE_WEB_HOST", &c.Web.Host)
	setEnvValue("PLANTSTORE_DB_TYPE", &c.Database.Type)
	setEnvValue("PLANTSTORE_DB_HOST", &c.Database.Host)
	setEnvValue("PLANTSTORE_DB_NAME", &c.Database.Name)
	setEnvValue("PLANTSTORE_DB_USER", &c.Database.User)
	setEnvValue("PLANTSTORE_DB_PWD", &c.Database.Passwd)
	setEnvValue("PLANTSTORE_LOGGER_MODE", &c.Logger.Mode)

	for name, val := range map[string]*int{
		"PLANTSTORE_WEB_PORT": &c.Web.Port,
		"PLANTSTORE_DB_PORT":  &c.Database.Port,
	} {
		if err := setEnvIntValue(name, val); err != nil {
			return err
		}
	}
	for name, val := range map[string]*bool{
		"PLANTSTORE_SYSTEM_DEBUG": &c.System.Debug,
		"PLANTSTORE_DB_DEBUG":     &c.Database.Debug,
	} {
		if err := setEnvBoolValue(name, val); err != nil {
			return err
		}
	}
	return nil
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) error {
	evalue := os.Getenv(name)
	if evalue == "" {
		return nil
	}
	v, err := cast.ToIntE(evalue)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", name)
	}
	*val = v
	return nil
}

func setEnvBoolValue(name string, val *bool) error {
	evalue := os.Getenv(name)
	if evalue == "" {
		return nil
	}
	v, err := cast.ToBoolE(evalue)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", name)
	}
	*val = v
	return nil
}

func fileExists(file string) bool {
	info, err := os.Stat(file)
	return err == nil && !info.IsDir()
}
