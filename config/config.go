package config

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Secret  string `yaml:"secret" json:"secret"`
	JwtTtl  int    `yaml:"jwt_ttl" json:"jwt_ttl"` // seconds
	CorsAll bool   `yaml:"cors_all" json:"cors_all"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(path.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(path.Join(c.System.Workdir, "data"), 0755)
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "doshihardware",
			Location: "Africa/Nairobi",
			Workdir:  "/var/doshihardware",
			Debug:    true,
		},
		Web: WebConfig{
			Host:    "0.0.0.0",
			Port:    1816,
			Secret:  "9b6de5cc-0731-4bf1-xop6-0f568ac9da37",
			JwtTtl:  86400,
			CorsAll: true,
		},
		Database: DBConfig{
			Type:     "postgres",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "doshihardware",
			User:     "postgres",
			Passwd:   "",
			MaxConn:  100,
			IdleConn: 10,
		},
		Logger: LogConfig{
			Mode:       "development",
			FileEnable: true,
			Filename:   "/var/doshihardware/doshihardware.log",
		},
	}
}

func setEnvStringValue(name string, val *string) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

func setEnvBoolValue(name string, val *bool) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig loads the YAML configuration file and applies environment
// variable overrides. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig()
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "config parse error: %v\n", err)
			}
		}
	}

	setEnvStringValue("DOSHI_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("DOSHI_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvStringValue("DOSHI_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("DOSHI_WEB_PORT", &cfg.Web.Port)
	setEnvStringValue("DOSHI_WEB_SECRET", &cfg.Web.Secret)
	setEnvStringValue("DOSHI_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("DOSHI_DB_PORT", &cfg.Database.Port)
	setEnvStringValue("DOSHI_DB_NAME", &cfg.Database.Name)
	setEnvStringValue("DOSHI_DB_USER", &cfg.Database.User)
	setEnvStringValue("DOSHI_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("DOSHI_DB_DEBUG", &cfg.Database.Debug)
	setEnvStringValue("DOSHI_LOGGER_MODE", &cfg.Logger.Mode)

	return cfg
}
