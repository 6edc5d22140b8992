package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

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

// ShopConfig carries the storefront tunables: the default page size used by
// the paginator and the base URL prefixed to stored media references.
type ShopConfig struct {
	PageSize int    `yaml:"page_size" json:"page_size"`
	MediaURL string `yaml:"media_url" json:"media_url"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system" json:"system"`
	Web      WebConfig  `yaml:"web" json:"web"`
	Database DBConfig   `yaml:"database" json:"database"`
	Shop     ShopConfig `yaml:"shop" json:"shop"`
	Logger   LogConfig  `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "openshelf",
		Location: "Asia/Shanghai",
		Workdir:  "/var/openshelf",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-openshelf-b712-0899e8a6-secret",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "openshelf",
		User:     "postgres",
		Passwd:   "root",
		MaxConn:  100,
		IdleConn: 10,
	},
	Shop: ShopConfig{
		PageSize: 10,
		MediaURL: "/media",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/openshelf/openshelf.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file falls back to DefaultAppConfig.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	if cfile == "" {
		cfile = "openshelf.yml"
	}
	if _, err := os.Stat(cfile); err != nil {
		cfg = DefaultAppConfig
	} else {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
	}

	setEnvValue("OPENSHELF_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("OPENSHELF_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("OPENSHELF_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("OPENSHELF_DB_HOST", &cfg.Database.Host)
	setEnvValue("OPENSHELF_DB_NAME", &cfg.Database.Name)
	setEnvValue("OPENSHELF_DB_USER", &cfg.Database.User)
	setEnvValue("OPENSHELF_DB_PWD", &cfg.Database.Passwd)

	if cfg.Shop.PageSize <= 0 {
		cfg.Shop.PageSize = 10
	}
	return cfg
}

// DSN assembles the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Name, c.Passwd)
}
