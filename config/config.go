package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mylxsw/glacier/infra"
	"github.com/mylxsw/glacier/starter/app"
	"github.com/mylxsw/kimi-gateway/pkg/misc"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration file
const (
	EnvGatewayToken = "MOLTBOT_GATEWAY_TOKEN"
	EnvAPIKey       = "KIMI_API_KEY"
)

// DefaultConfigFile is read when --conf is not given, it may be absent
const DefaultConfigFile = "config.yaml"

var (
	ErrGatewayTokenRequired = errors.New("gateway token is required")
	ErrAPIKeyRequired       = errors.New("upstream api key is required")
)

type Config struct {
	// GatewayToken shared secret every request must carry as ?token=
	GatewayToken string `json:"-" yaml:"gateway_token,omitempty"`
	// UIPath optional html file replacing the embedded chat page
	UIPath string `json:"ui_path,omitempty" yaml:"ui_path,omitempty"`
	// ProxyURL proxy server address for upstream calls
	ProxyURL string `json:"proxy_url,omitempty" yaml:"proxy_url,omitempty"`
	// TracePath file receiving OpenTelemetry traces, tracing is off when empty
	TracePath string `json:"trace_path,omitempty" yaml:"trace_path,omitempty"`

	// Upstream chat completion API
	Upstream UpstreamConfig `json:"upstream,omitempty" yaml:"upstream,omitempty"`
	// Models served by /api/models
	Models []Model `json:"models,omitempty" yaml:"models,omitempty"`
}

func (conf *Config) Init() {
	conf.Upstream.ServerURL = misc.Default(conf.Upstream.ServerURL, DefaultServerURL)
	conf.Upstream.DefaultModel = misc.Default(conf.Upstream.DefaultModel, "moonshot-v1-8k")
	conf.Upstream.Timeout = misc.DurationDefault(conf.Upstream.Timeout, 0)

	if len(conf.Models) == 0 {
		conf.Models = DefaultModels()
	}
}

// Validate reports configuration that makes the gateway unusable
func (conf *Config) Validate() error {
	if conf.GatewayToken == "" {
		return ErrGatewayTokenRequired
	}

	if conf.Upstream.APIKey == "" {
		return ErrAPIKeyRequired
	}

	return nil
}

// applyEnv overrides secrets with values from the environment
func (conf *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvGatewayToken); ok && v != "" {
		conf.GatewayToken = v
	}

	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		conf.Upstream.APIKey = v
	}
}

// Load reads the YAML file at path and applies environment overrides.
// A missing file is an error only when required is true.
func Load(path string, required bool, lookupEnv func(string) (string, bool)) (*Config, error) {
	var conf Config

	data, err := os.ReadFile(path)
	if err != nil {
		if required || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file failed: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("parse config file failed: %w", err)
	}

	conf.applyEnv(lookupEnv)
	conf.Init()

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func Register(ins *app.App) {
	ins.AddStringFlag("listen", ":8080", "Web 服务监听地址")
	ins.AddStringFlag("log-path", "", "log file storage directory, leave blank to write to standard output")
	ins.AddBoolFlag("log-color", "whether to enable colorful logs")

	ins.Singleton(func(flg infra.FlagContext) *Config {
		confFilePath := flg.String("conf")
		required := confFilePath != ""
		if confFilePath == "" {
			confFilePath = DefaultConfigFile
		}

		conf, err := Load(confFilePath, required, os.LookupEnv)
		if err != nil {
			panic(fmt.Errorf("load config failed: %s", err))
		}

		return conf
	})
}
