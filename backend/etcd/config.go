package etcd

import (
	"errors"
	"fmt"
	"os"
	"time"

	etcd "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tarantool/go-txn/internal/options"
)

// DefaultDialTimeout is used when the config sets no dial timeout.
const DefaultDialTimeout = 5 * time.Second

var (
	// ErrNoEndpoints is returned for a config without endpoints.
	ErrNoEndpoints = errors.New("no etcd endpoints configured")
	// ErrInvalidMaxTxnOps is returned for a negative operation limit.
	ErrInvalidMaxTxnOps = errors.New("max_txn_ops must not be negative")
)

// Config describes how to reach an etcd cluster.
type Config struct {
	Endpoints   []string      `yaml:"endpoints"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	// MaxTxnOps must match the server's --max-txn-ops, 0 means the default.
	MaxTxnOps int `yaml:"max_txn_ops"`
}

// ParseConfig decodes a YAML config and validates it.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode etcd config: %w", err) //nolint:exhaustruct
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err //nolint:exhaustruct
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return Config{}, fmt.Errorf("failed to read etcd config: %w", err) //nolint:exhaustruct
	}

	return ParseConfig(data)
}

// Validate checks the config.
func (c Config) Validate() error {
	if len(c.Endpoints) == 0 {
		return ErrNoEndpoints
	}

	if c.MaxTxnOps < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxTxnOps, c.MaxTxnOps)
	}

	return nil
}

func (c Config) clientConfig(logger *zap.Logger) etcd.Config {
	dialTimeout := c.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = DefaultDialTimeout
	}

	return etcd.Config{
		Endpoints:   c.Endpoints,
		DialTimeout: dialTimeout,

		AutoSyncInterval:      0,
		DialKeepAliveTime:     0,
		DialKeepAliveTimeout:  0,
		MaxCallSendMsgSize:    0,
		MaxCallRecvMsgSize:    0,
		TLS:                   nil,
		Username:              c.Username,
		Password:              c.Password,
		RejectOldCluster:      false,
		DialOptions:           nil,
		Context:               nil,
		Logger:                logger,
		LogConfig:             nil,
		PermitWithoutStream:   false,
		MaxUnaryRetries:       0,
		BackoffWaitBetween:    0,
		BackoffJitterFraction: 0,
	}
}

// resolveOptions returns the options derived from the config, overridden by opts.
func (c Config) resolveOptions(opts []Option) backendOptions {
	if c.MaxTxnOps > 0 {
		opts = append([]Option{WithMaxTxnOps(c.MaxTxnOps)}, opts...)
	}

	return options.ApplyOptions(defaultOptions, opts)
}

// Dial connects to the cluster described by cfg. The returned backend owns
// the client; release it with Backend.Close.
func Dial(cfg Config, opts ...Option) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	applied := cfg.resolveOptions(opts)

	client, err := etcd.New(cfg.clientConfig(applied.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	return &Backend{
		client:    client,
		maxTxnOps: applied.maxTxnOps,
		logger:    applied.logger,
		closer:    client.Close,
	}, nil
}
