package session

import "time"

// Network selects how the service is reached.
type Network string

const (
	NetworkTCP      Network = "tcp"
	NetworkAbstract Network = "abstract"
)

const (
	DefaultTCPAddress   = "127.0.0.1:9999"
	DefaultAbstractName = "panda-1.1.0"
)

// BackoffConfig defines dial retry backoff behavior.
type BackoffConfig struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	Jitter       bool
}

// Config defines one connection's transport parameters. Timeouts apply to
// each blocking read or write; zero disables the deadline.
type Config struct {
	Network            Network
	Address            string
	ConnectTimeout     time.Duration
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	MaxConnectAttempts int
	Backoff            BackoffConfig
}

// DefaultConfig targets an adb-forwarded TCP port on localhost.
func DefaultConfig() Config {
	return Config{
		Network:            NetworkTCP,
		Address:            DefaultTCPAddress,
		ConnectTimeout:     5 * time.Second,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		MaxConnectAttempts: 1,
		Backoff: BackoffConfig{
			InitialDelay: 250 * time.Millisecond,
			Multiplier:   2.0,
			MaxDelay:     5 * time.Second,
			Jitter:       true,
		},
	}
}

// WithDefaults fills unset fields from DefaultConfig. A zero
// MaxConnectAttempts is unset; use a negative value to retry until the
// dial context ends.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.Network == "" {
		c.Network = def.Network
	}
	if c.Address == "" {
		if NormalizeNetwork(c.Network) == NetworkAbstract {
			c.Address = DefaultAbstractName
		} else {
			c.Address = def.Address
		}
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.MaxConnectAttempts == 0 {
		c.MaxConnectAttempts = def.MaxConnectAttempts
	}
	if c.Backoff == (BackoffConfig{}) {
		c.Backoff = def.Backoff
	}
	return c
}
