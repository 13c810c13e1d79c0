package session

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	ErrInvalidNetwork  = errors.New("session: invalid network")
	ErrAddressRequired = errors.New("session: address required")
	ErrInvalidAddress  = errors.New("session: invalid tcp address")
	ErrNegativeTimeout = errors.New("session: negative timeout")
)

func NormalizeNetwork(n Network) Network {
	if strings.TrimSpace(string(n)) == "" {
		return NetworkTCP
	}
	return Network(strings.ToLower(strings.TrimSpace(string(n))))
}

// Validate checks the transport selection before any dial.
func (c Config) Validate() error {
	network := NormalizeNetwork(c.Network)
	switch network {
	case NetworkTCP, NetworkAbstract:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidNetwork, c.Network)
	}

	addr := strings.TrimSpace(c.Address)
	if addr == "" {
		return ErrAddressRequired
	}
	if network == NetworkTCP {
		_, port, err := net.SplitHostPort(addr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
		if port == "" {
			return fmt.Errorf("%w: missing port in %q", ErrInvalidAddress, addr)
		}
	}
	if c.ConnectTimeout < 0 || c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return ErrNegativeTimeout
	}
	return nil
}

// dialTarget maps the configured network onto a net.Dial network/address
// pair. Abstract names use the Linux "@" convention for the leading NUL.
func (c Config) dialTarget() (string, string) {
	addr := strings.TrimSpace(c.Address)
	if NormalizeNetwork(c.Network) == NetworkAbstract {
		if !strings.HasPrefix(addr, "@") {
			addr = "@" + addr
		}
		return "unix", addr
	}
	return "tcp", addr
}

// Endpoint renders the configured target for logs and errors.
func (c Config) Endpoint() string {
	network, addr := c.dialTarget()
	if network == "unix" {
		return "abstract:" + strings.TrimPrefix(addr, "@")
	}
	return "tcp:" + addr
}
