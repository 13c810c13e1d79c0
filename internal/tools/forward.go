package tools

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrForward = errors.New("tools: adb forward failed")

// Forward describes one adb port forward from the host to the device.
type Forward struct {
	ADB      string
	Serial   string
	Local    string
	Abstract string
}

// Args renders the adb argument list, e.g.
// adb -s SERIAL forward tcp:9999 localabstract:panda-1.1.0.
func (f Forward) Args() ([]string, error) {
	_, port, err := net.SplitHostPort(f.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: local address %q: %v", ErrForward, f.Local, err)
	}
	name := strings.TrimPrefix(strings.TrimSpace(f.Abstract), "@")
	if name == "" {
		return nil, fmt.Errorf("%w: empty socket name", ErrForward)
	}
	var args []string
	if f.Serial != "" {
		args = append(args, "-s", f.Serial)
	}
	return append(args, "forward", "tcp:"+port, "localabstract:"+name), nil
}

// Run installs the forward with runner.
func (f Forward) Run(ctx context.Context, runner CommandRunner) error {
	args, err := f.Args()
	if err != nil {
		return err
	}
	adb := f.ADB
	if adb == "" {
		adb = "adb"
	}
	_, stderr, code, err := runner.Run(ctx, adb, args...)
	if err != nil {
		return fmt.Errorf("%w: exit %d: %s: %v", ErrForward, code, strings.TrimSpace(string(stderr)), err)
	}
	if code != 0 {
		return fmt.Errorf("%w: exit %d: %s", ErrForward, code, strings.TrimSpace(string(stderr)))
	}
	log.Info().Str("local", f.Local).Str("socket", f.Abstract).Msg("adb forward installed")
	return nil
}
