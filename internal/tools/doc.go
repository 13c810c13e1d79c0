// Package tools wraps the host-side commands pandactl shells out to.
//
// Ownership boundary:
// - command execution behind a swappable runner
// - adb port forwarding from a local TCP port to the service socket
package tools
