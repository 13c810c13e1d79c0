package config

import (
	"fmt"
	"os"
	"strings"
)

// Template returns a starter config for the given transport kind.
func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "tcp", "":
		return tcpTemplate, nil
	case "abstract":
		return abstractTemplate, nil
	default:
		return "", fmt.Errorf("config: unknown template kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const tcpTemplate = `# adb forward tcp:9999 localabstract:panda-1.1.0
network = "tcp"
address = "127.0.0.1:9999"
connect_timeout = "5s"
read_timeout = "10s"
write_timeout = "10s"
# negative retries until the command deadline
max_connect_attempts = 3

[backoff]
initial = "250ms"
multiplier = 2.0
max = "5s"
jitter = true

[limits]
max_string_bytes = 16777216
max_blob_bytes = 67108864
max_chunk_bytes = 67108864
max_list_count = 1048576

[log]
level = "info"
`

const abstractTemplate = `# on-device access to the service socket
network = "abstract"
address = "panda-1.1.0"
read_timeout = "10s"
write_timeout = "10s"

[log]
level = "info"
`
