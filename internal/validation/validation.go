package validation

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

var (
	// gameIDRegex allows only lowercase alphanumeric characters and hyphens
	gameIDRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// ValidateGameID validates the game segment of the upstream authorize path.
// It ends up inside a URL path, so anything beyond a plain slug is rejected.
func ValidateGameID(id string) error {
	if len(id) < 1 {
		return errors.New("game ID cannot be empty")
	}
	if len(id) > 64 {
		return errors.New("game ID must be 64 characters or less")
	}

	if strings.Contains(id, "..") {
		return errors.New("game ID cannot contain '..'")
	}
	if strings.Contains(id, "/") || strings.Contains(id, "\\") {
		return errors.New("game ID cannot contain slashes")
	}

	if !gameIDRegex.MatchString(id) {
		return errors.New("game ID must contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(id, "-") || strings.HasSuffix(id, "-") {
		return errors.New("game ID cannot start or end with a hyphen")
	}

	return nil
}

// ValidateListenAddress validates a host:port listen address (host may be empty)
func ValidateListenAddress(addr string) error {
	if addr == "" {
		return errors.New("listen address cannot be empty")
	}

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port %q", port)
	}
	if n < 0 || n > 65535 {
		return fmt.Errorf("port %d out of range", n)
	}

	return nil
}
