// SPDX-License-Identifier: MPL-2.0

package operation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/distribution/reference"
	"github.com/docker/go-connections/nat"
	"github.com/docker/go-units"
)

// CheckPort accepts a port mapping such as "8080:80", "127.0.0.1:53:53/udp" or "3000-3005".
func CheckPort(v string) error {
	if _, err := nat.ParsePortSpec(v); err != nil {
		return fmt.Errorf("not a valid port mapping: %w", err)
	}
	return nil
}

// CheckMemory accepts a memory size such as "512m" or "2g".
func CheckMemory(v string) error {
	n, err := units.RAMInBytes(v)
	if err != nil {
		return fmt.Errorf("not a valid memory size: %w", err)
	}
	if n <= 0 {
		return errors.New("memory size must be positive")
	}
	return nil
}

// CheckCPUs accepts a positive decimal number of CPUs such as "0.5" or "2".
func CheckCPUs(v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("must be a positive decimal, got %q", v)
	}
	return nil
}

// CheckImageRef accepts any image reference the engine would accept.
func CheckImageRef(v string) error {
	if _, err := reference.ParseAnyReference(v); err != nil {
		return fmt.Errorf("not a valid image reference: %w", err)
	}
	return nil
}

// CheckRestartPolicy accepts no, always, unless-stopped and on-failure with an optional retry count.
func CheckRestartPolicy(v string) error {
	switch v {
	case "no", "always", "unless-stopped", "on-failure":
		return nil
	}
	if n, ok := strings.CutPrefix(v, "on-failure:"); ok {
		if _, err := ParseCount(n); err == nil {
			return nil
		}
	}
	return fmt.Errorf("not one of no, always, unless-stopped, on-failure[:N], got %q", v)
}

// CheckEnvKey rejects KEY=VALUE pairs without a key.
func CheckEnvKey(k string) error {
	if strings.TrimSpace(k) == "" {
		return errors.New("key must not be empty")
	}
	if strings.ContainsAny(k, "= \t\n") {
		return fmt.Errorf("key %q must not contain '=' or whitespace", k)
	}
	return nil
}

// ParseCount parses a non-negative integer.
func ParseCount(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("must be a non-negative integer, got %q", v)
	}
	return n, nil
}
