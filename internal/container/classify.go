// SPDX-License-Identifier: MPL-2.0

package container

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dockwright/dockwright/internal/fault"
)

// classifiers are checked in order; the first match wins. Specific daemon
// conditions come before resource lookups, which come before the catch-all.
// Timeouts are detected from the context deadline, not from stderr.
var classifiers = []struct {
	kind    fault.Kind
	pattern *regexp.Regexp
}{
	{fault.DaemonUnavailable, regexp.MustCompile(`(?i)cannot connect to the docker daemon|is the docker daemon running`)},
	{fault.PermissionDenied, regexp.MustCompile(`(?i)permission denied`)},
	{fault.ContainerNotFound, regexp.MustCompile(`(?i)no such container`)},
	{fault.ImageNotFound, regexp.MustCompile(`(?i)no such image|pull access denied|manifest unknown|repository does not exist`)},
	{fault.PortConflict, regexp.MustCompile(`(?i)port is already allocated|address already in use`)},
	{fault.NetworkNotFound, regexp.MustCompile(`(?i)network not found|no such network|network \S+ not found`)},
	{fault.VolumeNotFound, regexp.MustCompile(`(?i)volume not found|no such volume|volume \S+ not found`)},
}

// Classify maps the stderr and exit code of a failed command to an error kind.
func Classify(stderr string, exitCode int) *fault.Error {
	kind := fault.CommandFailed
	for _, c := range classifiers {
		if c.pattern.MatchString(stderr) {
			kind = c.kind
			break
		}
	}
	return &fault.Error{
		Kind:     kind,
		Message:  failureMessage(stderr, exitCode),
		Stderr:   stderr,
		ExitCode: exitCode,
	}
}

// failureMessage returns the last non-blank stderr line, which is where the engine
// prints its error, with the common "Error response from daemon:" prefix removed.
func failureMessage(stderr string, exitCode int) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "Error response from daemon: ")
		line = strings.TrimPrefix(line, "Error: ")
		return line
	}
	return fmt.Sprintf("command exited with code %d", exitCode)
}
