// SPDX-License-Identifier: MPL-2.0

package operation

import (
	"strings"
)

const (
	msgNoRunningContainers = "No running containers found"
	msgNoContainers        = "No containers found"
	msgNoImages            = "No images found"
	msgNoVolumes           = "No volumes found"
)

// tableRows returns the non-blank lines of a listing, without the header row
// when the listing is in table form.
func tableRows(stdout string, hasHeader bool) []string {
	var rows []string
	for line := range strings.Lines(stdout) {
		if strings.TrimSpace(line) != "" {
			rows = append(rows, strings.TrimRight(line, "\r\n"))
		}
	}
	if hasHeader && len(rows) > 0 {
		rows = rows[1:]
	}
	return rows
}

// listing renders stdout unchanged unless the listing has no rows.
func listing(empty func(p Params) string) func(Params, string) string {
	return func(p Params, stdout string) string {
		if len(tableRows(stdout, !p.Bool("quiet"))) == 0 {
			return empty(p)
		}
		return strings.TrimRight(stdout, "\n")
	}
}

func emptyContainers(p Params) string {
	if p.Bool("all") {
		return msgNoContainers
	}
	return msgNoRunningContainers
}

func constant(msg string) func(Params) string {
	return func(Params) string { return msg }
}
