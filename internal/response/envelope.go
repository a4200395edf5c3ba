// SPDX-License-Identifier: MPL-2.0

package response

import (
	"time"
)

type (
	// Envelope is the only object returned across the system boundary.
	Envelope struct {
		Content  string   `json:"content" yaml:"content"`
		IsError  bool     `json:"isError" yaml:"isError"`
		Metadata Metadata `json:"metadata" yaml:"metadata"`
	}

	// Metadata describes the call that produced an envelope.
	Metadata struct {
		// Operation is the operation, alias or workflow name.
		Operation string `json:"operation" yaml:"operation"`
		// Duration is the elapsed time in milliseconds.
		Duration int64 `json:"duration" yaml:"duration"`
		// Timestamp is the formatting time.
		Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
		// WorkingDirectory is the process working directory.
		WorkingDirectory string `json:"workingDirectory" yaml:"workingDirectory"`
	}
)

// Elapsed returns the duration as a time.Duration.
func (m Metadata) Elapsed() time.Duration {
	return time.Duration(m.Duration) * time.Millisecond
}
