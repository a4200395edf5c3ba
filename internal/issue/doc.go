// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// The catalog holds one entry per error kind with a short hint, used in failure
// envelopes, and a Markdown troubleshooting page rendered with glamour for verbose
// CLI output. ActionableError wraps ambient failures (configuration, links) with
// context and suggestions for fixing them.
package issue
