// SPDX-License-Identifier: MPL-2.0

// Package mcpserver exposes the dispatch table as Model Context Protocol tools.
//
// Every table entry (operation, alias or workflow) becomes one tool whose input
// schema is generated from the entry's field definitions. Schemas carry no
// "required" list, so a missing field reaches the normalizer and comes back as a
// MissingRequiredField envelope instead of a protocol error. Each call returns the
// response envelope, encoded as JSON, as the single text content block, with the
// result's IsError mirroring the envelope.
package mcpserver
