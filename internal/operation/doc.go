// SPDX-License-Identifier: MPL-2.0

// Package operation defines every container-engine action dockwright can translate,
// together with its parameter schema.
//
// A Definition lists the logical fields an operation accepts (their kinds, flag
// spellings, positional order, closed value sets and format checks). The schema is
// consumed by the normalizer, which turns token lists and structured objects into
// Params, and by the protocol adapter, which publishes it as a JSON schema. The argv
// rules live in package container so that the schema stays free of engine details.
package operation
