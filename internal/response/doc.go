// SPDX-License-Identifier: MPL-2.0

// Package response renders execution results into the uniform envelope returned to
// every caller.
//
// An Envelope carries the text content, the error flag and metadata stamped at
// formatting time: operation name, duration in milliseconds since the call started,
// timestamp and working directory. Success content is the operation's rendering of
// stdout; failure content is "<Kind>: <message>" followed by a hint and the engine's
// stderr when it adds information. Encode writes envelopes as text, JSON or YAML.
package response
