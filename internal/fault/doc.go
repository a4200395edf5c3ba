// SPDX-License-Identifier: MPL-2.0

// Package fault defines the closed error taxonomy shared by every stage of the
// command pipeline.
//
// Validation kinds (MissingRequiredField, InvalidEnum, UnknownOperation) are produced
// before any subprocess is spawned. Execution kinds are produced only by the stderr
// classification table of the execution wrapper and always carry the raw stderr.
package fault
