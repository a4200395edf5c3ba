// SPDX-License-Identifier: MPL-2.0

// Package container turns canonical operation parameters into engine CLI invocations
// and runs them.
//
// Builder holds exactly one argv rule per operation and produces a Spec: the argv
// (binary first, every value a discrete element), the timeout resolved from the
// operation's class, optional stdin (registry login only) and whether the daemon must
// be probed first. The compose prefix comes from ComposeResolver, which probes
// "docker-compose --version" once per process and otherwise falls back to the
// "docker compose" plugin.
//
// Executor runs a Spec without a shell. It rejects binaries outside its allow-list,
// probes the daemon with "docker version" when required, enforces the deadline by
// killing the process, and classifies failures by matching stderr against an ordered
// pattern table. It never retries.
package container
