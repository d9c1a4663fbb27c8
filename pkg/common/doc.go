// SPDX-License-Identifier: GPL-3.0-or-later

// Package common contains simple, common packages shared by the rest
// of the module: CLI scaffolding, filesystem abstractions, connection
// tracing and logging helpers, and other small pieces with no
// dependency on the measurement domain itself.
package common
