// Copyright 2026 The agl Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package embed exposes the renderer behind a process-global registry of
// integer scene IDs, for hosts that cannot hold Go pointers: script bindings,
// wasm exports, and C-style embeddings all drive the same surface.
//
// Everything is in-memory; the package performs no host I/O. Go callers that
// can hold pointers should use the scene, render, and term packages directly.
package embed
