// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the officemd conversion
// pipelines: the table model consumed by the flattener, the structural
// elements yielded by document walkers, presentation asset metadata, and
// run configuration.
package types
