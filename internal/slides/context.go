// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"github.com/google/uuid"

	"github.com/pdiddy/officemd/pkg/types"
)

// RunContext is the mutable state of one presentation conversion: the
// document identifier stamped on every asset, the chart and image
// counters that number asset files, and the assets recorded so far.
type RunContext struct {
	DocID string

	Charts int
	Images int

	Assets []types.AssetMeta

	// ShapeErrors counts shapes that were logged and skipped.
	ShapeErrors int
}

// NewRunContext starts a run with a fresh random document ID.
func NewRunContext() *RunContext {
	return &RunContext{DocID: uuid.NewString()}
}

// NextChart increments and returns the chart counter.
func (rc *RunContext) NextChart() int {
	rc.Charts++
	return rc.Charts
}

// NextImage increments and returns the image counter.
func (rc *RunContext) NextImage() int {
	rc.Images++
	return rc.Images
}

// Record appends an asset stamped with the run's document ID.
func (rc *RunContext) Record(a types.AssetMeta) {
	a.DocID = rc.DocID
	rc.Assets = append(rc.Assets, a)
}
