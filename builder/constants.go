// SPDX-License-Identifier: MIT
// Package: degbatch/builder
//
// constants.go - method tags and parameter minima shared by constructors.

package builder

// Method tags used as error prefixes.
const (
	MethodStar                   = "Star"
	MethodPath                   = "Path"
	MethodRandomSparse           = "RandomSparse"
	MethodPreferentialAttachment = "PreferentialAttachment"
)

// Parameter minima and bounds.
const (
	// CenterVertexID is the hub identifier used by Star.
	CenterVertexID = "Center"

	MinStarNodes   = 2
	MinPathNodes   = 2
	MinRandomNodes = 1

	// MinAttachNodes is the smallest n accepted by PreferentialAttachment.
	MinAttachNodes = 2
	// MinAttachEdges is the smallest m (edges per arriving vertex).
	MinAttachEdges = 1

	MinProbability = 0.0
	MaxProbability = 1.0
)
