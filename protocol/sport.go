// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

// Sport API ids understood by the robot's sport service. Gesture ids
// are opaque to this package; these names exist for the host's
// convenience.
const (
	APIDamp        = 1001
	APIStopMove    = 1003
	APIMove        = 1008
	APISit         = 1009
	APIHello       = 1016
	APIStretch     = 1017
	APIWallow      = 1021
	APIDance1      = 1022
	APIDance2      = 1023
	APIScrape      = 1029
	APIFrontFlip   = 1030
	APIFrontJump   = 1031
	APIFrontPounce = 1032
	APIFingerHeart = 1036
)
