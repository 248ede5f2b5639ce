// Copyright 2026 The go2remote Authors
// SPDX-License-Identifier: Apache-2.0

package robotcrypto

import (
	"crypto/md5"
	"encoding/base64"
)

// challengePrefix is the product identifier the robot mixes into every
// validation challenge.
const challengePrefix = "UnitreeGo2_"

// ChallengeResponse computes the answer to a data channel validation
// challenge: the base64 encoding of the raw MD5 digest of
// "UnitreeGo2_" + challenge.
func ChallengeResponse(challenge string) string {
	digest := md5.Sum([]byte(challengePrefix + challenge))
	return base64.StdEncoding.EncodeToString(digest[:])
}
