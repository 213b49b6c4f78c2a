// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package api

import "errors"

// ErrInvalidJSON wraps request bodies that fail to decode.
var ErrInvalidJSON = errors.New("invalid JSON body")

// StatusClientClosedRequest is the de facto status for requests abandoned by
// the client before a response was written. It only ever reaches logs and
// metrics.
const StatusClientClosedRequest = 499
