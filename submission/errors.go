// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import "github.com/cockroachdb/errors"

// ErrGistUnavailable marks a transport failure fetching a gist. Per spec
// §4.2 this yields an empty, unsuccessful Outcome; prior persisted
// submissions are left intact.
var ErrGistUnavailable = errors.New("submission: gist unavailable")
