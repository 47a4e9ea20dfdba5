// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package briefcontracts

import "github.com/cockroachdb/errors"

// ErrBriefNotFound is returned by BriefDB.GetBrief when no brief with the
// given id exists.
var ErrBriefNotFound = errors.New("briefcontracts: brief not found")

// ErrDuplicateSubmission marks CreateSubmission rejecting a second
// submission for the same (brief_id, miner_hotkey, kind) triple.
var ErrDuplicateSubmission = errors.New("briefcontracts: duplicate submission")

// ErrUnauthorized marks a submission rejected because the miner is not
// permitted to submit a revision (e.g. a sub_2 from a non-top miner).
var ErrUnauthorized = errors.New("briefcontracts: unauthorized submission")

// ErrArtifactInvalid marks an R2 validation failure: wrong content-type or
// size outside [100KB, 500MB].
var ErrArtifactInvalid = errors.New("briefcontracts: artifact failed validation")
