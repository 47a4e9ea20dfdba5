// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package briefcontracts

import (
	"context"

	liblog "github.com/luxfi/log"

	"github.com/contentscore/validator/ids"
)

// EmailNotifier is a fire-and-forget collaborator (spec §6.3, §12): no
// core behavior depends on its success, so every method returns nothing
// for the caller to consume beyond a logged delivery error.
type EmailNotifier interface {
	NotifySubmissionAccepted(ctx context.Context, hotkey ids.Hotkey, briefID string)
	NotifySubmissionRejected(ctx context.Context, hotkey ids.Hotkey, briefID, reason string)
}

// LoggingEmailNotifier discards every notification after logging it. It is
// the zero-config default; a real deployment wires an SMTP/API-backed
// implementation behind the same interface.
type LoggingEmailNotifier struct {
	log liblog.Logger
}

// NewLoggingEmailNotifier returns a LoggingEmailNotifier.
func NewLoggingEmailNotifier(logger liblog.Logger) *LoggingEmailNotifier {
	return &LoggingEmailNotifier{log: logger}
}

func (n *LoggingEmailNotifier) NotifySubmissionAccepted(_ context.Context, hotkey ids.Hotkey, briefID string) {
	n.log.Debug("brief submission accepted", "hotkey", hotkey, "brief_id", briefID)
}

func (n *LoggingEmailNotifier) NotifySubmissionRejected(_ context.Context, hotkey ids.Hotkey, briefID, reason string) {
	n.log.Debug("brief submission rejected", "hotkey", hotkey, "brief_id", briefID, "reason", reason)
}
