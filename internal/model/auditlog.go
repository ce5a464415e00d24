package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuditAction identifies one kind of recorded division action.
type AuditAction string

const (
	AuditCreated        AuditAction = "division_created"
	AuditDisbanded      AuditAction = "division_disbanded"
	AuditRenamed        AuditAction = "division_renamed"
	AuditTaglineChanged AuditAction = "division_tagline_changed"
	AuditMemberJoined   AuditAction = "division_member_joined"
	AuditMemberKicked   AuditAction = "division_member_kicked"
	AuditPlayerBanned   AuditAction = "division_player_banned"
	AuditPlayerUnbanned AuditAction = "division_player_unbanned"
)

var auditActions = map[AuditAction]struct{}{
	AuditCreated:        {},
	AuditDisbanded:      {},
	AuditRenamed:        {},
	AuditTaglineChanged: {},
	AuditMemberJoined:   {},
	AuditMemberKicked:   {},
	AuditPlayerBanned:   {},
	AuditPlayerUnbanned: {},
}

// IsValid reports whether the action is part of the closed set.
func (a AuditAction) IsValid() bool {
	_, ok := auditActions[a]
	return ok
}

// AuditActionFromKey resolves a persisted key to its action.
func AuditActionFromKey(key string) (AuditAction, error) {
	action := AuditAction(key)
	if !action.IsValid() {
		return "", NewInvalidArgumentError(fmt.Sprintf("unknown audit action %q", key))
	}
	return action, nil
}

// String implements fmt.Stringer.
func (a AuditAction) String() string {
	return fmt.Sprintf("AuditAction[%s]", string(a))
}

// AuditLogEntry records one division action: when it happened, what it
// was, an optional free-form data payload, and the optional player who
// initiated it. Entries are immutable after construction.
type AuditLogEntry struct {
	Timestamp time.Time   `json:"timestamp"`
	Action    AuditAction `json:"action"`
	Data      string      `json:"data,omitempty"`
	Initiator *uuid.UUID  `json:"initiator,omitempty"`
}

// NewAuditLogEntry builds an entry, rejecting a zero timestamp or an
// action outside the closed set.
func NewAuditLogEntry(timestamp time.Time, action AuditAction, data string, initiator *uuid.UUID) (AuditLogEntry, error) {
	if timestamp.IsZero() {
		return AuditLogEntry{}, NewInvalidArgumentError("audit timestamp cannot be zero")
	}
	if !action.IsValid() {
		return AuditLogEntry{}, NewInvalidArgumentError(fmt.Sprintf("unknown audit action %q", action))
	}
	return AuditLogEntry{
		Timestamp: timestamp,
		Action:    action,
		Data:      data,
		Initiator: initiator,
	}, nil
}

// Line formats the entry without its timestamp, for day-bucketed log
// files that carry their own time prefix.
func (e AuditLogEntry) Line() string {
	var sb strings.Builder
	sb.WriteString(e.Action.String())
	if e.Data != "" {
		sb.WriteString(" - ")
		sb.WriteString(e.Data)
	}
	if e.Initiator != nil {
		sb.WriteString(" | ")
		sb.WriteString(e.Initiator.String())
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (e AuditLogEntry) String() string {
	return e.Timestamp.Format("[15:04:05] ") + e.Line()
}
