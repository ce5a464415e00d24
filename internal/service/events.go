package service

import (
	"context"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	// Lifecycle events
	EventDivisionCreated   EventType = "division.created"
	EventDivisionDisbanded EventType = "division.disbanded"

	// Membership events
	EventMemberJoined   EventType = "division.member_joined"
	EventMemberKicked   EventType = "division.member_kicked"
	EventPlayerBanned   EventType = "division.player_banned"
	EventPlayerUnbanned EventType = "division.player_unbanned"
)

// Event describes one division mutation for external collaborators.
type Event struct {
	Type       EventType
	DivisionID uuid.UUID

	// Player is the subject of membership events, zero otherwise.
	Player uuid.UUID

	// Initiator is the player who triggered the mutation, nil for
	// system-triggered mutations.
	Initiator *uuid.UUID
}

// Publisher receives events synchronously. The returned identity
// replaces the event's initiator in the audit entry written afterwards,
// letting a collaborator attribute the action to someone else.
type Publisher interface {
	Publish(ctx context.Context, e Event) *uuid.UUID
}

// Broadcaster delivers a chat line to a division's members. Delivery is
// best-effort and reports no error.
type Broadcaster interface {
	Broadcast(ctx context.Context, members []uuid.UUID, text string)
}

// NopPublisher accepts every event and leaves the initiator unchanged.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, e Event) *uuid.UUID {
	return e.Initiator
}

// NopBroadcaster drops every broadcast.
type NopBroadcaster struct{}

func (NopBroadcaster) Broadcast(context.Context, []uuid.UUID, string) {}
