package model

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxPlayers is the hard ceiling on configured division size. The
// configured maximum is clamped to it.
const MaxPlayers = 1000

// Location is a world coordinate a division can call home.
type Location struct {
	World string  `json:"world" yaml:"world"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Z     float64 `json:"z" yaml:"z"`
	Yaw   float32 `json:"yaw" yaml:"yaw"`
	Pitch float32 `json:"pitch" yaml:"pitch"`
}

// ChatMessage is one broadcast line buffered in memory until the chat
// flusher drains it to day-bucketed log storage.
type ChatMessage struct {
	At   time.Time
	Text string
}

// Division is the aggregate root for one persisted division: identity,
// ownership, membership, moderation, progression, settings, achievements,
// social links, and the audit trail. ID, Owner, and CreatedAt never change
// after creation.
type Division struct {
	ID        uuid.UUID
	Name      string
	Owner     uuid.UUID
	CreatedAt time.Time

	Home       *Location
	Experience float64
	Prefix     string
	Tagline    string

	Members      map[uuid.UUID]struct{}
	BanList      map[uuid.UUID]struct{}
	Achievements map[AchievementKind]int
	Settings     map[string]any
	Socials      map[Platform]string

	AuditLog   []AuditLogEntry
	MessageLog []ChatMessage
}

// NewDivision builds an empty aggregate. Every catalog achievement starts
// at level 0 so the achievement map is closed-world from the start.
func NewDivision(id, owner uuid.UUID, createdAt time.Time) *Division {
	d := &Division{
		ID:           id,
		Owner:        owner,
		CreatedAt:    createdAt,
		Members:      make(map[uuid.UUID]struct{}),
		BanList:      make(map[uuid.UUID]struct{}),
		Achievements: make(map[AchievementKind]int, len(achievementOrder)),
		Settings:     make(map[string]any),
		Socials:      make(map[Platform]string),
	}
	for _, kind := range AchievementKinds() {
		d.Achievements[kind] = 0
	}
	return d
}

// Level is derived from experience and never stored independently.
func (d *Division) Level() int {
	return ToLevel(d.Experience)
}

// IsMember reports whether the player currently belongs to this division.
func (d *Division) IsMember(player uuid.UUID) bool {
	_, ok := d.Members[player]
	return ok
}

// IsBanned reports whether the player is banned from this division.
func (d *Division) IsBanned(player uuid.UUID) bool {
	_, ok := d.BanList[player]
	return ok
}

// MemberIDs returns the member set as a sorted slice.
func (d *Division) MemberIDs() []uuid.UUID {
	return sortedIDs(d.Members)
}

// BannedIDs returns the ban list as a sorted slice.
func (d *Division) BannedIDs() []uuid.UUID {
	return sortedIDs(d.BanList)
}

// AchievementLevel returns the division's level for the given kind.
func (d *Division) AchievementLevel(kind AchievementKind) (int, error) {
	if !kind.IsValid() {
		return 0, NewInvalidArgumentError(fmt.Sprintf("unknown achievement %q", kind))
	}
	return d.Achievements[kind], nil
}

// SetAchievement records an achievement level after range-checking it
// against the catalog. It mutates memory only; persisting is the caller's
// job.
func (d *Division) SetAchievement(kind AchievementKind, level int) error {
	if !kind.IsValid() {
		return NewInvalidArgumentError(fmt.Sprintf("unknown achievement %q", kind))
	}
	if level < 0 || level > kind.MaxLevel() {
		return NewOutOfRangeError(fmt.Sprintf("achievement %s level must be within [0, %d]", kind, kind.MaxLevel()))
	}
	d.Achievements[kind] = level
	return nil
}

// SettingValue resolves a setting to its stored value, falling back to the
// catalog default. Access is gated on the unlock level: a locked setting
// reports a gate failure even when a value is stored for it.
func (d *Division) SettingValue(setting Setting) (any, error) {
	if level := d.Level(); level < setting.UnlockLevel {
		return nil, NewSettingLockedError(setting.Key, setting.UnlockLevel, level)
	}
	if value, ok := d.Settings[setting.Key]; ok {
		return value, nil
	}
	return setting.Default, nil
}

// PutSetting stores a setting value after checking the unlock gate and the
// allowed-value list. Memory only; persisting is the caller's job.
func (d *Division) PutSetting(setting Setting, value any) error {
	if value == nil {
		return NewInvalidArgumentError("setting value cannot be nil")
	}
	if level := d.Level(); level < setting.UnlockLevel {
		return NewSettingLockedError(setting.Key, setting.UnlockLevel, level)
	}
	if !setting.Allows(value) {
		return NewInvalidArgumentError(fmt.Sprintf("value %v is not allowed for setting %q", value, setting.Key))
	}
	d.Settings[setting.Key] = value
	return nil
}

// SocialLink returns the stored link for the platform, or "".
func (d *Division) SocialLink(platform Platform) string {
	return d.Socials[platform]
}

// AppendAudit adds an entry to the in-memory audit trail.
func (d *Division) AppendAudit(entry AuditLogEntry) {
	d.AuditLog = append(d.AuditLog, entry)
}

// String implements fmt.Stringer.
func (d *Division) String() string {
	return fmt.Sprintf("Division{id=%s, owner=%s, name=%q}", d.ID, d.Owner, d.Name)
}

func sortedIDs(set map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}
