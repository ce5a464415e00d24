package model

import "fmt"

// SettingType names the value type a setting carries.
type SettingType string

const (
	SettingTypeBool   SettingType = "bool"
	SettingTypeString SettingType = "string"
)

// Setting describes one catalog setting: a key, the level at which it
// unlocks, its value type, a default, and an optional closed list of
// allowed values.
type Setting struct {
	Key         string
	UnlockLevel int
	Type        SettingType
	Default     any

	// AllowedValues, when non-empty, is the closed set of legal values.
	AllowedValues []any
}

var (
	// SettingColorChat toggles colored division chat.
	SettingColorChat = Setting{
		Key:         "color-chat",
		UnlockLevel: 3,
		Type:        SettingTypeBool,
		Default:     true,
	}

	// SettingBroadcastPings toggles member pings on broadcasts.
	SettingBroadcastPings = Setting{
		Key:         "broadcast-pings",
		UnlockLevel: 1,
		Type:        SettingTypeBool,
		Default:     true,
	}

	// SettingJoinPolicy controls how players may join.
	SettingJoinPolicy = Setting{
		Key:           "join-policy",
		UnlockLevel:   5,
		Type:          SettingTypeString,
		Default:       "invite-only",
		AllowedValues: []any{"open", "invite-only"},
	}
)

var settingCatalog = []Setting{
	SettingColorChat,
	SettingBroadcastPings,
	SettingJoinPolicy,
}

// Settings returns every catalog setting in a stable order.
func Settings() []Setting {
	catalog := make([]Setting, len(settingCatalog))
	copy(catalog, settingCatalog)
	return catalog
}

// SettingByKey resolves a persisted key to its catalog setting.
func SettingByKey(key string) (Setting, error) {
	for _, s := range settingCatalog {
		if s.Key == key {
			return s, nil
		}
	}
	return Setting{}, NewInvalidArgumentError(fmt.Sprintf("unknown setting %q", key))
}

// Allows reports whether the value matches the setting's type and, when
// an allowed list is declared, appears on it.
func (s Setting) Allows(value any) bool {
	switch s.Type {
	case SettingTypeBool:
		if _, ok := value.(bool); !ok {
			return false
		}
	case SettingTypeString:
		if _, ok := value.(string); !ok {
			return false
		}
	default:
		return false
	}

	if len(s.AllowedValues) == 0 {
		return true
	}
	for _, allowed := range s.AllowedValues {
		if allowed == value {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (s Setting) String() string {
	return s.Key
}
