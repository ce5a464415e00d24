// Package model defines the domain entities for the divisions module.
//
// The model package contains the Division aggregate and its satellite
// value types: the progression curve, the achievement and setting
// catalogs, the social link validator, and the audit log entry.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Division: persistent player group with membership, bans,
//     progression, settings, achievements, and an audit trail
//   - AuditLogEntry: immutable record of one lifecycle/moderation action
//   - Setting: catalog descriptor gated behind an unlock level
//   - AchievementKind: catalog descriptor with a max level and rewards
//   - Platform: social media platform with a domain whitelist
//
// # Catalogs
//
// The achievement and setting catalogs are explicit static registries
// built at package init. Division.Level is always derived from
// Division.Experience via ToLevel; it is never stored.
//
// # Error Types
//
// Classified errors are defined in errors.go:
//
//	type Error struct {
//	    Code   ErrorCode
//	    Detail string
//	}
//
// Codes group into validation (1xxx), capacity (2xxx), state/lookup
// (3xxx), and persistence (4xxx) failures.
package model
