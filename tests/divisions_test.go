// Package tests contains end-to-end acceptance tests for the divisions module.
package tests

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/divisions/internal/model"
	"github.com/forgo/divisions/internal/repository"
	"github.com/forgo/divisions/internal/service"
	"github.com/forgo/divisions/internal/storage"
)

/*
FEATURE: Divisions
DOMAIN: Community

ACCEPTANCE CRITERIA:
===================

AC-DIV-001: Full Persistence Round Trip
  GIVEN a division with members, bans, settings, socials, and audit trail
  WHEN the store is reloaded from disk
  THEN every field survives with its type intact

AC-DIV-002: Membership Exclusivity
  GIVEN a player who belongs to a division
  WHEN another division tries to admit them
  THEN admission is rejected

AC-DIV-003: Ban Forces Removal
  GIVEN a member of a division
  WHEN the member is banned
  THEN they are removed from membership and cannot rejoin

AC-DIV-004: Level Gating
  GIVEN a setting with an unlock level
  WHEN a division below that level accesses it
  THEN the access fails as an unlock-gate error

AC-DIV-005: Derived Level
  GIVEN a division's experience total
  THEN its level is always derived through the progression curve

AC-DIV-006: Audit Trail Durability
  GIVEN lifecycle and moderation actions on a division
  THEN matching audit entries persist and day-bucketed log lines are written

AC-DIV-007: Damaged Directory Handling
  GIVEN a data root with one damaged division directory
  WHEN the optional resource is missing, the entity is skipped
  WHEN a mandatory resource is corrupt, the scan fails

AC-DIV-008: Disband Removes Everything
  GIVEN an existing division
  WHEN it is disbanded
  THEN its directory is deleted and lookups no longer find it
*/

type harness struct {
	svc  *service.DivisionService
	root string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewDivisionRepository(root, logger)
	svc := service.NewDivisionService(service.DivisionServiceConfig{
		Repo:   repo,
		Logger: logger,
	})
	return &harness{svc: svc, root: root}
}

func (h *harness) create(t *testing.T, name string) *model.Division {
	t.Helper()
	ctx := context.Background()

	created, err := h.svc.Create(ctx, service.CreateDivisionRequest{
		Owner: uuid.New(),
		Name:  name,
	})
	require.NoError(t, err)

	d, err := h.svc.ByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

// byName re-fetches the cached instance; creating another division
// invalidates the cache, so earlier instances go stale.
func (h *harness) byName(t *testing.T, name string) *model.Division {
	t.Helper()

	d, err := h.svc.ByName(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

func TestDivisions_FullPersistenceRoundTrip(t *testing.T) {
	// AC-DIV-001: Full Persistence Round Trip
	h := newHarness(t)
	ctx := context.Background()

	d := h.create(t, "Iron Vanguard")
	member := uuid.New()
	require.NoError(t, h.svc.AddMember(ctx, d, member))
	require.NoError(t, h.svc.Ban(ctx, d, uuid.New(), nil))
	require.NoError(t, h.svc.SetLevel(ctx, d, 5))
	require.NoError(t, h.svc.SetSetting(ctx, d, model.SettingJoinPolicy, "open"))
	require.NoError(t, h.svc.SetSocialMedia(ctx, d, model.PlatformGitHub, "https://github.com/vanguard"))
	require.NoError(t, h.svc.SetHome(ctx, d, model.Location{World: "overworld", X: 1, Y: 70, Z: -3}))
	require.NoError(t, h.svc.SetAchievementLevel(ctx, d, model.AchievementExperienceCollector, 4))

	h.svc.Invalidate()
	reloaded, err := h.svc.ByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)

	assert.Equal(t, "Iron Vanguard", reloaded.Name)
	assert.True(t, reloaded.IsMember(member))
	assert.Len(t, reloaded.BanList, 1)
	assert.Equal(t, 5, reloaded.Level())
	assert.Equal(t, model.ToExperience(5), reloaded.Experience)

	value, err := reloaded.SettingValue(model.SettingJoinPolicy)
	require.NoError(t, err)
	assert.Equal(t, "open", value)

	assert.Equal(t, "https://github.com/vanguard", reloaded.SocialLink(model.PlatformGitHub))
	require.NotNil(t, reloaded.Home)
	assert.Equal(t, "overworld", reloaded.Home.World)
	assert.Equal(t, 4, reloaded.Achievements[model.AchievementExperienceCollector])
}

func TestDivisions_MembershipExclusivity(t *testing.T) {
	// AC-DIV-002: Membership Exclusivity
	h := newHarness(t)
	ctx := context.Background()

	h.create(t, "Iron Vanguard")
	h.create(t, "Azure Order")
	first := h.byName(t, "Iron Vanguard")
	second := h.byName(t, "Azure Order")

	player := uuid.New()
	require.NoError(t, h.svc.AddMember(ctx, first, player))

	err := h.svc.AddMember(ctx, second, player)
	assert.Equal(t, model.ErrCodeAlreadyMember, model.CodeOf(err))

	// Leaving the first division makes the player eligible again
	require.NoError(t, h.svc.KickMember(ctx, first, player, nil))
	assert.NoError(t, h.svc.AddMember(ctx, second, player))
}

func TestDivisions_BanForcesRemoval(t *testing.T) {
	// AC-DIV-003: Ban Forces Removal
	h := newHarness(t)
	ctx := context.Background()

	d := h.create(t, "Iron Vanguard")
	player := uuid.New()
	require.NoError(t, h.svc.AddMember(ctx, d, player))

	require.NoError(t, h.svc.Ban(ctx, d, player, nil))
	assert.False(t, d.IsMember(player))
	assert.True(t, d.IsBanned(player))

	err := h.svc.AddMember(ctx, d, player)
	assert.Equal(t, model.ErrCodeBanned, model.CodeOf(err))

	require.NoError(t, h.svc.Unban(ctx, d, player, nil))
	assert.NoError(t, h.svc.AddMember(ctx, d, player))
}

func TestDivisions_LevelGating(t *testing.T) {
	// AC-DIV-004: Level Gating
	h := newHarness(t)
	ctx := context.Background()

	d := h.create(t, "Iron Vanguard")

	_, err := h.svc.GetSetting(ctx, d, model.SettingJoinPolicy)
	assert.Equal(t, model.ErrCodeSettingLocked, model.CodeOf(err))

	err = h.svc.SetSetting(ctx, d, model.SettingJoinPolicy, "open")
	assert.Equal(t, model.ErrCodeSettingLocked, model.CodeOf(err))

	require.NoError(t, h.svc.SetLevel(ctx, d, model.SettingJoinPolicy.UnlockLevel))
	require.NoError(t, h.svc.SetSetting(ctx, d, model.SettingJoinPolicy, "open"))

	value, err := h.svc.GetSetting(ctx, d, model.SettingJoinPolicy)
	require.NoError(t, err)
	assert.Equal(t, "open", value)
}

func TestDivisions_DerivedLevel(t *testing.T) {
	// AC-DIV-005: Derived Level
	h := newHarness(t)
	ctx := context.Background()

	d := h.create(t, "Iron Vanguard")
	assert.Equal(t, 0, d.Level())

	require.NoError(t, h.svc.SetExperience(ctx, d, model.ToExperience(3)))
	assert.Equal(t, 3, d.Level())

	require.NoError(t, h.svc.AddExperience(ctx, d, model.ToExperience(4)-model.ToExperience(3)))
	assert.Equal(t, 4, d.Level())

	require.NoError(t, h.svc.RemoveExperience(ctx, d, 1))
	assert.Equal(t, 3, d.Level())
}

func TestDivisions_AuditTrailDurability(t *testing.T) {
	// AC-DIV-006: Audit Trail Durability
	h := newHarness(t)
	ctx := context.Background()

	d := h.create(t, "Iron Vanguard")
	player := uuid.New()
	require.NoError(t, h.svc.AddMember(ctx, d, player))
	require.NoError(t, h.svc.SetName(ctx, d, "Steel Vanguard", &d.Owner))
	require.NoError(t, h.svc.Ban(ctx, d, player, &d.Owner))

	h.svc.Invalidate()
	reloaded, err := h.svc.ByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)

	actions := make([]model.AuditAction, 0, len(reloaded.AuditLog))
	for _, entry := range reloaded.AuditLog {
		actions = append(actions, entry.Action)
	}
	assert.Equal(t, []model.AuditAction{
		model.AuditCreated,
		model.AuditMemberJoined,
		model.AuditRenamed,
		model.AuditMemberKicked,
		model.AuditPlayerBanned,
	}, actions)

	dir := storage.NewDir(filepath.Join(h.root, d.ID.String()))
	lines, err := dir.ReadLog(storage.AuditLog, time.Now().UTC())
	require.NoError(t, err)
	assert.Len(t, lines, len(actions))
}

func TestDivisions_DamagedDirectoryHandling(t *testing.T) {
	// AC-DIV-007: Damaged Directory Handling
	h := newHarness(t)
	ctx := context.Background()

	keep := h.create(t, "Iron Vanguard")
	damaged := h.create(t, "Azure Order")

	// Missing optional resource: skipped
	require.NoError(t, os.Remove(filepath.Join(h.root, damaged.ID.String(), storage.AuditFile)))
	h.svc.Invalidate()

	divisions, err := h.svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, divisions, 1)
	assert.Equal(t, keep.ID, divisions[0].ID)

	// Corrupt mandatory resource: fatal
	require.NoError(t, os.WriteFile(
		filepath.Join(h.root, keep.ID.String(), storage.BansFile),
		[]byte("{broken"), 0o644,
	))
	h.svc.Invalidate()

	_, err = h.svc.All(ctx)
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeStorage, model.CodeOf(err))
}

func TestDivisions_DisbandRemovesEverything(t *testing.T) {
	// AC-DIV-008: Disband Removes Everything
	h := newHarness(t)
	ctx := context.Background()

	d := h.create(t, "Iron Vanguard")
	dirPath := filepath.Join(h.root, d.ID.String())
	require.DirExists(t, dirPath)

	require.NoError(t, h.svc.Remove(ctx, d, &d.Owner))
	assert.NoDirExists(t, dirPath)

	gone, err := h.svc.ByName(ctx, "Iron Vanguard")
	require.NoError(t, err)
	assert.Nil(t, gone)

	inDivision, err := h.svc.IsInDivision(ctx, d.Owner)
	require.NoError(t, err)
	assert.False(t, inDivision)
}
