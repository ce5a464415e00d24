package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/forgo/divisions/internal/model"
)

// DivisionRepository defines the interface for division storage
type DivisionRepository interface {
	Init(ctx context.Context, d *model.Division) error
	Save(ctx context.Context, d *model.Division) error
	Load(ctx context.Context, id uuid.UUID) (*model.Division, error)
	LoadAll(ctx context.Context) ([]*model.Division, error)
	Delete(ctx context.Context, id uuid.UUID) error
	WriteAuditLine(ctx context.Context, id uuid.UUID, entry model.AuditLogEntry) error
	WriteChatLine(ctx context.Context, id uuid.UUID, at time.Time, line string) error
}

// DivisionServiceConfig holds the service's collaborators.
type DivisionServiceConfig struct {
	Repo        DivisionRepository
	Publisher   Publisher
	Broadcaster Broadcaster
	Logger      *slog.Logger

	// MaxDivisionSize caps member counts. Zero or negative means the
	// hard ceiling; larger values clamp to it.
	MaxDivisionSize int
}

// DivisionService is the division store and business logic layer.
type DivisionService struct {
	repo        DivisionRepository
	publisher   Publisher
	broadcaster Broadcaster
	logger      *slog.Logger
	maxSize     int

	mu    sync.RWMutex
	cache []*model.Division
	group singleflight.Group

	lockMu sync.Mutex
	locks  map[uuid.UUID]*sync.Mutex
}

// NewDivisionService creates a new division service
func NewDivisionService(cfg DivisionServiceConfig) *DivisionService {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = NopPublisher{}
	}
	broadcaster := cfg.Broadcaster
	if broadcaster == nil {
		broadcaster = NopBroadcaster{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxSize := cfg.MaxDivisionSize
	if maxSize <= 0 || maxSize > model.MaxPlayers {
		maxSize = model.MaxPlayers
	}

	return &DivisionService{
		repo:        cfg.Repo,
		publisher:   publisher,
		broadcaster: broadcaster,
		logger:      logger,
		maxSize:     maxSize,
		locks:       make(map[uuid.UUID]*sync.Mutex),
	}
}

// All returns every division, sorted by name. The cached set is served
// when populated; otherwise the backing location is scanned once, even
// under concurrent misses.
func (s *DivisionService) All(ctx context.Context) ([]*model.Division, error) {
	s.mu.RLock()
	cached := s.cache
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	result, err, _ := s.group.Do("all", func() (any, error) {
		divisions, err := s.repo.LoadAll(ctx)
		if err != nil {
			return nil, model.NewStorageError(err.Error())
		}
		if divisions == nil {
			divisions = []*model.Division{}
		}
		sortByName(divisions)

		s.mu.Lock()
		s.cache = divisions
		s.mu.Unlock()
		return divisions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*model.Division), nil
}

// Invalidate drops the cached division set.
func (s *DivisionService) Invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

// resort restores the cached set's name ordering after a rename.
func (s *DivisionService) resort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache != nil {
		sortByName(s.cache)
	}
}

func sortByName(divisions []*model.Division) {
	sort.Slice(divisions, func(i, j int) bool {
		a, b := strings.ToLower(divisions[i].Name), strings.ToLower(divisions[j].Name)
		if a != b {
			return a < b
		}
		return divisions[i].ID.String() < divisions[j].ID.String()
	})
}

// ByID returns the division with the given ID, or nil when absent.
func (s *DivisionService) ByID(ctx context.Context, id uuid.UUID) (*model.Division, error) {
	divisions, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range divisions {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

// ByName returns the division with the given name, matched
// case-insensitively, or nil when absent.
func (s *DivisionService) ByName(ctx context.Context, name string) (*model.Division, error) {
	divisions, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range divisions {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return nil, nil
}

// ByOwner returns the division owned by the given player, or nil.
func (s *DivisionService) ByOwner(ctx context.Context, owner uuid.UUID) (*model.Division, error) {
	divisions, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range divisions {
		if d.Owner == owner {
			return d, nil
		}
	}
	return nil, nil
}

// ByMember returns the division the given player belongs to, or nil.
func (s *DivisionService) ByMember(ctx context.Context, player uuid.UUID) (*model.Division, error) {
	divisions, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range divisions {
		if d.IsMember(player) {
			return d, nil
		}
	}
	return nil, nil
}

// Exists reports whether a division with the given ID exists.
func (s *DivisionService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	d, err := s.ByID(ctx, id)
	return d != nil, err
}

// ExistsByName reports whether a division with the given name exists.
func (s *DivisionService) ExistsByName(ctx context.Context, name string) (bool, error) {
	d, err := s.ByName(ctx, name)
	return d != nil, err
}

// ExistsByOwner reports whether the player owns a division.
func (s *DivisionService) ExistsByOwner(ctx context.Context, owner uuid.UUID) (bool, error) {
	d, err := s.ByOwner(ctx, owner)
	return d != nil, err
}

// IsInDivision reports whether the player is a member of any division.
func (s *DivisionService) IsInDivision(ctx context.Context, player uuid.UUID) (bool, error) {
	d, err := s.ByMember(ctx, player)
	return d != nil, err
}

// CreateDivisionRequest carries the initial state for a new division.
type CreateDivisionRequest struct {
	Owner   uuid.UUID
	Name    string
	Tagline string
	Prefix  string
	Socials map[model.Platform]string
}

// Create allocates a new division, writes its full directory, records
// the creation audit entry, and publishes a creation event.
func (s *DivisionService) Create(ctx context.Context, req CreateDivisionRequest) (*model.Division, error) {
	if req.Owner == uuid.Nil {
		return nil, model.NewInvalidArgumentError("owner cannot be empty")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, model.NewInvalidArgumentError("name cannot be empty")
	}

	taken, err := s.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.NewNameTakenError(req.Name)
	}

	d := model.NewDivision(uuid.New(), req.Owner, time.Now().UTC())
	d.Name = req.Name
	d.Tagline = req.Tagline
	d.Prefix = req.Prefix
	for platform, link := range req.Socials {
		if !platform.IsValid() {
			return nil, model.NewInvalidArgumentError(fmt.Sprintf("unknown platform %q", platform))
		}
		if !platform.IsValidLink(link) {
			return nil, model.NewInvalidLinkError(platform, link)
		}
		d.Socials[platform] = link
	}

	owner := req.Owner
	entry, err := model.NewAuditLogEntry(d.CreatedAt, model.AuditCreated, d.Name, &owner)
	if err != nil {
		return nil, err
	}
	d.AppendAudit(entry)

	if err := s.repo.Init(ctx, d); err != nil {
		return nil, model.NewStorageError(err.Error())
	}
	if err := s.repo.WriteAuditLine(ctx, d.ID, entry); err != nil {
		s.logger.Error("failed to write audit line", "division", d.ID, "error", err)
	}

	s.Invalidate()
	s.publisher.Publish(ctx, Event{
		Type:       EventDivisionCreated,
		DivisionID: d.ID,
		Initiator:  &owner,
	})
	s.logger.Info("division created", "division", d.ID, "name", d.Name, "owner", d.Owner)
	return d, nil
}

// Remove disbands a division: one final audit line, then every backing
// resource is deleted and the cache invalidated.
func (s *DivisionService) Remove(ctx context.Context, d *model.Division, initiator *uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	entry, err := model.NewAuditLogEntry(time.Now().UTC(), model.AuditDisbanded, d.Name, initiator)
	if err != nil {
		return err
	}
	if err := s.repo.WriteAuditLine(ctx, d.ID, entry); err != nil {
		s.logger.Error("failed to write audit line", "division", d.ID, "error", err)
	}

	if err := s.repo.Delete(ctx, d.ID); err != nil {
		return model.NewStorageError(err.Error())
	}
	s.Invalidate()
	s.publisher.Publish(ctx, Event{
		Type:       EventDivisionDisbanded,
		DivisionID: d.ID,
		Initiator:  initiator,
	})
	s.logger.Info("division disbanded", "division", d.ID, "name", d.Name)
	return nil
}

// AddMember admits a player after the eligibility checks: not already in
// a division anywhere, not banned here, and room left under the cap.
func (s *DivisionService) AddMember(ctx context.Context, d *model.Division, player uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}
	if player == uuid.Nil {
		return model.NewInvalidArgumentError("player cannot be empty")
	}

	inDivision, err := s.IsInDivision(ctx, player)
	if err != nil {
		return err
	}
	if inDivision {
		return model.NewAlreadyMemberError()
	}

	unlock := s.lock(d.ID)
	defer unlock()

	if d.IsBanned(player) {
		return model.NewBannedError()
	}
	if len(d.Members) >= s.maxSize {
		return model.NewDivisionFullError(s.maxSize, len(d.Members))
	}

	d.Members[player] = struct{}{}
	s.audit(ctx, d, model.AuditMemberJoined, player.String(), nil)
	s.publisher.Publish(ctx, Event{
		Type:       EventMemberJoined,
		DivisionID: d.ID,
		Player:     player,
	})
	s.persist(ctx, d)
	return nil
}

// AddMembers admits every eligible player from the batch in one pass,
// persisting once. Ineligible players are skipped silently; the batch
// fails only when the survivors would not fit under the cap.
func (s *DivisionService) AddMembers(ctx context.Context, d *model.Division, players []uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	var toAdd []uuid.UUID
	for _, player := range players {
		if player == uuid.Nil || d.IsBanned(player) {
			continue
		}
		inDivision, err := s.IsInDivision(ctx, player)
		if err != nil {
			return err
		}
		if inDivision {
			continue
		}
		toAdd = append(toAdd, player)
	}

	if len(d.Members)+len(toAdd) >= s.maxSize {
		return model.NewDivisionFullError(s.maxSize, len(d.Members)+len(toAdd))
	}

	for _, player := range toAdd {
		d.Members[player] = struct{}{}
		s.audit(ctx, d, model.AuditMemberJoined, player.String(), nil)
		s.publisher.Publish(ctx, Event{
			Type:       EventMemberJoined,
			DivisionID: d.ID,
			Player:     player,
		})
	}
	s.persist(ctx, d)
	return nil
}

// KickMember removes a member and records who initiated the kick.
func (s *DivisionService) KickMember(ctx context.Context, d *model.Division, player uuid.UUID, initiator *uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}
	if player == uuid.Nil {
		return model.NewInvalidArgumentError("player cannot be empty")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	if err := s.kick(ctx, d, player, initiator); err != nil {
		return err
	}
	s.persist(ctx, d)
	return nil
}

// KickMembers removes every listed player who is currently a member,
// skipping the rest, and persists once.
func (s *DivisionService) KickMembers(ctx context.Context, d *model.Division, players []uuid.UUID, initiator *uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	for _, player := range players {
		if !d.IsMember(player) {
			continue
		}
		if err := s.kick(ctx, d, player, initiator); err != nil {
			return err
		}
	}
	s.persist(ctx, d)
	return nil
}

// kick performs the in-memory removal without persisting. Callers hold
// the division lock.
func (s *DivisionService) kick(ctx context.Context, d *model.Division, player uuid.UUID, initiator *uuid.UUID) error {
	if !d.IsMember(player) {
		return model.NewNotMemberError()
	}
	delete(d.Members, player)

	attributed := s.publisher.Publish(ctx, Event{
		Type:       EventMemberKicked,
		DivisionID: d.ID,
		Player:     player,
		Initiator:  initiator,
	})
	s.audit(ctx, d, model.AuditMemberKicked, player.String(), attributed)
	return nil
}

// Ban removes the player from membership when present and adds them to
// the ban list, all under one persist.
func (s *DivisionService) Ban(ctx context.Context, d *model.Division, player uuid.UUID, initiator *uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}
	if player == uuid.Nil {
		return model.NewInvalidArgumentError("player cannot be empty")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	s.ban(ctx, d, player, initiator)
	s.persist(ctx, d)
	return nil
}

// BanAll bans every listed player, persisting once.
func (s *DivisionService) BanAll(ctx context.Context, d *model.Division, players []uuid.UUID, initiator *uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	for _, player := range players {
		if player == uuid.Nil || d.IsBanned(player) {
			continue
		}
		s.ban(ctx, d, player, initiator)
	}
	s.persist(ctx, d)
	return nil
}

// ban performs the in-memory ban without persisting. A current member is
// kicked first, through the full kick path so collaborators observe the
// removal and may correct its initiator. Callers hold the division lock.
func (s *DivisionService) ban(ctx context.Context, d *model.Division, player uuid.UUID, initiator *uuid.UUID) {
	if d.IsMember(player) {
		_ = s.kick(ctx, d, player, initiator)
	}
	d.BanList[player] = struct{}{}

	attributed := s.publisher.Publish(ctx, Event{
		Type:       EventPlayerBanned,
		DivisionID: d.ID,
		Player:     player,
		Initiator:  initiator,
	})
	s.audit(ctx, d, model.AuditPlayerBanned, player.String(), attributed)
}

// Unban lifts a ban. A player who is not banned is an error.
func (s *DivisionService) Unban(ctx context.Context, d *model.Division, player uuid.UUID, initiator *uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	if err := s.unban(ctx, d, player, initiator); err != nil {
		return err
	}
	s.persist(ctx, d)
	return nil
}

// UnbanAll lifts every listed ban that currently holds, skipping the
// rest, and persists once.
func (s *DivisionService) UnbanAll(ctx context.Context, d *model.Division, players []uuid.UUID, initiator *uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	for _, player := range players {
		if !d.IsBanned(player) {
			continue
		}
		if err := s.unban(ctx, d, player, initiator); err != nil {
			return err
		}
	}
	s.persist(ctx, d)
	return nil
}

func (s *DivisionService) unban(ctx context.Context, d *model.Division, player uuid.UUID, initiator *uuid.UUID) error {
	if !d.IsBanned(player) {
		return model.NewNotBannedError()
	}
	delete(d.BanList, player)

	attributed := s.publisher.Publish(ctx, Event{
		Type:       EventPlayerUnbanned,
		DivisionID: d.ID,
		Player:     player,
		Initiator:  initiator,
	})
	s.audit(ctx, d, model.AuditPlayerUnbanned, player.String(), attributed)
	return nil
}

// SetName renames the division and records a renamed audit entry.
func (s *DivisionService) SetName(ctx context.Context, d *model.Division, name string, initiator *uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}
	if strings.TrimSpace(name) == "" {
		return model.NewInvalidArgumentError("name cannot be empty")
	}

	existing, err := s.ByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != d.ID {
		return model.NewNameTakenError(name)
	}

	unlock := s.lock(d.ID)
	defer unlock()

	d.Name = name
	s.audit(ctx, d, model.AuditRenamed, name, initiator)
	s.persist(ctx, d)
	s.resort()
	return nil
}

// SetTagline changes the tagline and records a tagline-changed entry.
func (s *DivisionService) SetTagline(ctx context.Context, d *model.Division, tagline string, initiator *uuid.UUID) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	d.Tagline = tagline
	s.audit(ctx, d, model.AuditTaglineChanged, tagline, initiator)
	s.persist(ctx, d)
	return nil
}

// SetPrefix changes the display prefix.
func (s *DivisionService) SetPrefix(ctx context.Context, d *model.Division, prefix string) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	d.Prefix = prefix
	s.persist(ctx, d)
	return nil
}

// ResetPrefix clears the display prefix.
func (s *DivisionService) ResetPrefix(ctx context.Context, d *model.Division) error {
	return s.SetPrefix(ctx, d, "")
}

// SetHome sets the division's home location.
func (s *DivisionService) SetHome(ctx context.Context, d *model.Division, home model.Location) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	d.Home = &home
	s.persist(ctx, d)
	return nil
}

// ResetHome clears the division's home location.
func (s *DivisionService) ResetHome(ctx context.Context, d *model.Division) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	d.Home = nil
	s.persist(ctx, d)
	return nil
}

// SetExperience replaces the experience total. Negative totals are
// rejected.
func (s *DivisionService) SetExperience(ctx context.Context, d *model.Division, experience float64) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}
	if experience < 0 {
		return model.NewOutOfRangeError("experience cannot be negative")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	d.Experience = experience
	s.persist(ctx, d)
	return nil
}

// AddExperience adds to the experience total.
func (s *DivisionService) AddExperience(ctx context.Context, d *model.Division, amount float64) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}
	return s.SetExperience(ctx, d, d.Experience+amount)
}

// RemoveExperience subtracts from the experience total. Dropping below
// zero is rejected.
func (s *DivisionService) RemoveExperience(ctx context.Context, d *model.Division, amount float64) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}
	return s.SetExperience(ctx, d, d.Experience-amount)
}

// SetLevel replaces the experience total with the exact requirement for
// the given level.
func (s *DivisionService) SetLevel(ctx context.Context, d *model.Division, level int) error {
	if level < 0 {
		return model.NewOutOfRangeError("level cannot be negative")
	}
	return s.SetExperience(ctx, d, model.ToExperience(level))
}

// SetAchievementLevel records an achievement level and persists.
func (s *DivisionService) SetAchievementLevel(ctx context.Context, d *model.Division, kind model.AchievementKind, level int) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	if err := d.SetAchievement(kind, level); err != nil {
		return err
	}
	s.persist(ctx, d)
	return nil
}

// ResetAchievementLevel sets an achievement back to level 0.
func (s *DivisionService) ResetAchievementLevel(ctx context.Context, d *model.Division, kind model.AchievementKind) error {
	return s.SetAchievementLevel(ctx, d, kind, 0)
}

// GetSetting resolves a setting's current value through the unlock gate.
func (s *DivisionService) GetSetting(ctx context.Context, d *model.Division, setting model.Setting) (any, error) {
	if d == nil {
		return nil, model.NewInvalidArgumentError("division cannot be nil")
	}
	return d.SettingValue(setting)
}

// SetSetting stores a setting value through the unlock gate and
// persists.
func (s *DivisionService) SetSetting(ctx context.Context, d *model.Division, setting model.Setting, value any) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	if err := d.PutSetting(setting, value); err != nil {
		return err
	}
	s.persist(ctx, d)
	return nil
}

// SetSocialMedia stores a validated platform link. An empty link clears
// the platform's entry.
func (s *DivisionService) SetSocialMedia(ctx context.Context, d *model.Division, platform model.Platform, link string) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}
	if !platform.IsValid() {
		return model.NewInvalidArgumentError(fmt.Sprintf("unknown platform %q", platform))
	}

	unlock := s.lock(d.ID)
	defer unlock()

	if link == "" {
		delete(d.Socials, platform)
	} else {
		if !platform.IsValidLink(link) {
			return model.NewInvalidLinkError(platform, link)
		}
		d.Socials[platform] = link
	}
	s.persist(ctx, d)
	return nil
}

// RemoveSocialMedia clears a platform's link.
func (s *DivisionService) RemoveSocialMedia(ctx context.Context, d *model.Division, platform model.Platform) error {
	return s.SetSocialMedia(ctx, d, platform, "")
}

// Broadcast delivers a chat line to every member plus the owner and
// buffers it for the chat flusher.
func (s *DivisionService) Broadcast(ctx context.Context, d *model.Division, text string) error {
	if d == nil {
		return model.NewInvalidArgumentError("division cannot be nil")
	}
	if text == "" {
		return model.NewInvalidArgumentError("message cannot be empty")
	}

	unlock := s.lock(d.ID)
	defer unlock()

	recipients := append(d.MemberIDs(), d.Owner)
	s.broadcaster.Broadcast(ctx, recipients, text)
	d.MessageLog = append(d.MessageLog, model.ChatMessage{At: time.Now().UTC(), Text: text})
	return nil
}

// MessageLog returns the division's buffered chat lines.
func (s *DivisionService) MessageLog(d *model.Division) []model.ChatMessage {
	if d == nil {
		return nil
	}

	unlock := s.lock(d.ID)
	defer unlock()

	buffered := make([]model.ChatMessage, len(d.MessageLog))
	copy(buffered, d.MessageLog)
	return buffered
}

// FlushChat drains every division's chat buffer to day-bucketed log
// storage. Write failures are logged; the affected lines stay buffered
// for the next flush.
func (s *DivisionService) FlushChat(ctx context.Context) error {
	divisions, err := s.All(ctx)
	if err != nil {
		return err
	}

	for _, d := range divisions {
		unlock := s.lock(d.ID)
		var kept []model.ChatMessage
		for _, msg := range d.MessageLog {
			if err := s.repo.WriteChatLine(ctx, d.ID, msg.At, msg.Text); err != nil {
				s.logger.Error("failed to write chat line", "division", d.ID, "error", err)
				kept = append(kept, msg)
			}
		}
		d.MessageLog = kept
		unlock()
	}
	return nil
}

// audit appends an entry to the in-memory trail and its line to the
// day-bucketed audit log. Callers hold the division lock.
func (s *DivisionService) audit(ctx context.Context, d *model.Division, action model.AuditAction, data string, initiator *uuid.UUID) {
	entry, err := model.NewAuditLogEntry(time.Now().UTC(), action, data, initiator)
	if err != nil {
		s.logger.Error("failed to build audit entry", "division", d.ID, "action", action, "error", err)
		return
	}
	d.AppendAudit(entry)
	if err := s.repo.WriteAuditLine(ctx, d.ID, entry); err != nil {
		s.logger.Error("failed to write audit line", "division", d.ID, "error", err)
	}
}

// persist saves the division, logging and swallowing failures so the
// in-memory mutation survives. Callers hold the division lock.
func (s *DivisionService) persist(ctx context.Context, d *model.Division) {
	if err := s.repo.Save(ctx, d); err != nil {
		s.logger.Error("failed to persist division", "division", d.ID, "error", err)
	}
}

// lock acquires the division's mutex and returns its release func.
func (s *DivisionService) lock(id uuid.UUID) func() {
	s.lockMu.Lock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	s.lockMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
