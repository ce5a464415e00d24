package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/divisions/internal/model"
	"github.com/forgo/divisions/internal/storage"
)

// DivisionRepository handles division data access
type DivisionRepository struct {
	root   string
	logger *slog.Logger
}

// NewDivisionRepository creates a new division repository rooted at the
// given data directory.
func NewDivisionRepository(root string, logger *slog.Logger) *DivisionRepository {
	return &DivisionRepository{root: root, logger: logger}
}

// Root returns the data directory the repository scans.
func (r *DivisionRepository) Root() string {
	return r.root
}

func (r *DivisionRepository) dir(id uuid.UUID) storage.Dir {
	return storage.NewDir(filepath.Join(r.root, id.String()))
}

// Init creates the directory for a new division and writes every
// resource, including the write-once info.json identity.
func (r *DivisionRepository) Init(ctx context.Context, d *model.Division) error {
	dir := r.dir(d.ID)
	if err := dir.Init(); err != nil {
		return fmt.Errorf("creating division directory: %w", err)
	}

	info := infoDoc{
		Schema:    storage.SchemaVersion,
		ID:        d.ID,
		Owner:     d.Owner,
		CreatedAt: d.CreatedAt,
	}
	if err := dir.WriteJSON(storage.InfoFile, info); err != nil {
		return err
	}
	return r.Save(ctx, d)
}

// Save rewrites every mutable resource of an existing division. The
// info.json identity resource is written once at Init and never again.
func (r *DivisionRepository) Save(ctx context.Context, d *model.Division) error {
	dir := r.dir(d.ID)
	if !dir.Exists() {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, d.ID)
	}

	writes := []struct {
		name string
		err  error
	}{
		{storage.MembersFile, dir.WriteJSON(storage.MembersFile, rosterDoc{
			Schema:  storage.SchemaVersion,
			Players: d.MemberIDs(),
		})},
		{storage.BansFile, dir.WriteJSON(storage.BansFile, rosterDoc{
			Schema:  storage.SchemaVersion,
			Players: d.BannedIDs(),
		})},
		{storage.AchievementsFile, dir.WriteJSON(storage.AchievementsFile, achievementsDoc{
			Schema: storage.SchemaVersion,
			Levels: achievementsToDoc(d.Achievements),
		})},
		{storage.SocialsFile, dir.WriteJSON(storage.SocialsFile, socialsDoc{
			Schema: storage.SchemaVersion,
			Links:  socialsToDoc(d.Socials),
		})},
		{storage.AuditFile, dir.WriteJSON(storage.AuditFile, auditDoc{
			Schema:  storage.SchemaVersion,
			Entries: d.AuditLog,
		})},
		{storage.SettingsFile, dir.WriteYAML(storage.SettingsFile, settingsDoc{
			Schema: storage.SchemaVersion,
			Values: d.Settings,
		})},
		{storage.OtherFile, dir.WriteYAML(storage.OtherFile, otherDoc{
			Schema:     storage.SchemaVersion,
			Name:       d.Name,
			Prefix:     d.Prefix,
			Tagline:    d.Tagline,
			Experience: d.Experience,
			Home:       d.Home,
		})},
	}
	for _, w := range writes {
		if w.err != nil {
			return fmt.Errorf("writing %s: %w", w.name, w.err)
		}
	}
	return nil
}

// Load reads one division directory back into an aggregate.
func (r *DivisionRepository) Load(ctx context.Context, id uuid.UUID) (*model.Division, error) {
	dir := r.dir(id)
	if !dir.Exists() {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return r.load(dir)
}

// LoadAll scans the data root and loads every division directory. A
// directory missing an optional resource is logged and skipped; any
// other failure aborts the scan.
func (r *DivisionRepository) LoadAll(ctx context.Context) ([]*model.Division, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning data root: %w", err)
	}

	var divisions []*model.Division
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := uuid.Parse(entry.Name()); err != nil {
			continue
		}

		d, err := r.load(storage.NewDir(filepath.Join(r.root, entry.Name())))
		if err != nil {
			if errors.Is(err, storage.ErrMissingResource) && isOptional(err) {
				r.logger.Warn("skipping division with missing optional resource",
					"directory", entry.Name(), "error", err)
				continue
			}
			return nil, fmt.Errorf("loading division %s: %w", entry.Name(), err)
		}
		divisions = append(divisions, d)
	}
	return divisions, nil
}

// Delete removes the division directory and all its resources.
func (r *DivisionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	dir := r.dir(id)
	if !dir.Exists() {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return dir.Remove()
}

// WriteAuditLine appends the entry's formatted line to today's audit log
// bucket.
func (r *DivisionRepository) WriteAuditLine(ctx context.Context, id uuid.UUID, entry model.AuditLogEntry) error {
	return r.dir(id).AppendLog(storage.AuditLog, entry.Timestamp, entry.Line())
}

// WriteChatLine appends one broadcast line to the day's chat log bucket.
func (r *DivisionRepository) WriteChatLine(ctx context.Context, id uuid.UUID, at time.Time, line string) error {
	return r.dir(id).AppendLog(storage.ChatLog, at, line)
}

func (r *DivisionRepository) load(dir storage.Dir) (*model.Division, error) {
	var info infoDoc
	if err := dir.ReadJSON(storage.InfoFile, &info); err != nil {
		return nil, err
	}

	d := model.NewDivision(info.ID, info.Owner, info.CreatedAt)

	var members rosterDoc
	if err := dir.ReadJSON(storage.MembersFile, &members); err != nil {
		return nil, err
	}
	for _, p := range members.Players {
		d.Members[p] = struct{}{}
	}

	var bans rosterDoc
	if err := dir.ReadJSON(storage.BansFile, &bans); err != nil {
		return nil, err
	}
	for _, p := range bans.Players {
		d.BanList[p] = struct{}{}
	}

	var achievements achievementsDoc
	if err := dir.ReadJSON(storage.AchievementsFile, &achievements); err != nil {
		return nil, err
	}
	for key, level := range achievements.Levels {
		kind, err := model.AchievementKindFromKey(key)
		if err != nil {
			r.logger.Warn("dropping unknown achievement", "directory", dir.Path(), "achievement", key)
			continue
		}
		d.Achievements[kind] = level
	}

	var socials socialsDoc
	if err := dir.ReadJSON(storage.SocialsFile, &socials); err != nil {
		return nil, err
	}
	for key, link := range socials.Links {
		platform := model.Platform(key)
		if !platform.IsValid() {
			r.logger.Warn("dropping unknown platform link", "directory", dir.Path(), "platform", key)
			continue
		}
		d.Socials[platform] = link
	}

	var audit auditDoc
	if err := dir.ReadJSON(storage.AuditFile, &audit); err != nil {
		return nil, err
	}
	d.AuditLog = audit.Entries

	var settings settingsDoc
	if err := dir.ReadYAML(storage.SettingsFile, &settings); err != nil {
		return nil, err
	}
	d.Settings = r.coerceSettings(dir.Path(), settings.Values)

	var other otherDoc
	if err := dir.ReadYAML(storage.OtherFile, &other); err != nil {
		return nil, err
	}
	d.Name = other.Name
	d.Prefix = other.Prefix
	d.Tagline = other.Tagline
	d.Experience = other.Experience
	d.Home = other.Home

	return d, nil
}

// coerceSettings filters stored setting values against the catalog.
// settings.yml is operator-editable, so unknown keys and values of the
// wrong type are dropped with a warning instead of failing the load.
func (r *DivisionRepository) coerceSettings(path string, stored map[string]any) map[string]any {
	values := make(map[string]any, len(stored))
	for key, value := range stored {
		setting, err := model.SettingByKey(key)
		if err != nil {
			r.logger.Warn("dropping unknown setting", "directory", path, "setting", key)
			continue
		}
		if !setting.Allows(value) {
			r.logger.Warn("dropping setting with disallowed value",
				"directory", path, "setting", key, "value", value)
			continue
		}
		values[key] = value
	}
	return values
}

// Document types for persisted resources

type infoDoc struct {
	Schema    int       `json:"schema"`
	ID        uuid.UUID `json:"id"`
	Owner     uuid.UUID `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// rosterDoc backs both members.json and bans.json.
type rosterDoc struct {
	Schema  int         `json:"schema"`
	Players []uuid.UUID `json:"players"`
}

type achievementsDoc struct {
	Schema int            `json:"schema"`
	Levels map[string]int `json:"levels"`
}

type socialsDoc struct {
	Schema int               `json:"schema"`
	Links  map[string]string `json:"links"`
}

type auditDoc struct {
	Schema  int                   `json:"schema"`
	Entries []model.AuditLogEntry `json:"entries"`
}

type settingsDoc struct {
	Schema int            `yaml:"schema"`
	Values map[string]any `yaml:"values"`
}

type otherDoc struct {
	Schema     int             `yaml:"schema"`
	Name       string          `yaml:"name"`
	Prefix     string          `yaml:"prefix,omitempty"`
	Tagline    string          `yaml:"tagline,omitempty"`
	Experience float64         `yaml:"experience"`
	Home       *model.Location `yaml:"home,omitempty"`
}

// Mapping helpers

func achievementsToDoc(levels map[model.AchievementKind]int) map[string]int {
	doc := make(map[string]int, len(levels))
	for kind, level := range levels {
		doc[string(kind)] = level
	}
	return doc
}

func socialsToDoc(links map[model.Platform]string) map[string]string {
	doc := make(map[string]string, len(links))
	for platform, link := range links {
		doc[string(platform)] = link
	}
	return doc
}

// isOptional reports whether the missing-resource error names a resource
// that older directories may legitimately lack.
func isOptional(err error) bool {
	msg := err.Error()
	return strings.HasSuffix(msg, storage.SocialsFile) || strings.HasSuffix(msg, storage.AuditFile)
}
