package migration

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/auth"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"
	apperrors "github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/errors"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/logger"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Resource tables left behind by the single-tenant era. They gain
// tenancy columns in step 5 and are re-stamped in step 4.
var legacyResourceTables = []string{"recipes", "ingredients"}

// Limits granted to migrated organizations. Deliberately generous so no
// migrated tenant hits a ceiling on day one.
const (
	migratedMaxRestaurants = 10
	migratedMaxUsers       = 100
)

// LegacyUser is one candidate collected from the backup table or a
// profile document. Candidates are processed in input order and are
// never de-duplicated across the two sources; the de-duplication key for
// a person present in both remains unspecified upstream.
type LegacyUser struct {
	Username     string `yaml:"username"`
	Email        string `yaml:"email"`
	FullName     string `yaml:"full_name"`
	Role         string `yaml:"role"`
	PasswordHash string `yaml:"password_hash"`
}

// Options configures a migration run
type Options struct {
	// LegacyTable is the flat single-tenant user table to convert
	LegacyTable string
	// ProfileDir holds one-user-per-file YAML profile documents
	ProfileDir string
}

// provisionedTenant ties a created hierarchy back to its legacy identity
// for resource re-stamping
type provisionedTenant struct {
	Organization   *models.Organization
	Restaurant     *models.Restaurant
	User           *models.User
	LegacyUsername string
}

// Engine converts legacy flat-user data into the organization hierarchy.
// Each step commits independently: a failure rolls back only the failing
// step before re-raising, so a re-run after a mid-way failure is safe.
// Step 1's backup-table guard and step 3's slug collision handling keep
// re-runs from duplicating work.
type Engine struct {
	db          *gorm.DB
	opts        Options
	log         *logger.Logger
	candidates  []LegacyUser
	provisioned []provisionedTenant
}

// NewEngine creates a migration engine
func NewEngine(db *gorm.DB, opts Options) *Engine {
	if opts.LegacyTable == "" {
		opts.LegacyTable = "legacy_users"
	}
	return &Engine{
		db:   db,
		opts: opts,
		log:  logger.New().WithField("job", "tenant-migration"),
	}
}

func (e *Engine) backupTable() string {
	return e.opts.LegacyTable + "_backup"
}

// Run executes the migration steps in order. The first failing step is
// logged and re-raised as a MigrationStepError; committed prior steps
// stay committed.
func (e *Engine) Run() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"backup_legacy_users", e.stepBackupLegacyTable},
		{"collect_candidates", e.stepCollectCandidates},
		{"provision_tenants", e.stepProvisionTenants},
		{"restamp_owned_resources", e.stepRestampOwnedResources},
		{"add_tenancy_columns", e.stepAddTenancyColumns},
	}

	for _, step := range steps {
		e.log.WithField("step", step.name).Info("running migration step")
		if err := step.fn(); err != nil {
			wrapped := apperrors.NewMigrationStepError(step.name, err)
			e.log.WithField("step", step.name).Errorf("migration step failed: %v", err)
			return wrapped
		}
	}

	e.log.Infof("tenant migration complete: %d organization(s) provisioned", len(e.provisioned))
	return nil
}

// stepBackupLegacyTable renames the legacy user table to its backup name,
// but only when no backup exists yet. An existing backup means a prior
// run already got this far.
func (e *Engine) stepBackupLegacyTable() error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		m := tx.Migrator()
		if m.HasTable(e.backupTable()) {
			e.log.Info("legacy backup table already present, skipping rename")
			return nil
		}
		if !m.HasTable(e.opts.LegacyTable) {
			e.log.Info("no legacy user table found, nothing to back up")
			return nil
		}
		return m.RenameTable(e.opts.LegacyTable, e.backupTable())
	})
}

// stepCollectCandidates merges the backup table and the profile-document
// directory in input order, without identity de-duplication. When both
// sources are empty exactly one default administrator is synthesized so
// the system is never left tenant-less.
func (e *Engine) stepCollectCandidates() error {
	fromTable, err := e.readBackupTable()
	if err != nil {
		return err
	}

	fromDocs, err := e.readProfileDocuments()
	if err != nil {
		return err
	}

	if len(fromTable) > 0 && len(fromDocs) > 0 {
		// The two sources may describe the same physical person twice;
		// there is no agreed de-duplication key, so both are kept and the
		// operator is pointed at the overlap.
		e.log.Warnf("merging %d table user(s) and %d profile document(s) without de-duplication; audit for duplicate organizations", len(fromTable), len(fromDocs))
	}

	e.candidates = append(fromTable, fromDocs...)
	if len(e.candidates) == 0 {
		e.log.Warn("no legacy users found in any source, synthesizing default administrator")
		e.candidates = append(e.candidates, LegacyUser{
			Username: "admin",
			Email:    "admin@example.com",
			FullName: "Default Admin",
			Role:     "admin",
		})
	}

	e.log.Infof("collected %d migration candidate(s)", len(e.candidates))
	return nil
}

// stepProvisionTenants creates one Organization, one default Restaurant
// and one User per collected candidate, all in a single transaction.
func (e *Engine) stepProvisionTenants() error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		for idx := range e.candidates {
			tenant, err := e.provisionTenant(tx, &e.candidates[idx])
			if err != nil {
				return fmt.Errorf("candidate %q: %w", e.candidates[idx].Username, err)
			}
			e.provisioned = append(e.provisioned, *tenant)
		}
		return nil
	})
}

func (e *Engine) readBackupTable() ([]LegacyUser, error) {
	if !e.db.Migrator().HasTable(e.backupTable()) {
		return nil, nil
	}

	type legacyRow struct {
		Username     string
		Email        string
		Name         string
		Role         string
		PasswordHash string
	}

	var rows []legacyRow
	query := fmt.Sprintf("SELECT username, email, name, role, password_hash FROM %s ORDER BY username", e.backupTable())
	if err := e.db.Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("read backup table: %w", err)
	}

	users := make([]LegacyUser, 0, len(rows))
	for _, row := range rows {
		users = append(users, LegacyUser{
			Username:     row.Username,
			Email:        row.Email,
			FullName:     row.Name,
			Role:         row.Role,
			PasswordHash: row.PasswordHash,
		})
	}
	return users, nil
}

func (e *Engine) readProfileDocuments() ([]LegacyUser, error) {
	if e.opts.ProfileDir == "" {
		return nil, nil
	}
	if _, err := os.Stat(e.opts.ProfileDir); os.IsNotExist(err) {
		return nil, nil
	}

	var users []LegacyUser
	err := filepath.WalkDir(e.opts.ProfileDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read profile document %s: %w", path, err)
		}
		var user LegacyUser
		if err := yaml.Unmarshal(data, &user); err != nil {
			return fmt.Errorf("parse profile document %s: %w", path, err)
		}
		users = append(users, user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// provisionTenant creates the Organization, default Restaurant and User
// for one candidate. The organization is flushed first so its id is
// available to the children.
func (e *Engine) provisionTenant(tx *gorm.DB, candidate *LegacyUser) (*provisionedTenant, error) {
	name := candidate.FullName
	if name == "" {
		name = candidate.Username
	}

	orgName := name + "'s Organization"
	slug, err := e.uniqueSlug(tx, Slugify(orgName))
	if err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:             orgName,
		Slug:             slug,
		LicenseKey:       uuid.New().String(),
		SubscriptionType: models.SubscriptionProfessional,
		MaxRestaurants:   migratedMaxRestaurants,
		MaxUsers:         migratedMaxUsers,
		IsActive:         true,
	}
	if err := tx.Create(org).Error; err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}

	restaurant := &models.Restaurant{
		OrganizationID: org.ID,
		Name:           "Main Kitchen",
		Slug:           "main",
		IsActive:       true,
	}
	if err := tx.Create(restaurant).Error; err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	user, err := e.buildUser(candidate, org, restaurant)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &provisionedTenant{
		Organization:   org,
		Restaurant:     restaurant,
		User:           user,
		LegacyUsername: candidate.Username,
	}, nil
}

func (e *Engine) buildUser(candidate *LegacyUser, org *models.Organization, restaurant *models.Restaurant) (*models.User, error) {
	username := candidate.Username
	if username == "" {
		username = Slugify(candidate.FullName)
	}
	email := candidate.Email
	if email == "" {
		email = username + "@migrated.local"
	}

	firstName, lastName := splitName(candidate.FullName)

	user := &models.User{
		OrganizationID: org.ID,
		RestaurantID:   &restaurant.ID,
		Username:       username,
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		Role:           MapLegacyRole(candidate.Role),
		IsActive:       true,
		PasswordHash:   candidate.PasswordHash,
	}

	if candidate.PasswordHash == "" {
		// No recoverable credential: lock the account behind a reset
		user.PasswordHash = auth.PlaceholderHash
		permissions, err := json.Marshal(map[string]bool{"needs_password_reset": true})
		if err != nil {
			return nil, fmt.Errorf("marshal permissions: %w", err)
		}
		user.Permissions = permissions
	}

	return user, nil
}

// uniqueSlug probes for a free slug, appending -1, -2, ... on collision.
// The organizations slug unique index remains the backstop against a
// concurrent run.
func (e *Engine) uniqueSlug(tx *gorm.DB, base string) (string, error) {
	slug := base
	for suffix := 1; ; suffix++ {
		var count int64
		if err := tx.Model(&models.Organization{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", fmt.Errorf("probe slug %q: %w", slug, err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// splitName divides a display name into first and last at the first
// space. A single token becomes the first name.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

// MapLegacyRole converts a free-text legacy role by substring match.
// Anything unrecognized becomes org_admin: migrated users administer
// their own new organization so nobody is locked out.
func MapLegacyRole(raw string) models.UserRole {
	role := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(role, "sous_chef"):
		return models.RoleSousChef
	case strings.Contains(role, "chef"):
		return models.RoleHeadChef
	case strings.Contains(role, "staff"), strings.Contains(role, "line_cook"):
		return models.RoleLineCook
	default:
		return models.RoleOrgAdmin
	}
}

// stepRestampOwnedResources rewrites legacy ownership onto the new
// hierarchy, one transaction per organization so tenants stay
// independent.
func (e *Engine) stepRestampOwnedResources() error {
	m := e.db.Migrator()

	// Decide once per table, with a log line per skip, so the operator
	// knows which tables were left unstamped rather than assuming this
	// step covered them.
	var tables []string
	for _, table := range legacyResourceTables {
		switch {
		case !m.HasTable(table):
			e.log.WithField("table", table).Info("table absent, nothing to restamp")
		case !m.HasColumn(table, "owner_username"):
			e.log.WithField("table", table).Info("no owner_username column, skipping restamp")
		case !m.HasColumn(table, "organization_id"):
			e.log.WithField("table", table).Warn("no organization_id column yet, rows left unstamped; re-run after tenancy columns exist")
		default:
			tables = append(tables, table)
		}
	}

	for _, tenant := range e.provisioned {
		if tenant.LegacyUsername == "" {
			continue
		}
		err := e.db.Transaction(func(tx *gorm.DB) error {
			for _, table := range tables {
				query := fmt.Sprintf(
					"UPDATE %s SET organization_id = ?, restaurant_id = ?, created_by_id = ? WHERE owner_username = ? AND organization_id IS NULL",
					table,
				)
				if err := tx.Exec(query, tenant.Organization.ID, tenant.Restaurant.ID, tenant.User.ID, tenant.LegacyUsername).Error; err != nil {
					return fmt.Errorf("restamp %s: %w", table, err)
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("organization %s: %w", tenant.Organization.Slug, err)
		}
	}
	return nil
}

// stepAddTenancyColumns adds organization_id, restaurant_id, created_by_id
// and scope columns to the legacy resource tables. IF NOT EXISTS makes
// adding an existing column a no-op.
func (e *Engine) stepAddTenancyColumns() error {
	columns := []struct {
		name     string
		dataType string
	}{
		{"organization_id", "uuid"},
		{"restaurant_id", "uuid"},
		{"created_by_id", "uuid"},
		{"scope", "varchar(50) DEFAULT 'restaurant'"},
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		m := tx.Migrator()
		for _, table := range legacyResourceTables {
			if !m.HasTable(table) {
				continue
			}
			for _, col := range columns {
				query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", table, col.name, col.dataType)
				if err := tx.Exec(query).Error; err != nil {
					return fmt.Errorf("add column %s.%s: %w", table, col.name, err)
				}
			}
		}
		return nil
	})
}

// Provisioned returns the tenants created by the last run, for operator
// reporting.
func (e *Engine) Provisioned() []ProvisionedSummary {
	out := make([]ProvisionedSummary, 0, len(e.provisioned))
	for _, tenant := range e.provisioned {
		out = append(out, ProvisionedSummary{
			OrganizationSlug: tenant.Organization.Slug,
			RestaurantSlug:   tenant.Restaurant.Slug,
			Username:         tenant.User.Username,
			Role:             tenant.User.Role,
			CreatedAt:        time.Now(),
		})
	}
	return out
}

// ProvisionedSummary is one line of the operator report
type ProvisionedSummary struct {
	OrganizationSlug string          `json:"organization_slug"`
	RestaurantSlug   string          `json:"restaurant_slug"`
	Username         string          `json:"username"`
	Role             models.UserRole `json:"role"`
	CreatedAt        time.Time       `json:"created_at"`
}
