package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapLegacyRole(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected models.UserRole
	}{
		{"sous chef wins over chef substring", "sous_chef", models.RoleSousChef},
		{"plain chef", "chef", models.RoleHeadChef},
		{"executive chef", "executive_chef", models.RoleHeadChef},
		{"staff", "staff", models.RoleLineCook},
		{"line cook", "line_cook", models.RoleLineCook},
		{"unknown role becomes org admin", "superuser", models.RoleOrgAdmin},
		{"empty role becomes org admin", "", models.RoleOrgAdmin},
		{"case insensitive", "Head CHEF", models.RoleHeadChef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapLegacyRole(tt.raw))
		})
	}
}

func TestSplitName(t *testing.T) {
	t.Run("first and last", func(t *testing.T) {
		first, last := splitName("Maria Santos")
		assert.Equal(t, "Maria", first)
		assert.Equal(t, "Santos", last)
	})

	t.Run("single token", func(t *testing.T) {
		first, last := splitName("Maria")
		assert.Equal(t, "Maria", first)
		assert.Empty(t, last)
	})

	t.Run("extra tokens stay in last name", func(t *testing.T) {
		first, last := splitName("Marco Pierre White")
		assert.Equal(t, "Marco", first)
		assert.Equal(t, "Pierre White", last)
	})

	t.Run("empty", func(t *testing.T) {
		first, last := splitName("  ")
		assert.Empty(t, first)
		assert.Empty(t, last)
	})
}

func TestReadProfileDocuments(t *testing.T) {
	t.Run("reads yaml profiles", func(t *testing.T) {
		dir := t.TempDir()
		doc := []byte("username: maria\nemail: maria@example.com\nfull_name: Maria Santos\nrole: chef\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "maria.yaml"), doc, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

		engine := NewEngine(nil, Options{ProfileDir: dir})
		users, err := engine.readProfileDocuments()
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "maria", users[0].Username)
		assert.Equal(t, "Maria Santos", users[0].FullName)
		assert.Equal(t, "chef", users[0].Role)
	})

	t.Run("missing directory yields no users", func(t *testing.T) {
		engine := NewEngine(nil, Options{ProfileDir: "/nonexistent/profiles"})
		users, err := engine.readProfileDocuments()
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("no directory configured", func(t *testing.T) {
		engine := NewEngine(nil, Options{})
		users, err := engine.readProfileDocuments()
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("malformed document fails", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("{not yaml"), 0o644))

		engine := NewEngine(nil, Options{ProfileDir: dir})
		_, err := engine.readProfileDocuments()
		assert.Error(t, err)
	})
}

func TestBuildUser(t *testing.T) {
	engine := NewEngine(nil, Options{})
	org := &models.Organization{}
	restaurant := &models.Restaurant{}

	t.Run("keeps recoverable hash", func(t *testing.T) {
		user, err := engine.buildUser(&LegacyUser{
			Username:     "maria",
			Email:        "maria@example.com",
			FullName:     "Maria Santos",
			Role:         "chef",
			PasswordHash: "$2a$12$abcdefghijklmnopqrstuv",
		}, org, restaurant)
		require.NoError(t, err)
		assert.Equal(t, "$2a$12$abcdefghijklmnopqrstuv", user.PasswordHash)
		assert.Empty(t, user.Permissions)
		assert.Equal(t, models.RoleHeadChef, user.Role)
		assert.Equal(t, "Maria", user.FirstName)
		assert.Equal(t, "Santos", user.LastName)
	})

	t.Run("missing hash forces reset", func(t *testing.T) {
		user, err := engine.buildUser(&LegacyUser{
			Username: "maria",
			FullName: "Maria Santos",
		}, org, restaurant)
		require.NoError(t, err)
		assert.NotEmpty(t, user.PasswordHash)
		assert.JSONEq(t, `{"needs_password_reset": true}`, string(user.Permissions))
	})

	t.Run("missing email synthesized from username", func(t *testing.T) {
		user, err := engine.buildUser(&LegacyUser{Username: "maria"}, org, restaurant)
		require.NoError(t, err)
		assert.Equal(t, "maria@migrated.local", user.Email)
	})
}
