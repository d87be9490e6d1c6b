package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/config"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/database"
	"github.com/Iterum-Foods/iterum-chef-notebook-sub001/internal/migration"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// One-time conversion of legacy flat-user data into the tenant
// hierarchy. Run once after deploying the multi-tenant schema:
//
//	go run ./scripts/migrate_legacy.go [-profile-dir DIR] [-legacy-table NAME]
//
// The job is safe to re-run after a mid-way failure.
func main() {
	profileDir := flag.String("profile-dir", "", "directory of one-user-per-file YAML profiles (defaults to LEGACY_PROFILE_DIR)")
	legacyTable := flag.String("legacy-table", "", "name of the legacy flat user table (defaults to LEGACY_USER_TABLE)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}

	opts := migration.Options{
		LegacyTable: cfg.LegacyUserTable,
		ProfileDir:  cfg.LegacyProfileDir,
	}
	if *legacyTable != "" {
		opts.LegacyTable = *legacyTable
	}
	if *profileDir != "" {
		opts.ProfileDir = *profileDir
	}

	engine := migration.NewEngine(db, opts)
	if err := engine.Run(); err != nil {
		logrus.Fatal("Migration failed:", err)
	}

	for _, tenant := range engine.Provisioned() {
		fmt.Printf("provisioned organization=%s restaurant=%s user=%s role=%s\n",
			tenant.OrganizationSlug, tenant.RestaurantSlug, tenant.Username, tenant.Role)
	}
	logrus.Info("Legacy migration completed successfully")
}
