package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/babyfeed/migrations"
	"gorm.io/gorm"
)

var schemaFiles fs.FS = embeddedmigrations.Files

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
)

type migration struct {
	version string
	order   int
	name    string
	body    string
}

func migrate(database *gorm.DB, files fs.FS) error {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readMigrations(files)
	if err != nil {
		return err
	}

	var applied []string
	if err := database.Table("schema_migrations").Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}
	done := make(map[string]struct{}, len(applied))
	for _, version := range applied {
		done[version] = struct{}{}
	}

	for _, item := range pending {
		if _, ok := done[item.version]; ok {
			continue
		}
		if err := applyMigration(database, item); err != nil {
			return err
		}
	}
	return nil
}

func readMigrations(files fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	result := make([]migration, 0, len(entries))
	byVersion := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		matches := migrationNamePattern.FindStringSubmatch(name)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		if previous, exists := byVersion[version]; exists {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		result = append(result, migration{version: version, order: order, name: name, body: string(body)})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].order == result[j].order {
			return result[i].name < result[j].name
		}
		return result[i].order < result[j].order
	})
	return result, nil
}

func applyMigration(database *gorm.DB, item migration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitStatements(item.body)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			exists, err := addsExistingColumn(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", item.name, err)
			}
			if exists {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", item.name, statement, err)
			}
		}

		if err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, item.version, item.name).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", item.name, err)
		}
		return nil
	})
}

func splitStatements(body string) []string {
	parts := strings.Split(body, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// addsExistingColumn reports whether statement is an ADD COLUMN for a column
// the table already has, so re-running it would fail.
func addsExistingColumn(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}
	table := trimIdentifier(matches[1])
	column := trimIdentifier(matches[2])

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(strings.TrimSpace(existing.Name), column) {
			return true, nil
		}
	}
	return false, nil
}

func trimIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
