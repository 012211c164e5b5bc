package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/remostars/club-standings/internal/infrastructure/database"
	"github.com/remostars/club-standings/internal/platform/logging"
)

var errUsage = errors.New("usage")

var migrationNamePattern = regexp.MustCompile(`[^a-z0-9]+`)

type runner struct {
	getenv func(string) string
	now    func() time.Time
	stdout io.Writer
	logger *logging.Logger
}

func main() {
	_ = godotenv.Load()

	level, levelErr := logging.ParseLevel(os.Getenv("APP_LOG_LEVEL"))
	logger := logging.NewConsole(level)
	defer func() { _ = logger.Sync() }()
	if levelErr != nil {
		logger.Error("invalid APP_LOG_LEVEL", "error", levelErr)
		os.Exit(2)
	}

	r := runner{getenv: os.Getenv, now: time.Now, stdout: os.Stdout, logger: logger}
	if err := r.run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func (r runner) run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd := strings.ToLower(strings.TrimSpace(args[0]))
	if cmd == "create" {
		return r.create(args[1:])
	}

	m, err := r.newMigrator()
	if err != nil {
		return err
	}
	defer r.closeMigrator(m)

	switch cmd {
	case "up":
		if err := ignoreNoChange(r.logger, m.Up()); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		r.logger.Info("migrations applied")
	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(r.logger, m.Steps(-steps)); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		r.logger.Info("migrations rolled back", "steps", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(r.stdout, "version: none")
			fmt.Fprintln(r.stdout, "dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Fprintf(r.stdout, "version: %d\n", version)
		fmt.Fprintf(r.stdout, "dirty: %t\n", dirty)
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version argument")
		}
		version, err := parseVersion(args[1])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		r.logger.Info("migration version forced", "version", version)
	case "goto", "migrate":
		if len(args) < 2 {
			return fmt.Errorf("goto requires a target version argument")
		}
		target, err := parseTarget(args[1])
		if err != nil {
			return err
		}
		if err := ignoreNoChange(r.logger, m.Migrate(target)); err != nil {
			return fmt.Errorf("migrate to %d: %w", target, err)
		}
		r.logger.Info("migrated", "version", target)
	default:
		return errUsage
	}
	return nil
}

func (r runner) newMigrator() (*migrate.Migrate, error) {
	dbURL := strings.TrimSpace(r.getenv("DB_URL"))
	if dbURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}
	dbURL = database.NormalizeURL(dbURL, envBool(r.getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))

	dir, err := r.migrationsDir()
	if err != nil {
		return nil, err
	}

	sourceURL := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	r.logger.Debug("migrator ready", "source", sourceURL, "database", database.NameFromURL(dbURL))
	return m, nil
}

// create writes an empty up/down pair named <unix>_<name>.
func (r runner) create(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("create requires a migration name")
	}
	name := strings.Trim(migrationNamePattern.ReplaceAllString(strings.ToLower(strings.Join(args, "_")), "_"), "_")
	if name == "" {
		return fmt.Errorf("invalid migration name %q", strings.Join(args, " "))
	}

	dir, err := r.migrationsDir()
	if err != nil {
		return err
	}

	base := fmt.Sprintf("%d_%s", r.now().Unix(), name)
	for _, direction := range []string{"up", "down"} {
		path := filepath.Join(dir, base+"."+direction+".sql")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
		fmt.Fprintln(r.stdout, path)
	}
	return nil
}

func (r runner) migrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(r.getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func (r runner) closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		r.logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		r.logger.Warn("close migration db", "error", dbErr)
	}
}

func ignoreNoChange(logger *logging.Logger, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func envBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func printUsage(w io.Writer) {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <up|down|version|force|goto|create> [args]\n", bin)
	fmt.Fprintln(w, "examples:")
	fmt.Fprintf(w, "  %s up\n", bin)
	fmt.Fprintf(w, "  %s down 1\n", bin)
	fmt.Fprintf(w, "  %s version\n", bin)
	fmt.Fprintf(w, "  %s force 1760486460\n", bin)
	fmt.Fprintf(w, "  %s goto 1760486400\n", bin)
	fmt.Fprintf(w, "  %s create add club short name\n", bin)
}
