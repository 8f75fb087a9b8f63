// Package backup writes periodic snapshots of the project to disk, optionally
// encrypted with a fernet key, and restores them.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/apperrors"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/projectfile"
)

const (
	filePrefix      = "feasibility-"
	plainSuffix     = ".json"
	cipherSuffix    = ".json.fernet"
	timestampLayout = "20060102-150405.000"
)

// Source produces the encoded project document to back up.
type Source interface {
	ExportProjectFile(ctx context.Context) ([]byte, error)
}

// Options configures a Manager.
type Options struct {
	Dir  string
	Key  string
	Keep int
}

// Manager writes and prunes backups in a single directory.
type Manager struct {
	dir    string
	key    *fernet.Key
	keep   int
	source Source
	logger *log.Logger
	now    func() time.Time
}

// NewManager validates opts and creates the backup directory.
// An empty Key stores plain JSON. A Keep below 1 keeps every backup.
func NewManager(opts Options, source Source, logger *log.Logger) (*Manager, error) {
	if opts.Dir == "" {
		return nil, errors.New("backup directory is required")
	}

	m := &Manager{
		dir:    opts.Dir,
		keep:   opts.Keep,
		source: source,
		logger: logger,
		now:    time.Now,
	}

	if opts.Key != "" {
		key, err := fernet.DecodeKey(opts.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrBackupKeyInvalid, err)
		}
		m.key = key
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return m, nil
}

// Run writes one backup and prunes old ones. It returns the path written.
func (m *Manager) Run(ctx context.Context) (string, error) {
	data, err := m.source.ExportProjectFile(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to snapshot project: %w", err)
	}

	suffix := plainSuffix
	if m.key != nil {
		data, err = fernet.EncryptAndSign(data, m.key)
		if err != nil {
			return "", fmt.Errorf("failed to encrypt backup: %w", err)
		}
		suffix = cipherSuffix
	}

	name := filePrefix + m.now().UTC().Format(timestampLayout) + suffix
	path := filepath.Join(m.dir, name)
	if err := projectfile.WriteAtomic(path, data); err != nil {
		return "", err
	}

	if err := m.prune(); err != nil {
		m.logger.Warn().Err(err).Msg("failed to prune backups")
	}

	return path, nil
}

// List returns the backup files in the directory, oldest first.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isBackup(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(m.dir, e.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}

func (m *Manager) prune() error {
	if m.keep < 1 {
		return nil
	}
	paths, err := m.List()
	if err != nil {
		return err
	}
	if len(paths) <= m.keep {
		return nil
	}

	var errs []error
	for _, p := range paths[:len(paths)-m.keep] {
		if err := os.Remove(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Start schedules Run on spec (standard cron syntax or descriptors such as
// "@every 15m"). Failures are logged and never stop the schedule. The
// returned function stops the scheduler and waits for a running backup.
func (m *Manager) Start(spec string) (stop func(), err error) {
	c := cron.New()
	_, err = c.AddFunc(spec, func() {
		path, err := m.Run(context.Background())
		if err != nil {
			m.logger.Error().Err(err).Msg("scheduled backup failed")
			return
		}
		m.logger.Info().Str("path", path).Msg("backup written")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}

	c.Start()
	m.logger.Info().Str("dir", m.dir).Str("schedule", spec).Bool("encrypted", m.key != nil).Msg("backup scheduler started")

	return func() {
		<-c.Stop().Done()
	}, nil
}

// Restore reads a backup file written by Run. Encrypted backups need the key
// they were written with.
func Restore(path, key string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read backup: %w", err)
	}

	if strings.HasSuffix(path, cipherSuffix) {
		if key == "" {
			return model.Project{}, fmt.Errorf("%w: backup is encrypted and no key was given", apperrors.ErrBackupDecrypt)
		}
		k, err := fernet.DecodeKey(key)
		if err != nil {
			return model.Project{}, fmt.Errorf("%w: %w", apperrors.ErrBackupKeyInvalid, err)
		}
		data = fernet.VerifyAndDecrypt(data, 0, []*fernet.Key{k})
		if data == nil {
			return model.Project{}, apperrors.ErrBackupDecrypt
		}
	}

	return projectfile.Decode(data)
}

func isBackup(name string) bool {
	return strings.HasPrefix(name, filePrefix) &&
		(strings.HasSuffix(name, plainSuffix) || strings.HasSuffix(name, cipherSuffix))
}
