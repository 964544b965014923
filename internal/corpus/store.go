package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	compression "github.com/deploymenttheory/go-shortcuts-doc/internal/common/compressionutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/fsutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/jsonutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/logger"
)

// backupTimeFormat keeps sub-second precision so two saves in the same
// second still produce distinct, lexically ordered backups.
const backupTimeFormat = "20060102_150405.000000000"

// StoreConfig locates the snapshot file and its backups
type StoreConfig struct {
	File        string
	BackupDir   string
	BackupCount int
	Compression string
}

// Backup describes one saved copy of a previous snapshot
type Backup struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// Store loads and saves corpus snapshots
type Store struct {
	config StoreConfig
	format compression.Format
	log    *logger.Logger
	now    func() time.Time
}

// NewStore validates the compression setting and returns a store
func NewStore(config StoreConfig, log *logger.Logger) (*Store, error) {
	if config.File == "" {
		return nil, fmt.Errorf("%w: snapshot file path is empty", errors.ErrInvalidArgument)
	}
	format, err := compression.ParseFormat(config.Compression)
	if err != nil {
		return nil, err
	}
	if config.BackupDir == "" {
		config.BackupDir = filepath.Join(filepath.Dir(config.File), "backups")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{config: config, format: format, log: log, now: time.Now}, nil
}

// Path returns the snapshot file location
func (s *Store) Path() string {
	return s.config.File
}

// Load reads the snapshot into a new corpus. A missing file yields an empty
// corpus. An unreadable or undecodable file also yields an empty corpus,
// together with an ErrStorageRead the caller may log and ignore.
func (s *Store) Load() (*Corpus, error) {
	c := New()
	if !fsutil.FileExists(s.config.File) {
		s.log.Debug("No snapshot found, starting empty", map[string]interface{}{"file": s.config.File})
		return c, nil
	}

	snap, err := s.readSnapshot(s.config.File, compression.None)
	if err != nil {
		return c, err
	}
	c.Merge(snap)

	s.log.Info("Loaded corpus snapshot", map[string]interface{}{
		"file":    s.config.File,
		"actions": c.Size(),
	})
	return c, nil
}

// Save backs up the current snapshot file, prunes old backups and atomically
// replaces the snapshot with the corpus contents.
func (s *Store) Save(c *Corpus) error {
	if s.config.BackupCount > 0 && fsutil.FileExists(s.config.File) {
		if err := s.backup(); err != nil {
			return fmt.Errorf("%w: backup failed: %v", errors.ErrStorageWrite, err)
		}
		if err := s.prune(); err != nil {
			// A stale backup is not worth losing the save over
			s.log.Warn("Failed to prune old backups", map[string]interface{}{"error": err.Error()})
		}
	}

	if err := jsonutil.WriteJSONFile(s.config.File, c.ToSnapshot()); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStorageWrite, err)
	}

	s.log.Info("Saved corpus snapshot", map[string]interface{}{
		"file":    s.config.File,
		"actions": c.Size(),
	})
	return nil
}

// Backups lists the backups of the snapshot file, newest first
func (s *Store) Backups() ([]Backup, error) {
	if !fsutil.DirExists(s.config.BackupDir) {
		return nil, nil
	}
	entries, err := fsutil.ListFiles(s.config.BackupDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStorageRead, err)
	}

	var backups []Backup
	for _, e := range entries {
		if !s.isBackupName(e.Name) {
			continue
		}
		backups = append(backups, Backup{Name: e.Name, Path: e.FullPath, ModTime: e.ModTime, Size: e.Size})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].ModTime.Equal(backups[j].ModTime) {
			return backups[i].ModTime.After(backups[j].ModTime)
		}
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// Restore replaces the snapshot with the named backup, or the newest one
// when name is empty. The current snapshot is backed up first.
func (s *Store) Restore(name string) (*Backup, error) {
	backups, err := s.Backups()
	if err != nil {
		return nil, err
	}

	var chosen *Backup
	for i := range backups {
		if name == "" || backups[i].Name == name {
			chosen = &backups[i]
			break
		}
	}
	if chosen == nil {
		if name == "" {
			return nil, fmt.Errorf("%w: no backups in %s", errors.ErrBackupNotFound, s.config.BackupDir)
		}
		return nil, fmt.Errorf("%w: %s", errors.ErrBackupNotFound, name)
	}

	snap, err := s.readSnapshot(chosen.Path, compression.DetectFormat(chosen.Path))
	if err != nil {
		return nil, err
	}
	restored := New()
	restored.Merge(snap)

	if err := s.Save(restored); err != nil {
		return nil, err
	}
	s.log.Info("Restored corpus snapshot", map[string]interface{}{"backup": chosen.Name})
	return chosen, nil
}

// isBackupName reports whether name is exactly
// <stem>_<timestamp><ext>[.gz|.bz2|.xz] for this store's snapshot file.
// Backups of sibling snapshots sharing the directory never match.
func (s *Store) isBackupName(name string) bool {
	name = strings.TrimSuffix(name, compression.DetectFormat(name).Extension())

	ext := filepath.Ext(s.config.File)
	if !strings.HasSuffix(name, ext) {
		return false
	}
	name = strings.TrimSuffix(name, ext)

	prefix := fsutil.GetFileNameWithoutExt(s.config.File) + "_"
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	_, err := time.Parse(backupTimeFormat, strings.TrimPrefix(name, prefix))
	return err == nil
}

func (s *Store) readSnapshot(path string, format compression.Format) (*Snapshot, error) {
	data, err := compression.ExtractFile(path, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrStorageRead, path, err)
	}
	snap := newSnapshot()
	if err := jsonutil.Decode(data, snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrStorageRead, path, err)
	}
	return snap, nil
}

func (s *Store) backup() error {
	if err := fsutil.CreateDirIfNotExists(s.config.BackupDir); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s%s%s",
		fsutil.GetFileNameWithoutExt(s.config.File),
		s.now().Format(backupTimeFormat),
		filepath.Ext(s.config.File),
		s.format.Extension(),
	)
	dst := filepath.Join(s.config.BackupDir, name)

	if s.format == compression.None {
		err := fsutil.CopyFile(s.config.File, dst)
		if err == nil {
			s.log.Debug("Created snapshot backup", map[string]interface{}{"backup": dst})
		}
		return err
	}
	if err := compression.CompressFile(s.config.File, dst, s.format); err != nil {
		return err
	}
	s.log.Debug("Created snapshot backup", map[string]interface{}{"backup": dst, "compression": string(s.format)})
	return nil
}

// prune keeps the BackupCount newest backups
func (s *Store) prune() error {
	backups, err := s.Backups()
	if err != nil {
		return err
	}
	if len(backups) <= s.config.BackupCount {
		return nil
	}
	for _, b := range backups[s.config.BackupCount:] {
		if err := os.Remove(b.Path); err != nil {
			return err
		}
		s.log.Debug("Removed old backup", map[string]interface{}{"backup": b.Name})
	}
	return nil
}
