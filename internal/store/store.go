// Package store adapts the device's key-value config database for the rest
// of the tool. The binary format, its transactions, and its durability are
// bbolt's job; this layer only knows the eac_app_ key convention, the
// checksum sidecar contract, and the backup-before-write discipline.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "eac"
	keyPrefix  = "eac_app_"

	// crcSuffix names the checksum companion the device keeps next to the
	// database file; its absence means an incomplete copy off the device.
	crcSuffix    = ".crc"
	backupSuffix = ".backup"
)

var (
	// ErrMissingDatabase means the database file itself is absent.
	ErrMissingDatabase = errors.New("database file not found")

	// ErrMissingChecksum means the .crc companion is absent. Refusing to
	// open in that case protects against editing a partial device copy.
	ErrMissingChecksum = errors.New("checksum file not found")
)

// Store is an open device config database.
type Store struct {
	path    string
	crcPath string
	db      *bolt.DB
}

// Open validates that both device files are present and opens the database.
// Nothing on disk is touched when validation fails.
func Open(path string) (*Store, error) {
	crcPath := path + crcSuffix
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingDatabase, path)
	}
	if _, err := os.Stat(crcPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingChecksum, crcPath)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	slog.Debug("database opened", "path", path)
	return &Store{path: path, crcPath: crcPath, db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AppConfig reads the stored blob for one package. ok is false when the app
// has no entry; that is a normal outcome for apps never launched on-device.
func (s *Store) AppConfig(pkg string) (blob []byte, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		v := b.Get([]byte(keyPrefix + pkg))
		if v == nil {
			return nil
		}
		// Values are only valid inside the transaction; copy out.
		blob = append([]byte(nil), v...)
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("reading config for %s: %w", pkg, err)
	}
	return blob, ok, nil
}

// SetAppConfig durably stores the blob for one package. Callers must have
// taken a backup first; a failed transaction leaves the file unchanged.
func (s *Store) SetAppConfig(pkg string, blob []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return b.Put([]byte(keyPrefix+pkg), blob)
	})
	if err != nil {
		return fmt.Errorf("writing config for %s: %w", pkg, err)
	}
	return nil
}

// Apps lists every package with a stored entry, sorted.
func (s *Store) Apps() ([]string, error) {
	var pkgs []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			key := string(k)
			if strings.HasPrefix(key, keyPrefix) {
				pkgs = append(pkgs, strings.TrimPrefix(key, keyPrefix))
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing apps: %w", err)
	}
	sort.Strings(pkgs)
	return pkgs, nil
}

// Backup copies the database file and its checksum companion to .backup
// twins. The pair on disk stays restorable even if the write that follows
// fails mid-way.
func (s *Store) Backup() (dbBackup, crcBackup string, err error) {
	dbBackup = s.path + backupSuffix
	crcBackup = s.crcPath + backupSuffix

	if err := copyFile(s.path, dbBackup); err != nil {
		return "", "", fmt.Errorf("backing up database: %w", err)
	}
	if err := copyFile(s.crcPath, crcBackup); err != nil {
		return "", "", fmt.Errorf("backing up checksum file: %w", err)
	}
	slog.Debug("backup written", "db", dbBackup, "crc", crcBackup)
	return dbBackup, crcBackup, nil
}

// RefreshChecksum recomputes the sidecar after a write: CRC-32 (IEEE) of the
// database file, stored as a little-endian uint32, which is the framing the
// device's reader checks on startup.
func (s *Store) RefreshChecksum() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading database for checksum: %w", err)
	}

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], crc32.ChecksumIEEE(data))
	if err := os.WriteFile(s.crcPath, buf[:], 0o600); err != nil {
		return fmt.Errorf("writing checksum file: %w", err)
	}
	slog.Debug("checksum refreshed", "path", s.crcPath)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
