// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

// Direction selects the side of a stream a payload file belongs to.
type Direction string

const (
	// Outbound payloads were produced here for a peer.
	Outbound Direction = "out"
	// Inbound payloads were received from a peer.
	Inbound Direction = "in"
)

const (
	lockFileName = ".lock"
	aduDir       = "adus"
	bundleDir    = "bundles"
	aduExt       = ".adu"
	bundleExt    = ".bundle"
	tmpPrefix    = models.TempFilePrefix
)

// FileStorage keeps ADU payloads and bundle files under one data dir:
//
//	<root>/adus/<out|in>/<peer>/<app>/<seq>.adu
//	<root>/bundles/<id>.bundle
//
// Every file is written to a temp name and renamed into place, so a reader
// never sees a partial file. The data dir is locked for the lifetime of the
// storage; a second process on the same dir fails with ErrDataDirLocked.
type FileStorage struct {
	root string
	lock *flock.Flock
}

// NewFileStorage creates root if needed and locks it.
func NewFileStorage(root string) (*FileStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty data dir", ErrFileStorage)
	}
	for _, dir := range []string{root, filepath.Join(root, aduDir), filepath.Join(root, bundleDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create %s: %w", ErrFileStorage, dir, err)
		}
	}

	lock := flock.New(filepath.Join(root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: lock %s: %w", ErrFileStorage, root, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrDataDirLocked, root)
	}

	return &FileStorage{root: root, lock: lock}, nil
}

// Root returns the data dir.
func (f *FileStorage) Root() string {
	return f.root
}

// Close releases the data dir lock.
func (f *FileStorage) Close() error {
	return f.lock.Unlock()
}

// ADUPath returns the payload file path of one ADU.
func (f *FileStorage) ADUPath(dir Direction, peerID, appID string, seq int64) (string, error) {
	if err := validSegment(peerID); err != nil {
		return "", err
	}
	if err := validSegment(appID); err != nil {
		return "", err
	}
	return filepath.Join(f.root, aduDir, string(dir), peerID, appID, strconv.FormatInt(seq, 10)+aduExt), nil
}

// WriteADU atomically writes an ADU payload, replacing any orphan left by an
// earlier crash.
func (f *FileStorage) WriteADU(dir Direction, peerID, appID string, seq int64, payload []byte) error {
	path, err := f.ADUPath(dir, peerID, appID, seq)
	if err != nil {
		return err
	}
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(payload)
		return err
	})
}

// ReadADU reads an ADU payload. A missing file yields ErrADUNotFound.
func (f *FileStorage) ReadADU(dir Direction, peerID, appID string, seq int64) ([]byte, error) {
	path, err := f.ADUPath(dir, peerID, appID, seq)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s/%s/%d", ErrADUNotFound, peerID, appID, seq)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileStorage, err)
	}
	return data, nil
}

// StatADU returns the payload size of an ADU.
func (f *FileStorage) StatADU(dir Direction, peerID, appID string, seq int64) (int64, error) {
	path, err := f.ADUPath(dir, peerID, appID, seq)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s/%s/%d", ErrADUNotFound, peerID, appID, seq)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFileStorage, err)
	}
	return info.Size(), nil
}

// RemoveADU deletes an ADU payload. A missing file is not an error.
func (f *FileStorage) RemoveADU(dir Direction, peerID, appID string, seq int64) error {
	path, err := f.ADUPath(dir, peerID, appID, seq)
	if err != nil {
		return err
	}
	return removeIfExists(path)
}

// BundlePath implements [BundleFiles].
func (f *FileStorage) BundlePath(id string) string {
	return filepath.Join(f.root, bundleDir, id+bundleExt)
}

// WriteBundle implements [BundleFiles].
func (f *FileStorage) WriteBundle(id string, write func(w io.Writer) error) (string, error) {
	if err := validSegment(id); err != nil {
		return "", err
	}
	path := f.BundlePath(id)
	if err := writeAtomic(path, write); err != nil {
		return "", err
	}
	return path, nil
}

// RemoveBundle implements [BundleFiles].
func (f *FileStorage) RemoveBundle(id string) error {
	if err := validSegment(id); err != nil {
		return err
	}
	return removeIfExists(f.BundlePath(id))
}

func writeAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFileStorage, dir, err)
	}

	tmp := filepath.Join(dir, tmpPrefix+uuid.NewString())
	file, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrFileStorage, err)
	}

	if err = write(file); err == nil {
		err = file.Sync()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: write %s: %w", ErrFileStorage, filepath.Base(path), err)
	}

	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %w", ErrFileStorage, filepath.Base(path), err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %w", ErrFileStorage, filepath.Base(path), err)
	}
	return nil
}

func validSegment(s string) error {
	if !models.ValidPathSegment(s) {
		return fmt.Errorf("%w: %q", ErrInvalidPathSegment, s)
	}
	return nil
}
