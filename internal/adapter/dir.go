package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// DirTransport carries bundles on a directory tree, typically removable
// media moved between nodes. Every node reads from the directory named after
// its own peer id and writes into the directory of the bundle's recipient:
//
//	<root>/<recipientPeerID>/<bundleID>.bundle
type DirTransport struct {
	root   string
	peerID string

	mu       sync.Mutex
	returned map[string]struct{}
}

// NewDirTransport returns a DirTransport for the node peerID rooted at root.
func NewDirTransport(root, peerID string) (*DirTransport, error) {
	if root == "" {
		return nil, ErrEmptyAddress
	}
	if err := os.MkdirAll(filepath.Join(root, peerID), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return &DirTransport{root: root, peerID: peerID, returned: make(map[string]struct{})}, nil
}

// Deliver implements [Transport]. The recipient is read from the bundle
// header; a bundle already on the medium is left as is.
func (d *DirTransport) Deliver(_ context.Context, path string) error {
	h, err := bundle.ReadHeader(path)
	if err != nil {
		return err
	}

	dir := filepath.Join(d.root, filepath.Base(h.Encryption.RecipientID))
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	target := filepath.Join(dir, bundle.FileName(h.BundleID))
	if _, err = os.Stat(target); err == nil {
		return nil
	}

	if err = copyFile(path, target); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

// Poll implements [Transport]. Files are returned in name order.
func (d *DirTransport) Poll(_ context.Context) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	inbox := filepath.Join(d.root, d.peerID)
	entries, err := os.ReadDir(inbox)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && bundle.IsBundleFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	for _, name := range names {
		if _, seen := d.returned[name]; seen {
			continue
		}
		d.returned[name] = struct{}{}
		return filepath.Join(inbox, name), true, nil
	}

	clear(d.returned)
	return "", false, nil
}

// Purge implements [Purger].
func (d *DirTransport) Purge(_ context.Context, peerID string, bundleIDs []string) error {
	dir := filepath.Join(d.root, filepath.Base(peerID))

	var errs []error
	for _, id := range bundleIDs {
		if err := bundle.Remove(filepath.Join(dir, bundle.FileName(filepath.Base(id)))); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrTransport, errors.Join(errs...))
	}
	return nil
}

// copyFile writes src to dst through a temporary file in the target dir, so
// a reader never sees a partial bundle.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := filepath.Join(filepath.Dir(dst), models.TempFilePrefix+uuid.NewString())
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err == nil {
		err = out.Sync()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, dst)
	}
	if err != nil {
		_ = os.Remove(tmp)
	}
	return err
}
