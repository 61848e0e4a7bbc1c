// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bundle frames encrypted bundles into self-describing containers.
//
// A container is a zip archive with two entries, in this order:
//
//	header.json   bundle id, format version, encryption header, signature,
//	              payload size and digest
//	payload.bin   the ciphertext, stored without compression
//
// The bundle id is the unpadded base64url SHA-256 of the ciphertext, so the
// name of a bundle is also its integrity check.
package bundle

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

const (
	HeaderEntry  = "header.json"
	PayloadEntry = "payload.bin"

	// FileExt is the extension of bundle files on disk and on carried media.
	FileExt = ".bundle"

	// maxHeaderSize bounds header.json; real headers are well under 4 KiB.
	maxHeaderSize = 64 << 10
)

// ContentID returns the bundle id of a ciphertext.
func ContentID(ciphertext []byte) string {
	sum := sha256.Sum256(ciphertext)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// New assembles a bundle from sealed output and computes its id.
func New(header models.EncryptionHeader, ciphertext, signature []byte) models.Bundle {
	return models.Bundle{
		ID:        ContentID(ciphertext),
		Header:    header,
		Payload:   ciphertext,
		Signature: signature,
		Size:      int64(len(ciphertext)),
	}
}

// Write frames b into w. b.Payload must hold the ciphertext.
func Write(w io.Writer, b models.Bundle) error {
	if b.Payload == nil {
		return fmt.Errorf("%w: bundle %s has no payload", ErrMalformedBundle, b.ID)
	}

	h := Header{
		BundleID:      b.ID,
		Version:       FormatVersion,
		Encryption:    b.Header,
		Signature:     b.Signature,
		PayloadSize:   int64(len(b.Payload)),
		PayloadDigest: ContentID(b.Payload),
	}
	if h.BundleID == "" {
		h.BundleID = h.PayloadDigest
	}

	headerJSON, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	zw := zip.NewWriter(w)

	hw, err := zw.CreateHeader(&zip.FileHeader{Name: HeaderEntry, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("create %s: %w", HeaderEntry, err)
	}
	if _, err = hw.Write(headerJSON); err != nil {
		return fmt.Errorf("write %s: %w", HeaderEntry, err)
	}

	pw, err := zw.CreateHeader(&zip.FileHeader{Name: PayloadEntry, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("create %s: %w", PayloadEntry, err)
	}
	if _, err = pw.Write(b.Payload); err != nil {
		return fmt.Errorf("write %s: %w", PayloadEntry, err)
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("close container: %w", err)
	}
	return nil
}

// Marshal returns the container bytes of b.
func Marshal(b models.Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadHeader validates the container at path and returns its header. Only
// header.json is decompressed; the payload entry is located through the
// central directory but never read.
func ReadHeader(path string) (Header, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrMalformedBundle, err)
	}
	defer zr.Close()

	h, _, err := readContainerHeader(&zr.Reader)
	return h, err
}

// ReadFile parses the container at path, checks the ciphertext against the
// header and returns the bundle with Source set to path.
func ReadFile(path string) (models.Bundle, Header, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return models.Bundle{}, Header{}, fmt.Errorf("%w: %w", ErrMalformedBundle, err)
	}
	defer zr.Close()

	b, h, err := read(&zr.Reader)
	if err != nil {
		return models.Bundle{}, Header{}, err
	}
	b.Source = path
	return b, h, nil
}

// Read parses a container held in memory.
func Read(r io.ReaderAt, size int64) (models.Bundle, Header, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return models.Bundle{}, Header{}, fmt.Errorf("%w: %w", ErrMalformedBundle, err)
	}
	return read(zr)
}

// Unmarshal parses container bytes.
func Unmarshal(data []byte) (models.Bundle, Header, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Stat returns the header of the container at path as a bundle without its
// payload.
func Stat(path string) (models.Bundle, error) {
	h, err := ReadHeader(path)
	if err != nil {
		return models.Bundle{}, err
	}
	return models.Bundle{
		ID:        h.BundleID,
		Header:    h.Encryption,
		Signature: h.Signature,
		Size:      h.PayloadSize,
		Source:    path,
	}, nil
}

func read(zr *zip.Reader) (models.Bundle, Header, error) {
	h, payloadFile, err := readContainerHeader(zr)
	if err != nil {
		return models.Bundle{}, Header{}, err
	}

	rc, err := payloadFile.Open()
	if err != nil {
		return models.Bundle{}, Header{}, fmt.Errorf("%w: open %s: %w", ErrMalformedBundle, PayloadEntry, err)
	}
	defer rc.Close()

	// one extra byte detects a payload longer than announced
	payload, err := io.ReadAll(io.LimitReader(rc, h.PayloadSize+1))
	if err != nil {
		return models.Bundle{}, Header{}, fmt.Errorf("%w: read %s: %w", ErrMalformedBundle, PayloadEntry, err)
	}
	if int64(len(payload)) != h.PayloadSize {
		return models.Bundle{}, Header{}, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrMalformedBundle, len(payload), h.PayloadSize)
	}

	digest := ContentID(payload)
	if digest != h.PayloadDigest || digest != h.BundleID {
		return models.Bundle{}, Header{}, fmt.Errorf("%w: payload digest mismatch for %s", ErrMalformedBundle, h.BundleID)
	}

	return models.Bundle{
		ID:        h.BundleID,
		Header:    h.Encryption,
		Payload:   payload,
		Signature: h.Signature,
		Size:      h.PayloadSize,
	}, h, nil
}

func readContainerHeader(zr *zip.Reader) (Header, *zip.File, error) {
	var headerFile, payloadFile *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case HeaderEntry:
			headerFile = f
		case PayloadEntry:
			payloadFile = f
		}
	}
	if headerFile == nil || payloadFile == nil {
		return Header{}, nil, fmt.Errorf("%w: missing %s or %s", ErrMalformedBundle, HeaderEntry, PayloadEntry)
	}
	if headerFile.UncompressedSize64 > maxHeaderSize {
		return Header{}, nil, fmt.Errorf("%w: %s too large", ErrMalformedBundle, HeaderEntry)
	}

	rc, err := headerFile.Open()
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: open %s: %w", ErrMalformedBundle, HeaderEntry, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxHeaderSize))
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: read %s: %w", ErrMalformedBundle, HeaderEntry, err)
	}

	var h Header
	if err = json.Unmarshal(data, &h); err != nil {
		return Header{}, nil, fmt.Errorf("%w: decode %s: %w", ErrMalformedBundle, HeaderEntry, err)
	}
	if err = h.validate(); err != nil {
		if errors.Is(err, ErrMalformedBundle) {
			return Header{}, nil, err
		}
		return Header{}, nil, fmt.Errorf("%w: %w", ErrMalformedBundle, err)
	}
	if payloadFile.UncompressedSize64 != uint64(h.PayloadSize) {
		return Header{}, nil, fmt.Errorf("%w: %s is %d bytes, header says %d", ErrMalformedBundle, PayloadEntry, payloadFile.UncompressedSize64, h.PayloadSize)
	}

	return h, payloadFile, nil
}

// IsBundleFile reports whether name has the bundle file extension.
func IsBundleFile(name string) bool {
	return strings.HasSuffix(name, FileExt) && len(name) > len(FileExt)
}

// FileName returns the on-disk name of a bundle.
func FileName(id string) string {
	return id + FileExt
}

// Remove deletes a bundle file, treating a missing file as already removed.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
