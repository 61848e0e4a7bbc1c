package bundle

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

const (
	AckEntry  = "acknowledgement.json"
	ADUPrefix = "adus/"
	ADUExt    = ".adu"

	// maxPayloadEntries bounds the number of entries read from one payload.
	maxPayloadEntries = 1 << 16
)

type ackFile struct {
	Acks []models.Acknowledgement `json:"acks"`
}

// EncodePayload builds the plaintext archive of a bundle:
//
//	acknowledgement.json
//	adus/<appId>/<seq>.adu
//
// ADU entries are written in (app, seq) order and compressed with zstd.
func EncodePayload(p models.BundlePayload) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	acks := p.Acks
	if acks == nil {
		acks = []models.Acknowledgement{}
	}
	ackJSON, err := json.Marshal(ackFile{Acks: acks})
	if err != nil {
		return nil, fmt.Errorf("encode acks: %w", err)
	}
	if err = writeEntry(zw, AckEntry, ackJSON); err != nil {
		return nil, err
	}

	adus := slices.Clone(p.ADUs)
	slices.SortFunc(adus, func(a, b models.ADU) int {
		if c := strings.Compare(a.AppID, b.AppID); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})

	for _, adu := range adus {
		if err = validateAppID(adu.AppID); err != nil {
			return nil, err
		}
		if adu.Payload == nil {
			return nil, fmt.Errorf("adu %s: payload not loaded", adu.Key())
		}
		if err = writeEntry(zw, ADUEntryName(adu.AppID, adu.Seq), adu.Payload); err != nil {
			return nil, err
		}
	}

	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("close payload: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePayload parses a plaintext archive. Entries other than the
// acknowledgement file and ADUs are ignored.
func DecodePayload(data []byte) (models.BundlePayload, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.BundlePayload{}, fmt.Errorf("%w: payload: %w", ErrMalformedBundle, err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	if len(zr.File) > maxPayloadEntries {
		return models.BundlePayload{}, fmt.Errorf("%w: payload has %d entries", ErrMalformedBundle, len(zr.File))
	}

	var (
		p        models.BundlePayload
		foundAck bool
	)
	for _, f := range zr.File {
		switch {
		case f.Name == AckEntry:
			raw, err := readEntry(f)
			if err != nil {
				return models.BundlePayload{}, err
			}
			var af ackFile
			if err = json.Unmarshal(raw, &af); err != nil {
				return models.BundlePayload{}, fmt.Errorf("%w: decode %s: %w", ErrMalformedBundle, AckEntry, err)
			}
			p.Acks = af.Acks
			foundAck = true

		case strings.HasPrefix(f.Name, ADUPrefix):
			appID, seq, err := ParseADUEntryName(f.Name)
			if err != nil {
				return models.BundlePayload{}, err
			}
			raw, err := readEntry(f)
			if err != nil {
				return models.BundlePayload{}, err
			}
			p.ADUs = append(p.ADUs, models.ADU{AppID: appID, Seq: seq, Size: int64(len(raw)), Payload: raw})
		}
	}

	if !foundAck {
		return models.BundlePayload{}, fmt.Errorf("%w: missing %s", ErrMalformedBundle, AckEntry)
	}
	return p, nil
}

// ADUEntryName returns the archive path of one ADU.
func ADUEntryName(appID string, seq int64) string {
	return ADUPrefix + appID + "/" + strconv.FormatInt(seq, 10) + ADUExt
}

// ParseADUEntryName is the inverse of ADUEntryName.
func ParseADUEntryName(name string) (string, int64, error) {
	rest := strings.TrimPrefix(name, ADUPrefix)
	appID, file := path.Split(rest)
	appID = strings.TrimSuffix(appID, "/")

	if err := validateAppID(appID); err != nil {
		return "", 0, fmt.Errorf("%w: entry %q", ErrMalformedBundle, name)
	}
	if !strings.HasSuffix(file, ADUExt) {
		return "", 0, fmt.Errorf("%w: entry %q", ErrMalformedBundle, name)
	}

	seq, err := strconv.ParseInt(strings.TrimSuffix(file, ADUExt), 10, 64)
	if err != nil || seq <= 0 {
		return "", 0, fmt.Errorf("%w: entry %q: bad sequence", ErrMalformedBundle, name)
	}
	return appID, seq, nil
}

// validateAppID rejects ids the store could not use as a directory name.
func validateAppID(appID string) error {
	if !models.ValidPathSegment(appID) {
		return fmt.Errorf("%w: app id %q", ErrMalformedBundle, appID)
	}
	return nil
}

// ValidAppID reports whether appID can name an ADU stream.
func ValidAppID(appID string) bool {
	return validateAppID(appID) == nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zstd.ZipMethodWinZip})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrMalformedBundle, f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrMalformedBundle, f.Name, err)
	}
	return data, nil
}
