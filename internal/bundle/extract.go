package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

// Extract writes a decoded payload to dir using the same layout as the
// plaintext archive: acknowledgement.json and adus/<appId>/<seq>.adu.
func Extract(p models.BundlePayload, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	acks := p.Acks
	if acks == nil {
		acks = []models.Acknowledgement{}
	}
	ackJSON, err := json.MarshalIndent(ackFile{Acks: acks}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode acks: %w", err)
	}
	if err = os.WriteFile(filepath.Join(dir, AckEntry), ackJSON, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", AckEntry, err)
	}

	for _, adu := range p.ADUs {
		if err = validateAppID(adu.AppID); err != nil {
			return err
		}
		name := filepath.Join(dir, filepath.FromSlash(ADUEntryName(adu.AppID, adu.Seq)))
		if err = os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return fmt.Errorf("create app dir: %w", err)
		}
		if err = os.WriteFile(name, adu.Payload, 0o644); err != nil {
			return fmt.Errorf("write adu %s: %w", adu.Key(), err)
		}
	}
	return nil
}
