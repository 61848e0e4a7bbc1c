package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		Role           string   `json:"role"`
		KeysDir        string   `json:"keys_dir"`
		ServerKeysFile string   `json:"server_keys_file"`
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		Version        string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			DataDir string `json:"data_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Window struct {
		MaxBytes           int64 `json:"max_bytes"`
		MaxCount           int   `json:"max_count"`
		MaxBundlesInFlight int   `json:"max_bundles_in_flight"`
	} `json:"window,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		ServerURL      string   `json:"server_url"`
		TransportDir   string   `json:"transport_dir"`
		TransportID    string   `json:"transport_id"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		TransferInterval Duration `json:"transfer_interval"`
		DeliveryInterval Duration `json:"delivery_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Role:           jsonCfg.App.Role,
			KeysDir:        jsonCfg.App.KeysDir,
			ServerKeysFile: jsonCfg.App.ServerKeysFile,
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.App.TokenDuration),
			Version:        jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				DataDir: jsonCfg.Storage.Files.DataDir,
			},
		},
		Window: Window{
			MaxBytes:           jsonCfg.Window.MaxBytes,
			MaxCount:           jsonCfg.Window.MaxCount,
			MaxBundlesInFlight: jsonCfg.Window.MaxBundlesInFlight,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			ServerURL:      jsonCfg.Adapter.ServerURL,
			TransportDir:   jsonCfg.Adapter.TransportDir,
			TransportID:    jsonCfg.Adapter.TransportID,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			TransferInterval: time.Duration(jsonCfg.Workers.TransferInterval),
			DeliveryInterval: time.Duration(jsonCfg.Workers.DeliveryInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
