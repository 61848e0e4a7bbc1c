package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the node flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-role node role (client|server)
//	-d database DSN
//	-db-driver database driver (sqlite3|pgx)
//	-f data directory for payload and bundle files
//	-keys own identity keys directory
//	-server-keys published server keys file
//	-c/-config json file path with configs
//	-token-sign-key admin token signing key
//	-token-issuer admin token issuer name
//	-token-duration admin token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-server-url bundle server base URL
//	-transport-dir carried-media transport directory
//	-transport-id carrier id reported to the server
//	-window-bytes / -window-count / -window-bundles bundle limits
//	-transfer-interval / -delivery-interval job periods
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("bundle-node", flag.ContinueOnError)

	var serverAddress NetAddress
	var role, databaseDSN, dbDriver, dataDir, keysDir, serverKeysFile string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout time.Duration
	var serverURL, transportDir, transportID string
	var windowBytes int64
	var windowCount, windowBundles int
	var transferInterval, deliveryInterval time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&role, "role", "", "Node role (client|server)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&dbDriver, "db-driver", "", "Database driver (sqlite3|pgx)")
	fs.StringVar(&dataDir, "f", "", "Data directory")
	fs.StringVar(&keysDir, "keys", "", "Identity keys directory")
	fs.StringVar(&serverKeysFile, "server-keys", "", "Published server keys file")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Admin token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Admin token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Admin token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&serverURL, "server-url", "", "Bundle server base URL")
	fs.StringVar(&transportDir, "transport-dir", "", "Carried-media transport directory")
	fs.StringVar(&transportID, "transport-id", "", "Carrier id")
	fs.Int64Var(&windowBytes, "window-bytes", 0, "Max ADU bytes per bundle")
	fs.IntVar(&windowCount, "window-count", 0, "Max ADUs per bundle")
	fs.IntVar(&windowBundles, "window-bundles", 0, "Max unacknowledged bundles per peer")
	fs.DurationVar(&transferInterval, "transfer-interval", 0, "Transfer job period")
	fs.DurationVar(&deliveryInterval, "delivery-interval", 0, "Delivery job period")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Role:           role,
			KeysDir:        keysDir,
			ServerKeysFile: serverKeysFile,
			TokenSignKey:   tokenSignKey,
			TokenIssuer:    tokenIssuer,
			TokenDuration:  tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				Driver: dbDriver,
				DSN:    databaseDSN,
			},
			Files: Files{
				DataDir: dataDir,
			},
		},
		Window: Window{
			MaxBytes:           windowBytes,
			MaxCount:           windowCount,
			MaxBundlesInFlight: windowBundles,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			ServerURL:      serverURL,
			TransportDir:   transportDir,
			TransportID:    transportID,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			TransferInterval: transferInterval,
			DeliveryInterval: deliveryInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
