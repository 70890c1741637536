/*
Tableaud starts the tableau HTTP daemon and begins listening for requests.

Usage:

	tableaud [flags]
	tableaud --provision NAME

Once started, tableaud exposes the tableau decision engine over HTTP: clients
exchange a provisioned API key for a bearer JWT at POST /v1/token, then call
POST /v1/solve and GET /v1/history with that token. See internal/tabapi for
the exact request/response shapes.

The flags are:

	-v, --version
		Give the current version of tableaud and then exit.

	-c, --config FILE
		Read daemon configuration from the given TOML file. Defaults to
		"tableaud.toml" in the current working directory.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address, overriding the config file's
		listen_addr. Must be in BIND_ADDRESS:PORT or :PORT format.

	--provision NAME
		Provision a new API key named NAME, print its plaintext secret and
		the config-file entry (bcrypt hash) to generate for it, then exit
		without starting the server. The plaintext is shown exactly once;
		nothing is written to disk.
*/
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dekarrin/tableau/internal/tabapi"
	"github.com/dekarrin/tableau/internal/tabauth"
	"github.com/dekarrin/tableau/internal/tabconfig"
	"github.com/dekarrin/tableau/internal/tabledb"
	"github.com/dekarrin/tableau/internal/tabledb/inmem"
	"github.com/dekarrin/tableau/internal/tabledb/sqlite"
	"github.com/dekarrin/tableau/internal/version"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "TABLEAU_LISTEN_ADDRESS"
	EnvConfig = "TABLEAU_CONFIG"
)

var (
	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version of tableaud and then exit.")
	flagConfig    = pflag.StringP("config", "c", "tableaud.toml", "Read daemon configuration from the given TOML file.")
	flagListen    = pflag.StringP("listen", "l", "", "Listen on the given address, overriding the config file.")
	flagProvision = pflag.String("provision", "", "Provision a new API key with the given name and exit.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("tableaud %s (tableau v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if *flagProvision != "" {
		runProvision(*flagProvision)
		return
	}

	args := pflag.Args()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	configPath := *flagConfig
	if env := os.Getenv(EnvConfig); env != "" && !pflag.Lookup("config").Changed {
		configPath = env
	}

	cfg, err := tabconfig.Load(configPath)
	if err != nil {
		log.Fatalf("FATAL could not load config %s: %s", configPath, err.Error())
	}

	if pflag.Lookup("listen").Changed {
		cfg.ListenAddr = *flagListen
	} else if env := os.Getenv(EnvListen); env != "" {
		cfg.ListenAddr = env
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL invalid config: %s", err.Error())
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("FATAL could not open history store: %s", err.Error())
	}
	defer store.Close()

	keys := make([]tabauth.APIKey, len(cfg.APIKeys))
	for i, entry := range cfg.APIKeys {
		keys[i] = tabauth.APIKey{Name: entry.Name, Hash: entry.Hash}
	}

	api := tabapi.API{
		History:     store.History(),
		Keys:        keys,
		JWTSecret:   []byte(cfg.JWTSecret),
		TokenTTL:    time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		UnauthDelay: time.Duration(cfg.UnauthDelayMillis) * time.Millisecond,
	}

	log.Printf("INFO  Starting tableaud %s on %s...", version.ServerCurrent, cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, api.Router()); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

// openStore picks the sqlite-backed store when cfg.DataDir is set, and the
// in-memory store otherwise.
func openStore(cfg tabconfig.Config) (tabledb.Store, error) {
	if cfg.DataDir == "" {
		return inmem.NewDatastore(), nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0770); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return sqlite.NewDatastore(cfg.DataDir)
}

// runProvision generates a new API key and prints the artifacts an
// operator needs to finish provisioning it by hand: the plaintext secret
// to hand to the client, and the TOML stanza to append to the config
// file's api_keys list.
func runProvision(name string) {
	key, plaintext, err := tabauth.Provision(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not provision key: %s\n", err.Error())
		os.Exit(1)
	}

	fmt.Printf("API key provisioned for %q.\n", name)
	fmt.Printf("Plaintext secret (give this to the client, shown only once):\n\n  %s\n\n", plaintext)
	fmt.Printf("Add this to the daemon's config file:\n\n")
	fmt.Printf("[[api_keys]]\nname = %q\nhash = %q\n", key.Name, key.Hash)
}

