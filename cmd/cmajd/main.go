/*
Cmajd starts a cmaj grammar server and begins listening for new connections.

Usage:

	cmajd [flags]
	cmajd [flags] -l [[ADDRESS]:PORT]

Once started, the server listens for HTTP requests and responds to them
using the cmaj grammar-store REST protocol: compile-and-store a grammar
definition, then parse input text against it. By default it listens on
:8484 (all interfaces). This can be changed with the --listen/-l flag (or the
CMAJ_LISTEN_ADDRESS environment variable).

If a JWT token secret is not given, one will be automatically generated and
seeded from crypto/rand. As a consequence, in this mode of operation all
tokens become invalid as soon as the server shuts down. This is suitable for
testing, but must be given via either CLI flags or environment variable if
running in production.

The flags are:

	-v, --version
		Give the current version of cmajd and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable CMAJ_LISTEN_ADDRESS, and if that is not given, will default
		to :8484.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If not given, will
		default to the value of environment variable CMAJ_TOKEN_SECRET. If
		no secret is specified, a random secret will be automatically
		generated.

	-p, --passphrase PASSPHRASE
		Passphrase clients must present to POST /token to receive a
		write-capable JWT. If not given, defaults to CMAJ_PASSPHRASE, and if
		that is unset, a random passphrase is generated and printed once at
		startup.

	-d, --data-dir DIR
		Directory holding the sqlite grammar store. Defaults to the
		cache_dir of --config, or "./cmaj-cache" if no config is given.

	-c, --config FILE
		Load a TOML config file (see internal/config) supplying defaults for
		--listen (server_addr) and --data-dir (cache_dir). Explicit flags and
		environment variables take precedence over it.
*/
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"github.com/kestrelparse/cmaj/internal/config"
	"github.com/kestrelparse/cmaj/internal/httpapi"
	"github.com/kestrelparse/cmaj/internal/store"
	"github.com/kestrelparse/cmaj/internal/version"
)

const (
	EnvListen     = "CMAJ_LISTEN_ADDRESS"
	EnvSecret     = "CMAJ_TOKEN_SECRET"
	EnvPassphrase = "CMAJ_PASSPHRASE"
)

var (
	flagVersion    = pflag.BoolP("version", "v", false, "Give the current version of cmajd and then exit.")
	flagListen     = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret     = pflag.StringP("secret", "s", "", "Use the given secret for token signing.")
	flagPassphrase = pflag.StringP("passphrase", "p", "", "Passphrase required to obtain a write token.")
	flagDataDir    = pflag.StringP("data-dir", "d", "", "Directory holding the grammar store.")
	flagConfig     = pflag.StringP("config", "c", "", "Path to a TOML config file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.ServerCurrent)
		return
	}

	if args := pflag.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	cfg := config.Default()
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			log.Fatalf("FATAL could not load config: %s", err)
		}
		cfg = loaded
	}

	listenAddr := cfg.ServerAddr
	if v := os.Getenv(EnvListen); v != "" {
		listenAddr = v
	}
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = ":8484"
	}

	dataDir := cfg.CacheDir
	if pflag.Lookup("data-dir").Changed {
		dataDir = *flagDataDir
	}
	if dataDir == "" {
		dataDir = "./cmaj-cache"
	}
	if err := os.MkdirAll(dataDir, 0770); err != nil {
		log.Fatalf("FATAL could not create data directory: %s", err)
	}

	jwtSecret := resolveSecret()
	passphraseHash := resolvePassphraseHash()

	st, err := store.Open(dataDir)
	if err != nil {
		log.Fatalf("FATAL could not open grammar store: %s", err)
	}
	defer st.Close()

	srv := httpapi.New(st, passphraseHash, jwtSecret)

	log.Printf("INFO  Starting cmajd %s on %s...", version.ServerCurrent, listenAddr)
	if err := http.ListenAndServe(listenAddr, srv); err != nil {
		log.Fatalf("FATAL server exited: %s", err)
	}
}

func resolveSecret() []byte {
	secret := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		secret = *flagSecret
	}
	if secret != "" {
		return []byte(secret)
	}

	random := make([]byte, 64)
	if _, err := rand.Read(random); err != nil {
		log.Fatalf("FATAL could not generate token secret: %s", err)
	}
	log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	return random
}

func resolvePassphraseHash() []byte {
	passphrase := os.Getenv(EnvPassphrase)
	if pflag.Lookup("passphrase").Changed {
		passphrase = *flagPassphrase
	}
	if passphrase == "" {
		raw := make([]byte, 18)
		if _, err := rand.Read(raw); err != nil {
			log.Fatalf("FATAL could not generate passphrase: %s", err)
		}
		passphrase = strings.TrimRight(base64.URLEncoding.EncodeToString(raw), "=")
		log.Printf("WARN  Using generated write passphrase: %s", passphrase)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("FATAL could not hash passphrase: %s", err)
	}
	return hash
}
