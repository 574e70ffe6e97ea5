/*
Parattice-server starts a paraphrase-lattice HTTP server and begins
listening for new connections.

Usage:

	parattice-server [flags]
	parattice-server [flags] -l [[ADDRESS]:PORT]

Once started, the server will listen for HTTP requests and respond to them
using a REST protocol. By default, it will listen on localhost:8080. This
can be changed with the --listen/-l flag (or config via environment var).
The flag argument must be either a full address with port, such as
"192.168.0.2:6001", or just the port preceded by a colon, such as ":6001".

If a token secret is not given, one will be automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as
soon as the server shuts down. This is suitable for testing, but must be
given via either CLI flags or environment variable if running in
production.

The flags are:

	-v, --version
		Give the current version of parattice-server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable PARATTICE_LISTEN_ADDRESS, and if that is not given, will
		default to localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing bearer tokens. If there are
		less than 32 bytes in the secret, it will be repeated until it is.
		The maximum size is 64 bytes. If not given, will default to the
		value of environment variable PARATTICE_TOKEN_SECRET. If no secret
		is specified or an empty secret is given, a random secret will be
		automatically generated. Note that any tokens issued with a random
		secret will become invalid as soon as the server shuts down.

	--admin-key ADMIN_KEY
		Set the admin API key that must be presented at POST
		/api/v1/auth/token to obtain a bearer token usable on dictionary
		write endpoints. If not given, will default to the value of
		environment variable PARATTICE_ADMIN_KEY. If no key is given, a
		random one is generated and printed to the log exactly once.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the
		following: inmem, sqlite. inmem has no further params. sqlite needs
		the path to the data directory, such as sqlite:path/to/db_dir. If
		not given, will default to the value of environment variable
		PARATTICE_DATABASE. If no DB driver is specified or an empty one is
		given, an in-memory database is automatically selected.
*/
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dekarrin/parattice/internal/version"
	"github.com/dekarrin/parattice/server"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvListen   = "PARATTICE_LISTEN_ADDRESS"
	EnvSecret   = "PARATTICE_TOKEN_SECRET"
	EnvDB       = "PARATTICE_DATABASE"
	EnvAdminKey = "PARATTICE_ADMIN_KEY"
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of parattice-server and then exit.")
	flagListen   = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret   = pflag.StringP("secret", "s", "", "Use the given secret for token signing.")
	flagDB       = pflag.String("db", "", "Use the given DB connection string.")
	flagAdminKey = pflag.String("admin-key", "", "Set the admin API key.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("parattice-server v%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	listenAddr := envOrFlag(EnvListen, flagListen, "listen")
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	}

	dbConnStr := envOrFlag(EnvDB, flagDB, "db")
	if dbConnStr == "" {
		dbConnStr = "inmem"
	}
	dbCfg, err := server.ParseDBConnString(dbConnStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	tokSecret := tokenSecret(envOrFlag(EnvSecret, flagSecret, "secret"))

	adminKey := envOrFlag(EnvAdminKey, flagAdminKey, "admin-key")
	if adminKey == "" {
		adminKey = generateAdminKey()
		log.Printf("WARN  Using generated admin key %q; set --admin-key to use a fixed one", adminKey)
	}
	keyHash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("FATAL could not hash admin key: %s", err.Error())
	}

	cfg := server.Config{
		TokenSecret:  tokSecret,
		AdminKeyHash: string(keyHash),
		DB:           dbCfg,
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer srv.Close()

	log.Printf("INFO  Starting parattice-server %s on %s...", version.Current, listenAddr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.ListenAndServe(ctx, listenAddr); err != nil {
		log.Fatalf("FATAL server error: %s", err.Error())
	}
}

func envOrFlag(envVar string, flagVal *string, flagName string) string {
	if pflag.Lookup(flagName).Changed {
		return *flagVal
	}
	v := os.Getenv(envVar)
	if v != "" {
		return v
	}
	return *flagVal
}

func tokenSecret(given string) []byte {
	if given == "" {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("FATAL could not generate token secret: %s", err.Error())
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return secret
	}

	secret := []byte(given)
	for len(secret) < 32 {
		secret = append(secret, secret...)
	}
	if len(secret) > 64 {
		log.Fatalf("FATAL token secret is %d bytes, but it must be <= 64 bytes", len(secret))
	}
	return secret
}

func generateAdminKey() string {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("FATAL could not generate admin key: %s", err.Error())
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(raw), "=")
}
