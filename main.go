package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"griddle/app/auth"
	"griddle/app/models"
	"griddle/app/repositories"
	"griddle/app/routes"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const cliVersion = "1.0.0"

// devSecret signs tokens when GRIDDLE_SECRET is unset. Development
// only: anyone who knows it can mint admin tokens.
const devSecret = "griddle-dev-secret"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("griddle version %s\n", cliVersion)
	case "serve":
		serve(os.Args[2:])
	case "init-admin":
		initAdmin(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: griddle <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [-addr :8080] [-db data/badger]
                                 Run the blog API server. The token
                                 signing secret is read from the
                                 GRIDDLE_SECRET environment variable.
  init-admin <username> <password> [-db data/badger]
                                 Create an admin user, or promote the
                                 user if it already exists.
`
	fmt.Println(helpText)
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	return badger.Open(opts)
}

func secret() string {
	if s := os.Getenv("GRIDDLE_SECRET"); s != "" {
		return s
	}
	return devSecret
}

// serve opens the store, wires the router and runs the HTTP server
// until interrupted. The store is closed on shutdown.
func serve(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	dbPath := fs.String("db", "data/badger", "database directory")
	fs.Parse(args)

	log := logrus.New()
	if os.Getenv("GRIDDLE_SECRET") == "" {
		log.Warn("GRIDDLE_SECRET is not set, using the development signing secret")
	}

	db, err := openDB(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	tokens := auth.NewTokenManager(secret())
	router := routes.SetupRoutes(db, tokens, log)

	server := &http.Server{Addr: *addr, Handler: router}

	go func() {
		log.WithField("addr", *addr).Info("starting blog API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

// initAdmin is the out-of-band administrative bootstrap: registration
// through the API always yields a regular user, so the first admin is
// created here.
func initAdmin(args []string) {
	if len(args) < 2 {
		fmt.Println("Error: username and password are required for init-admin")
		os.Exit(1)
	}
	username, password := args[0], args[1]

	fs := flag.NewFlagSet("init-admin", flag.ExitOnError)
	dbPath := fs.String("db", "data/badger", "database directory")
	fs.Parse(args[2:])

	log := logrus.New()

	db, err := openDB(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	userRepo := repositories.NewBadgerUserRepository(db)

	if existing, err := userRepo.GetByUsername(username); err == nil {
		if err := userRepo.SetRole(existing.ID, models.RoleAdmin); err != nil {
			log.WithError(err).Fatal("failed to promote user")
		}
		log.WithField("username", username).Info("existing user promoted to admin")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}
	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := userRepo.Create(user); err != nil {
		log.WithError(err).Fatal("failed to create admin user")
	}
	log.WithField("username", username).Info("admin user created")
}
