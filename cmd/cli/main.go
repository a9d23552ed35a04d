// File: cmd/cli/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"uplio_backend/internal/client"
	"uplio_backend/internal/platform/logger"
	"uplio_backend/internal/session"
)

const defaultServerURL = "http://localhost:3000"

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	serverURL := os.Getenv("UPLIO_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	store, err := openStore()
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	api := client.New(serverURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "register":
		err = runRegister(ctx, api, store, os.Args[2:])
	case "accounts":
		err = runAccounts(store)
	case "switch":
		err = runSwitch(store, os.Args[2:])
	case "remove":
		err = runRemove(store, os.Args[2:])
	case "whoami":
		err = runWhoami(store)
	case "profile":
		err = runProfile(ctx, api, store)
	case "users":
		err = runUsers(ctx, api)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: uplio <command> [flags]

Commands:
  register   Register or log in (-email/-password or -credential)
  accounts   List accounts cached on this device
  switch     Make a cached account active (-id)
  remove     Drop a cached account (-id)
  whoami     Show the active account
  profile    Fetch the active account's profile
  users      List all registered users

The server URL defaults to `+defaultServerURL+` and can be overridden
with UPLIO_SERVER_URL.`)
}

func openStore() (*session.Store, error) {
	path := os.Getenv("UPLIO_CACHE_PATH")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".uplio", "accounts.json")
	}
	return session.Open(path, logger.NewDefaultLogger())
}

func runRegister(ctx context.Context, api *client.Client, store *session.Store, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	credential := fs.String("credential", "", "Google ID token")
	fs.Parse(args)

	var (
		resp *client.AuthResponse
		err  error
	)
	if *credential != "" {
		resp, err = api.RegisterWithGoogle(ctx, *credential)
	} else {
		resp, err = api.Register(ctx, *email, *password)
	}
	if err != nil {
		return err
	}

	if err := store.UpsertAccount(session.Account{
		ID:      resp.User.ID,
		Email:   resp.User.Email,
		Name:    resp.User.Name,
		Picture: resp.User.Picture,
		Token:   resp.Token,
	}); err != nil {
		return err
	}

	if resp.Note == "existing" {
		fmt.Printf("Logged in as %s (%s)\n", resp.User.Email, resp.User.ID)
	} else {
		fmt.Printf("Registered %s (%s)\n", resp.User.Email, resp.User.ID)
	}
	return nil
}

func runAccounts(store *session.Store) error {
	accounts := store.Accounts()
	if len(accounts) == 0 {
		fmt.Println("No accounts cached on this device.")
		return nil
	}
	active, hasActive := store.ActiveAccount()
	for _, a := range accounts {
		marker := " "
		if hasActive && a.ID == active.ID {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %s\n", marker, a.ID, a.Email, a.Name)
	}
	return nil
}

func runSwitch(store *session.Store, args []string) error {
	fs := flag.NewFlagSet("switch", flag.ExitOnError)
	id := fs.String("id", "", "account id to activate")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	found, err := store.SwitchActive(*id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no cached account with id %q", *id)
	}
	fmt.Printf("Active account is now %s\n", *id)
	return nil
}

func runRemove(store *session.Store, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "account id to remove")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := store.RemoveAccount(*id); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", *id)
	return nil
}

func runWhoami(store *session.Store) error {
	active, ok := store.ActiveAccount()
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s  %s  %s\n", active.ID, active.Email, active.Name)
	return nil
}

func runProfile(ctx context.Context, api *client.Client, store *session.Store) error {
	active, ok := store.ActiveAccount()
	if !ok {
		return fmt.Errorf("not logged in; run register first")
	}

	prof, err := api.GetProfile(ctx, active.Token)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render profile: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func runUsers(ctx context.Context, api *client.Client) error {
	users, err := api.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%s  %s  %s  (%s)\n", u.ID, u.Email, u.Name, u.Provider)
	}
	return nil
}
