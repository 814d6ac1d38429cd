package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/hongminglow/safeguard/internal/client"
)

const usage = `usage: safeguard [-api URL] [-session FILE] <command> [flags]

commands:
  register -name NAME -email EMAIL [-password PASSWORD]
  login    -email EMAIL [-password PASSWORD]
  logout
  status`

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("safeguard", flag.ContinueOnError)
	apiURL := global.String("api", envOr("SAFEGUARD_API_URL", "http://localhost:5000"), "API base URL")
	sessionPath := global.String("session", envOr("SAFEGUARD_SESSION_FILE", defaultSessionPath()), "session file")
	global.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	session, err := client.OpenSession(*sessionPath)
	if err != nil {
		return err
	}
	api := client.New(*apiURL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "register":
		return register(ctx, api, rest)
	case "login":
		return login(ctx, api, session, rest)
	case "logout":
		if err := session.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		printNav(false)
		return nil
	case "status":
		id, ok := session.Identity()
		if ok {
			fmt.Printf("Signed in as %s <%s>\n", id.Name, id.Email)
		} else {
			fmt.Println("Not signed in.")
		}
		printNav(ok)
		return nil
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func register(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw, err := passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	msg, err := api.Register(ctx, *name, *email, pw)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func login(ctx context.Context, api *client.Client, session *client.Session, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw, err := passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	res, err := api.Login(ctx, *email, pw)
	if err != nil {
		return err
	}
	session.Clear()
	session.Remember(res)
	if err := session.Save(); err != nil {
		return err
	}
	fmt.Printf("Welcome, %s.\n", res.Name)
	printNav(true)
	return nil
}

func passwordOrPrompt(password string) (string, error) {
	if password != "" {
		return password, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("-password is required when stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func printNav(loggedIn bool) {
	labels := make([]string, 0, 8)
	for _, l := range client.Navigation(loggedIn) {
		labels = append(labels, fmt.Sprintf("%s (%s)", l.Label, l.Path))
	}
	fmt.Println("Menu:", strings.Join(labels, " | "))
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".safeguard-session.json"
	}
	return filepath.Join(home, ".safeguard", "session.json")
}
