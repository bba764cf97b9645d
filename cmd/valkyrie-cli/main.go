// Command valkyrie-cli drives the session orchestrator from a terminal,
// for manual end-to-end testing outside the core.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ernie/valkyrie-client/internal/config"
	"github.com/ernie/valkyrie-client/internal/events"
	"github.com/ernie/valkyrie-client/internal/session"
	"github.com/ernie/valkyrie-client/internal/versions"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	var (
		address    = pflag.StringP("address", "a", "127.0.0.1:6900", "login server address")
		username   = pflag.StringP("username", "u", "", "account username")
		configPath = pflag.StringP("config", "c", "", "path to a YAML settings file (optional)")
		version    = pflag.StringP("packet-version", "p", "20220406", "packet-set version (20120307 or 20220406)")
	)
	pflag.Parse()

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		*version = cfg.PacketVersion
	}

	tag, err := parseVersionTag(*version)
	if err != nil {
		log.Fatalf("%v", err)
	}

	orchestrator, err := session.New(tag)
	if err != nil {
		log.Fatalf("build orchestrator: %v", err)
	}

	password := readPassword()

	if *username == "" {
		log.Fatal("missing -u/--username")
	}

	fmt.Printf("connecting to %s as %s...\n", *address, *username)
	if err := orchestrator.LogIn(*address, *username, password); err != nil {
		log.Fatalf("log in: %v", err)
	}

	pollLoop(orchestrator)
}

func parseVersionTag(s string) (versions.Tag, error) {
	switch s {
	case "20120307":
		return versions.Tag20120307, nil
	case "20220406":
		return versions.Tag20220406, nil
	default:
		return "", fmt.Errorf("unknown packet-set version %q (want 20120307 or 20220406)", s)
	}
}

// readPassword prompts for a password with local echo disabled when
// attached to a real terminal, and falls back to a plain scanned line
// otherwise (piped input, CI, redirected stdin).
func readPassword() string {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Print("password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			log.Fatalf("read password: %v", err)
		}
		return string(raw)
	}
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// pollLoop drives the orchestrator's cooperative poll loop and prints
// every event it surfaces, handing off to an interactive command prompt
// once character selection becomes possible.
func pollLoop(o *session.Orchestrator) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	go commandPrompt(o)

	for now := range ticker.C {
		evs, err := o.Poll(now)
		if err != nil {
			log.Fatalf("poll: %v", err)
		}
		for _, ev := range evs {
			printEvent(ev)
		}
	}
}

func printEvent(ev events.Event) {
	switch e := ev.(type) {
	case *events.LoginServerConnected:
		fmt.Printf("logged in: account %d, %d character servers\n", e.LoginData.AccountID, len(e.CharacterServers))
		for i, s := range e.CharacterServers {
			fmt.Printf("  [%d] %s\n", i, s.Name)
		}
	case *events.CharacterList:
		fmt.Printf("character list: %d characters\n", len(e.Characters))
		for i, c := range e.Characters {
			fmt.Printf("  [%d] %s (lvl %d)\n", i, c.Name, c.BaseLevel)
		}
	case *events.ChatMessage:
		fmt.Printf("[chat] %s\n", e.Text)
	case *events.OverheadMessage:
		fmt.Printf("[say %d] %s\n", e.EntityID, e.Text)
	case *events.Disconnect:
		fmt.Printf("disconnected (%s): %s\n", e.Connection, e.Detail)
	case *events.LoggedOut:
		fmt.Println("logged out")
	default:
		fmt.Printf("event: %T\n", ev)
	}
}

// commandPrompt reads simple line commands from stdin: "server N",
// "char N", "chat <text>", "quit".
func commandPrompt(o *session.Orchestrator) {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "server":
			idx, _ := strconv.Atoi(fields[1])
			if err := o.SelectServer(idx); err != nil {
				fmt.Println("error:", err)
			}
		case "char":
			slot, _ := strconv.Atoi(fields[1])
			if err := o.SelectCharacter(uint8(slot)); err != nil {
				fmt.Println("error:", err)
			}
		case "chat":
			text := strings.TrimPrefix(line, "chat ")
			if err := o.SendChat(strings.TrimSpace(text)); err != nil {
				fmt.Println("error:", err)
			}
		case "quit":
			if err := o.Logout(true); err != nil {
				fmt.Println("error:", err)
			}
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}
