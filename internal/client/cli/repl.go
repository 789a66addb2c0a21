package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditName(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the argentctl CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current status (from statusFn) and accepts:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - status         — show session state
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - profile        — fetch and show the profile
//	  - edit           — change first/last name
//	  - whoami         — show decoded credential claims (offline)
//	  - status         — show session state
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bank> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, edit, whoami, status, logout, exit")
			} else {
				printlnFn("Available commands: login, status, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "p", "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditName(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
