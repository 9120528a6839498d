package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

var errNotLoggedIn = errors.New("please log in first")

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Users(ctx context.Context) error
	SetRole(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Docs(ctx context.Context) error
	Doc(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: me, users, setrole <id> <role>, upload <path>, docs, doc <id>, " +
		"status <id> <status> [message], rename <id> <filename>, rm <id>, download <id>, logout, exit"
)

// runREPL reads one command per line and dispatches it to a. Errors are
// printed and the loop continues. It returns on EOF, "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		fmt.Printf("doctrack %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	needsLogin := map[string]func() error{
		"logout":   func() error { return a.Logout(ctx) },
		"me":       func() error { return a.Me(ctx) },
		"users":    func() error { return a.Users(ctx) },
		"setrole":  func() error { return a.SetRole(ctx, args) },
		"upload":   func() error { return a.Upload(ctx, args) },
		"docs":     func() error { return a.Docs(ctx) },
		"l":        func() error { return a.Docs(ctx) },
		"doc":      func() error { return a.Doc(ctx, args) },
		"status":   func() error { return a.Status(ctx, args) },
		"rename":   func() error { return a.Rename(ctx, args) },
		"rm":       func() error { return a.Remove(ctx, args) },
		"download": func() error { return a.Download(ctx, args) },
	}

	fn, ok := needsLogin[cmd]
	if !ok {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	return fn()
}
