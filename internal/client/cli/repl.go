package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Find(ctx context.Context) error
	More(ctx context.Context) error
	Show(ctx context.Context) error
	Debts(ctx context.Context) error
	AddDebt(ctx context.Context) error
	EditDebt(ctx context.Context) error
	SettleDebt(ctx context.Context) error
	DeleteDebt(ctx context.Context) error
	Balance(ctx context.Context) error
	Calls(ctx context.Context) error
	AddCall(ctx context.Context) error
	EditCall(ctx context.Context) error
	Convos(ctx context.Context) error
	AddConvo(ctx context.Context) error
	EditConvo(ctx context.Context) error
	Rels(ctx context.Context) error
	AddRel(ctx context.Context) error
	EditRel(ctx context.Context) error
	Moods(ctx context.Context) error
	AddMood(ctx context.Context) error
	EditMood(ctx context.Context) error
	Sync(ctx context.Context) error
	Queue(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Monica CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("monicli %s> ", statusFn()))
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
				printlnFn("Contacts: (f)ind, more, show")
				printlnFn("Debts:    debts, adddebt, editdebt, settledebt, deldebt, balance")
				printlnFn("Calls:    calls, addcall, editcall")
				printlnFn("Convos:   convos, addconvo, editconvo")
				printlnFn("Rels:     rels, addrel, editrel")
				printlnFn("Moods:    moods, addmood, editmood")
				printlnFn("Other:    sync, queue, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "f", "find":
			_ = a.Find(ctx)

		case "more":
			_ = a.More(ctx)

		case "show":
			_ = a.Show(ctx)

		case "debts":
			_ = a.Debts(ctx)

		case "adddebt":
			_ = a.AddDebt(ctx)

		case "editdebt":
			_ = a.EditDebt(ctx)

		case "settledebt":
			_ = a.SettleDebt(ctx)

		case "deldebt":
			_ = a.DeleteDebt(ctx)

		case "balance":
			_ = a.Balance(ctx)

		case "calls":
			_ = a.Calls(ctx)

		case "addcall":
			_ = a.AddCall(ctx)

		case "editcall":
			_ = a.EditCall(ctx)

		case "convos":
			_ = a.Convos(ctx)

		case "addconvo":
			_ = a.AddConvo(ctx)

		case "editconvo":
			_ = a.EditConvo(ctx)

		case "rels":
			_ = a.Rels(ctx)

		case "addrel":
			_ = a.AddRel(ctx)

		case "editrel":
			_ = a.EditRel(ctx)

		case "moods":
			_ = a.Moods(ctx)

		case "addmood":
			_ = a.AddMood(ctx)

		case "editmood":
			_ = a.EditMood(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "queue":
			_ = a.Queue(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
