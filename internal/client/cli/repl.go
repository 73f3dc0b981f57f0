package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, name string) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// runREPL reads commands from reader until EOF or exit. Command errors are
// printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "dogs %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, rest := parts[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), parts[0]))

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (l)ist [name], show <id>, add, edit <id>, delete <id>, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, (l)ist [name], show <id>, add, edit <id>, delete <id>, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list":
			cmdErr = a.List(ctx, rest)

		case "show":
			cmdErr = withID(rest, func(id string) error { return a.Show(ctx, id) })

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			cmdErr = withID(rest, func(id string) error { return a.Edit(ctx, id) })

		case "delete":
			cmdErr = withID(rest, func(id string) error { return a.Delete(ctx, id) })

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}

func withID(arg string, fn func(id string) error) error {
	if arg == "" {
		return errMissingID
	}
	return fn(arg)
}
