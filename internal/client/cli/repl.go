package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/dmitrijs2005/nftmarket/internal/client/view"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// commandContext derives the context a single command runs with. Ctrl-C
// cancels the running command only.
var commandContext = func(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Upload(ctx context.Context, args []string) error
	Create(ctx context.Context) error
	Gallery(ctx context.Context) error
	Market(ctx context.Context) error
	Owned(ctx context.Context) error
	Buy(ctx context.Context, args []string) error
	Pending(ctx context.Context) error
	Relist(ctx context.Context, args []string) error
	Remote(ctx context.Context, args []string) error
}

const helpText = "Available commands: upload <path>, create, gallery, market, buy <id>, owned, pending, relist <id>, remote [market], exit"

// runREPL reads lines from reader, parses the first token as the command
// and dispatches to a. Command errors are printed and the loop goes on.
// The loop exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nft %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		cmdCtx, stop := commandContext(ctx)
		err = dispatch(cmdCtx, a, cmd, args)
		stop()

		if err != nil {
			printlnFn(view.FormatError(err.Error()))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		printlnFn(helpText)
		return nil
	case "upload":
		return a.Upload(ctx, args)
	case "create":
		return a.Create(ctx)
	case "gallery", "g":
		return a.Gallery(ctx)
	case "market", "m":
		return a.Market(ctx)
	case "owned":
		return a.Owned(ctx)
	case "buy":
		return a.Buy(ctx, args)
	case "pending":
		return a.Pending(ctx)
	case "relist":
		return a.Relist(ctx, args)
	case "remote":
		return a.Remote(ctx, args)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
