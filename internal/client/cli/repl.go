package cli

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/edgebet/edgebet-cli/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	SessionState() session.State
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ClientNew(ctx context.Context) error
	ClientSwitch(ctx context.Context, args []string) error
	ClientEdit(ctx context.Context) error
	Edges(ctx context.Context, args []string) error
	Factors(ctx context.Context, args []string) error
	Ratings(ctx context.Context, args []string) error
	Parlay(ctx context.Context) error
	Tracker(ctx context.Context, args []string) error
	Weather(ctx context.Context, args []string) error
	Live(ctx context.Context, args []string) error
}

// command couples a handler with its access gate. A nil gate means the
// command is open to everyone.
type command struct {
	gate *Gate
	run  func(ctx context.Context, a execIface, args []string) error
	help string
}

var (
	memberGate = &Gate{RequireAuth: true, RedirectTo: "login"}
	guestGate  = &Gate{RequireAuth: false, RedirectTo: "whoami"}
)

func commandTable() map[string]command {
	return map[string]command{
		"login": {gate: guestGate, help: "sign in with email and password",
			run: func(ctx context.Context, a execIface, _ []string) error { return a.Login(ctx) }},
		"logout": {gate: memberGate, help: "sign out and wipe local credentials",
			run: func(ctx context.Context, a execIface, _ []string) error { return a.Logout(ctx) }},
		"whoami": {help: "show the current user and client",
			run: func(ctx context.Context, a execIface, _ []string) error { return a.WhoAmI(ctx) }},
		"clientnew": {gate: memberGate, help: "create a betting client profile",
			run: func(ctx context.Context, a execIface, _ []string) error { return a.ClientNew(ctx) }},
		"clientswitch": {gate: memberGate, help: "switch the active client: clientswitch <id>",
			run: func(ctx context.Context, a execIface, args []string) error { return a.ClientSwitch(ctx, args) }},
		"clientedit": {gate: memberGate, help: "edit the active client",
			run: func(ctx context.Context, a execIface, _ []string) error { return a.ClientEdit(ctx) }},
		"edges": {gate: memberGate, help: "show the edge board: edges [league] [market]",
			run: func(ctx context.Context, a execIface, args []string) error { return a.Edges(ctx, args) }},
		"factors": {gate: memberGate, help: "factor breakdown: factors <edge-id>",
			run: func(ctx context.Context, a execIface, args []string) error { return a.Factors(ctx, args) }},
		"ratings": {gate: memberGate, help: "power ratings: ratings [league]",
			run: func(ctx context.Context, a execIface, args []string) error { return a.Ratings(ctx, args) }},
		"parlay": {gate: memberGate, help: "evaluate a parlay interactively",
			run: func(ctx context.Context, a execIface, _ []string) error { return a.Parlay(ctx) }},
		"tracker": {gate: memberGate, help: "pick tracker summary: tracker [days]",
			run: func(ctx context.Context, a execIface, args []string) error { return a.Tracker(ctx, args) }},
		"weather": {gate: memberGate, help: "weather impact: weather <game-id>",
			run: func(ctx context.Context, a execIface, args []string) error { return a.Weather(ctx, args) }},
		"live": {gate: memberGate, help: "stream live edge updates: live [league...]",
			run: func(ctx context.Context, a execIface, args []string) error { return a.Live(ctx, args) }},
	}
}

// dispatch runs a single command line through its gate. Handler errors are
// reported inline; the loop itself never fails.
func dispatch(ctx context.Context, a execIface, commands map[string]command, name string, args []string) {
	cmd, ok := commands[name]
	if !ok {
		printlnFn("Unknown command:", name)
		return
	}

	if cmd.gate != nil {
		switch cmd.gate.Decide(a.SessionState()) {
		case VerdictWait:
			printlnFn("Session is still loading, try again in a moment.")
			return
		case VerdictRedirect:
			printlnFn(fmt.Sprintf("Not available right now; try '%s'.", cmd.gate.RedirectTo))
			return
		}
	}

	if err := cmd.run(ctx, a, args); err != nil {
		printlnFn("Error:", err.Error())
	}
}

func helpText(a execIface, commands map[string]command) string {
	st := a.SessionState()

	names := make([]string, 0, len(commands))
	for name, cmd := range commands {
		if cmd.gate != nil && cmd.gate.Decide(st) != VerdictAllow {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	names = append(names, "help", "exit")
	return "Available commands: " + strings.Join(names, ", ")
}

// runREPL starts the read–eval–print loop for the EdgeBet terminal client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches through the command table; each command's gate is
// applied against the current session snapshot first. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	commands := commandTable()

	for {
		printlnFn(fmt.Sprintf("eb %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printlnFn(helpText(a, commands))
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			dispatch(ctx, a, commands, parts[0], parts[1:])
		}
	}
}
