// Package cli dispatches the non-interactive subcommands. Everything
// goes through the same collection accessor the TUI uses.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/tudu/internal/model"
	"github.com/idilsaglam/tudu/internal/tui"
	"github.com/idilsaglam/tudu/internal/ui"
	"github.com/idilsaglam/tudu/internal/validate"
)

// Options tune output behavior from root flags.
type Options struct {
	Group   bool          // list grouped by pending/done
	Timeout time.Duration // per-request deadline
	TUI     tui.Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, svc tui.Service, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(svc, opt)

	case "ui":
		if err := tui.Run(svc, opt.TUI); err != nil {
			ui.Fail("ui: " + err.Error())
			return 1
		}
		return 0

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: tudu add <title...>")
			return 2
		}
		return doAdd(svc, opt, strings.Join(a, " "))

	case "done":
		if len(a) != 1 {
			ui.Fail("usage: tudu done <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("done: not a number: " + a[0])
			return 2
		}
		return doToggle(svc, opt, n)

	case "edit":
		if len(a) < 2 {
			ui.Fail("usage: tudu edit <index> <title...>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("edit: not a number: " + a[0])
			return 2
		}
		return doEdit(svc, opt, n, strings.Join(a[1:], " "))

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: tudu rm <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("rm: not a number: " + a[0])
			return 2
		}
		return doRemove(svc, opt, n)

	case "refresh":
		return doRefresh(svc, opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`tudu - todos against a remote store

Usage:
  tudu <subcommand> [args]

Subcommands:
  ui                       Interactive list
  add <title...>           Add a new item (3-20 characters)
  ls                       List items
  done <index>             Toggle completion for item at 1-based index
  edit <index> <title...>  Replace the title of the item at 1-based index
  rm <index>               Remove item at 1-based index
  refresh                  Drop the cached list and refetch

Examples:
  tudu add "Buy milk"
  tudu ls
  tudu done 2
  tudu edit 2 "Buy oat milk"
  tudu rm 3
`)
}

func requestCtx(opt Options) (context.Context, context.CancelFunc) {
	timeout := opt.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// fetchAt resolves a 1-based index against the current listing.
func fetchAt(svc tui.Service, opt Options, userIndex int) (model.Todo, int) {
	ctx, cancel := requestCtx(opt)
	defer cancel()
	todos, err := svc.List(ctx)
	if err != nil {
		ui.Fail("list: " + err.Error())
		return model.Todo{}, 1
	}
	if userIndex < 1 || userIndex > len(todos) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(todos), userIndex))
		fmt.Fprintln(os.Stderr, ui.C(ui.Current().Muted, "Hint: run `tudu ls` to see valid indexes"))
		return model.Todo{}, 2
	}
	return todos[userIndex-1], 0
}

// -------------- subcommand impls ----------------

func doList(svc tui.Service, opt Options) int {
	ctx, cancel := requestCtx(opt)
	defer cancel()
	todos, err := svc.List(ctx)
	if err != nil {
		ui.Fail("list: " + err.Error())
		return 1
	}

	d, p := stats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Todos"),
		ui.C(ui.Current().Success, ui.Current().SymDone), d,
		ui.C(ui.Current().Pending, ui.Current().SymUnchecked), p,
		ui.C(ui.Current().Accent, "Total"), len(todos),
	)

	lines := []string{header, ""}
	if opt.Group {
		lines = append(lines, groupLines(todos)...)
	} else {
		lines = append(lines, flatLines(todos)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `tudu add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func doAdd(svc tui.Service, opt Options, title string) int {
	ctx, cancel := requestCtx(opt)
	defer cancel()
	if _, err := svc.Create(ctx, strings.TrimSpace(title)); err != nil {
		if errors.Is(err, validate.ErrTitleTooShort) || errors.Is(err, validate.ErrTitleTooLong) {
			ui.Fail("add: title " + err.Error())
			return 2
		}
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.OK("added")
	return 0
}

func doToggle(svc tui.Service, opt Options, userIndex int) int {
	todo, code := fetchAt(svc, opt, userIndex)
	if code != 0 {
		return code
	}
	ctx, cancel := requestCtx(opt)
	defer cancel()
	if _, err := svc.Toggle(ctx, todo); err != nil {
		ui.Fail("done: " + err.Error())
		return 1
	}
	ui.OK("toggled")
	return 0
}

func doEdit(svc tui.Service, opt Options, userIndex int, title string) int {
	todo, code := fetchAt(svc, opt, userIndex)
	if code != 0 {
		return code
	}
	todo.Title = strings.TrimSpace(title)
	ctx, cancel := requestCtx(opt)
	defer cancel()
	if _, err := svc.Update(ctx, todo); err != nil {
		if errors.Is(err, validate.ErrTitleTooShort) || errors.Is(err, validate.ErrTitleTooLong) {
			ui.Fail("edit: title " + err.Error())
			return 2
		}
		ui.Fail("edit: " + err.Error())
		return 1
	}
	ui.OK("edited")
	return 0
}

func doRemove(svc tui.Service, opt Options, userIndex int) int {
	todo, code := fetchAt(svc, opt, userIndex)
	if code != 0 {
		return code
	}
	ctx, cancel := requestCtx(opt)
	defer cancel()
	if err := svc.Delete(ctx, todo.ID); err != nil {
		ui.Fail("rm: " + err.Error())
		return 1
	}
	ui.OK("removed")
	return 0
}

func doRefresh(svc tui.Service, opt Options) int {
	svc.Invalidate()
	ctx, cancel := requestCtx(opt)
	defer cancel()
	todos, err := svc.List(ctx)
	if err != nil {
		ui.Fail("refresh: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("refreshed (%d items)", len(todos)))
	return 0
}

// -------------- rendering helpers --------------

func stats(todos []model.Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(todos []model.Todo) []string {
	if len(todos) == 0 {
		return []string{ui.C(ui.Current().Muted, "no items")}
	}
	out := make([]string, 0, len(todos))
	for i, t := range todos {
		idx := fmt.Sprintf("%2d.", i+1)
		box := ui.Current().BoxUnchecked
		color := ui.Current().Muted
		title := t.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		if t.Completed {
			box, color = ui.Current().BoxChecked, ui.Current().Success
			title = ui.Strike(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s  %s",
			ui.C("\033[2m", idx), ui.C(color, box), title,
			ui.C(ui.Current().Muted, ui.ProgressBar(t.Progress, 10))))
	}
	return out
}

func groupLines(todos []model.Todo) []string {
	var pend, done []model.Todo
	for _, t := range todos {
		if t.Completed {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
