package main

import (
	"errors"
	"io"
	"strings"

	"github.com/stepcontest/contest-admin/internal/console"
	domainauth "github.com/stepcontest/contest-admin/internal/domain/auth"
)

// Commands that make sense without a session.
var anonymousCommands = map[string]bool{
	"login":  true,
	"logout": true,
	"status": true,
}

// Default listing for each panel, as the dashboard shows when a panel opens.
var panelCommands = map[console.Panel][]string{
	console.PanelEvents:        {"contests", "list"},
	console.PanelReward:        {"claims", "list", "--status", "PENDING"},
	console.PanelServiceAgents: {"agents", "list"},
	console.PanelSystem:        {"config", "get"},
}

var panelHints = map[console.Panel]string{
	console.PanelRanking: "ranking CONTEST_ID",
	console.PanelUsers:   "users get ID",
}

type shell struct {
	cc *commandContext
}

func runShell(cc *commandContext, args []string) error {
	if len(args) > 0 {
		return usagef("shell takes no arguments")
	}
	sh := &shell{cc: cc}
	_ = writeln(cc.Stdout, "contest-admin shell. Type `help` for commands and `exit` to leave.")
	if cc.App.Console.View() == console.ViewLogin {
		_ = writeln(cc.Stdout, "Not signed in. Run `login` first.")
	}

	for {
		if cc.Ctx.Err() != nil {
			return nil
		}
		sh.flushNotice()
		if err := writef(cc.Stdout, "%s", sh.prompt()); err != nil {
			return err
		}

		line, err := cc.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				_ = writeln(cc.Stdout)
				return nil
			}
			return err
		}

		// Any keystroke counts as activity. A window that already elapsed
		// is not revived; the notice below tells the operator.
		cc.App.Session.Touch(domainauth.ActivityKeyPress)
		sh.flushNotice()

		fields, err := splitArgs(line)
		if err != nil {
			reportError(cc.Stderr, usagef("%v", err))
			continue
		}
		if len(fields) == 0 {
			continue
		}
		done, err := sh.exec(fields)
		if done {
			return nil
		}
		if err != nil {
			reportError(cc.Stderr, err)
		}
	}
}

func (sh *shell) prompt() string {
	app := sh.cc.App
	if app.Console.View() == console.ViewLogin {
		return "contest-admin (signed out)> "
	}
	return "contest-admin [" + app.Console.Panel().String() + "]> "
}

func (sh *shell) flushNotice() {
	if notice := sh.cc.App.Console.TakeNotice(); notice != "" {
		_ = writef(sh.cc.Stderr, "! %s\n", notice)
	}
}

// exec runs one shell line. done reports that the operator asked to leave.
func (sh *shell) exec(fields []string) (done bool, err error) {
	cc := sh.cc
	name, rest := fields[0], fields[1:]

	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		return false, sh.help()
	case "panels":
		return false, sh.panels()
	case "panel":
		if len(rest) != 1 {
			return false, usagef("panel NAME")
		}
		p, ok := console.ParsePanel(rest[0])
		if !ok {
			return false, usagef("unknown panel %q (see `panels`)", rest[0])
		}
		if err := cc.App.Console.Select(p); err != nil {
			return false, err
		}
		return false, sh.show()
	case "show":
		return false, sh.show()
	case "shell":
		return false, usagef("already in the shell")
	}

	cmd, ok := commands()[name]
	if !ok {
		return false, usagef("unknown command %q (see `help`)", name)
	}
	if !anonymousCommands[name] && cc.App.Console.View() == console.ViewLogin {
		return false, errors.New("not signed in; run `login` first")
	}
	return false, cmd.run(cc, rest)
}

// show runs the default listing of the active panel.
func (sh *shell) show() error {
	cc := sh.cc
	if cc.App.Console.View() == console.ViewLogin {
		return errors.New("not signed in; run `login` first")
	}
	p := cc.App.Console.Panel()
	if hint, ok := panelHints[p]; ok {
		return writef(cc.Stdout, "%s: use `%s`.\n", p.Label(), hint)
	}
	args, ok := panelCommands[p]
	if !ok {
		return nil
	}
	_ = writef(cc.Stdout, "%s\n", p.Label())
	_, err := sh.exec(args)
	return err
}

func (sh *shell) panels() error {
	active := sh.cc.App.Console.Panel()
	for _, p := range console.Panels() {
		marker := " "
		if p == active {
			marker = "*"
		}
		if err := writef(sh.cc.Stdout, "%s %-8s %s\n", marker, p.String(), p.Label()); err != nil {
			return err
		}
	}
	return nil
}

func (sh *shell) help() error {
	w := sh.cc.Stdout
	for _, c := range sortedCommands() {
		if c.name == "shell" {
			continue
		}
		if err := writef(w, "  %-14s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return writef(w, "  %-14s %s\n  %-14s %s\n  %-14s %s\n  %-14s %s\n",
		"panels", "List dashboard panels",
		"panel NAME", "Switch panel and show its listing",
		"show", "Show the active panel's listing",
		"exit", "Leave the shell")
}

// splitArgs splits a shell line into words. Single quotes keep everything
// literal; double quotes allow backslash escapes.
func splitArgs(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			inWord = true
		case quote == '"':
			if r == '"' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}
