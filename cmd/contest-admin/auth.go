package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	domainauth "github.com/stepcontest/contest-admin/internal/domain/auth"
	"github.com/stepcontest/contest-admin/internal/domain/model"
)

type loginOptions struct {
	Username     string
	PasswordFile string
}

func runLogin(cc *commandContext, args []string) error {
	fs := newFlagSet("login", cc)
	var opts loginOptions
	fs.StringVarP(&opts.Username, "username", "u", "", "Administrator username (prompted when omitted)")
	fs.StringVar(&opts.PasswordFile, "password-file", "", "Read the password from a file (- reads one line from stdin)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return usagef("login takes no positional arguments")
	}

	username := strings.TrimSpace(opts.Username)
	if username == "" {
		if err := writef(cc.Stderr, "Username: "); err != nil {
			return err
		}
		line, err := cc.readLine()
		if err != nil {
			return fmt.Errorf("read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	password, err := readPassword(cc, opts.PasswordFile)
	if err != nil {
		return err
	}

	resp, err := cc.App.Services.Auth.Login(cc.Ctx, model.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	cc.App.Console.SignedIn()

	return writef(cc.Stdout, "Signed in as admin #%d. The session ends after %s without activity.\n",
		resp.Admin.ID, humanDuration(cc.App.Session.InactivityTimeout()))
}

// readPassword reads the password from a file, from one stdin line, or from the
// terminal with echo disabled.
func readPassword(cc *commandContext, passwordFile string) (string, error) {
	switch passwordFile {
	case "":
	case "-":
		line, err := cc.readLine()
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return line, nil
	default:
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("read password file: %w", err)
		}
		password := strings.TrimRight(string(data), "\r\n")
		if password == "" {
			return "", usagef("password file %s is empty", passwordFile)
		}
		return password, nil
	}

	f, ok := cc.Stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", usagef("no terminal available for the password prompt (use --password-file)")
	}
	if err := writef(cc.Stderr, "Password: "); err != nil {
		return "", err
	}
	raw, err := term.ReadPassword(int(f.Fd()))
	_ = writeln(cc.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func runLogout(cc *commandContext, args []string) error {
	if len(args) > 0 {
		return usagef("logout takes no arguments")
	}
	if err := cc.App.Services.Auth.Logout(cc.Ctx); err != nil {
		return err
	}
	cc.App.Console.SignedOut()
	return writeln(cc.Stdout, "Signed out.")
}

type statusReport struct {
	State             string     `json:"state"`
	Endpoint          string     `json:"endpoint"`
	Store             string     `json:"store"`
	InactivityTimeout string     `json:"inactivityTimeout"`
	IdleDeadline      *time.Time `json:"idleDeadline,omitempty"`
	TokenFormat       string     `json:"tokenFormat,omitempty"`
	Subject           string     `json:"subject,omitempty"`
	IssuedAt          *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	Expires           string     `json:"expires,omitempty"`
}

func runStatus(cc *commandContext, args []string) error {
	fs := newFlagSet("status", cc)
	var out outputFlags
	out.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	return out.render(cc, buildStatus(cc, time.Now()))
}

func buildStatus(cc *commandContext, now time.Time) statusReport {
	sess := cc.App.Session
	report := statusReport{
		State:             sess.State().String(),
		Endpoint:          cc.App.API.Endpoint(),
		Store:             cc.App.TokenStore.Description,
		InactivityTimeout: humanDuration(sess.InactivityTimeout()),
	}

	token, ok := sess.Token()
	if !ok {
		return report
	}
	if deadline := sess.Deadline(); !deadline.IsZero() {
		report.IdleDeadline = &deadline
	}

	info := domainauth.InspectToken(token)
	report.TokenFormat = string(info.Format)
	report.Subject = info.Subject
	if !info.IssuedAt.IsZero() {
		issued := info.IssuedAt
		report.IssuedAt = &issued
	}
	if !info.ExpiresAt.IsZero() {
		expires := info.ExpiresAt
		report.ExpiresAt = &expires
		report.Expires = humanize.RelTime(expires, now, "ago", "from now")
		if info.Expired(now) {
			report.Expires += " (expired; the server will reject it)"
		}
	}
	return report
}

// humanDuration renders d as "1 hour" or "15 minutes".
func humanDuration(d time.Duration) string {
	var zero time.Time
	return strings.TrimSpace(humanize.RelTime(zero, zero.Add(d), "", ""))
}
