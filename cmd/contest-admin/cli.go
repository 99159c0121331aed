package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/stepcontest/contest-admin/internal/render"
)

type subcommand struct {
	usage       string
	description string
	run         commandFn
}

// dispatch routes "group sub [args]" to the matching subcommand.
func dispatch(group string, subs map[string]subcommand) commandFn {
	return func(cc *commandContext, args []string) error {
		if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
			if err := printSubcommands(cc.Stdout, group, subs); err != nil {
				return err
			}
			if len(args) == 0 {
				return usagef("%s requires a subcommand", group)
			}
			return nil
		}
		sub, ok := subs[args[0]]
		if !ok {
			return usagef("unknown %s subcommand %q", group, args[0])
		}
		return sub.run(cc, args[1:])
	}
}

func printSubcommands(w io.Writer, group string, subs map[string]subcommand) error {
	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	sort.Strings(names)
	if err := writef(w, "Subcommands of %s:\n", group); err != nil {
		return err
	}
	for _, name := range names {
		if err := writef(w, "  %-40s %s\n", group+" "+subs[name].usage, subs[name].description); err != nil {
			return err
		}
	}
	return nil
}

func newFlagSet(name string, cc *commandContext) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(cc.Stderr)
	fs.SortFlags = false
	return fs
}

// parseFlags parses args and wraps flag errors as usage errors.
func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usagef("%s: %v", fs.Name(), err)
	}
	return nil
}

type outputFlags struct {
	Format  string
	Query   string
	NoColor bool
}

func (o *outputFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Format, "output", "o", "table", "Output format: table, json or yaml")
	fs.StringVar(&o.Query, "query", "", "JMESPath expression applied to the result")
	fs.BoolVar(&o.NoColor, "no-color", false, "Disable styled table headers")
}

func (o *outputFlags) render(cc *commandContext, v any) error {
	format, err := render.ParseFormat(o.Format)
	if err != nil {
		return usagef("%v", err)
	}
	r, err := render.New(cc.Stdout, render.Options{Format: format, Query: o.Query, NoColor: o.NoColor})
	if err != nil {
		return usagef("%v", err)
	}
	return r.Render(v)
}

type payloadFlags struct {
	Data string
	File string
}

func (p *payloadFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&p.Data, "data", "", "JSON request body")
	fs.StringVar(&p.File, "file", "", "Read the JSON request body from a file (- for stdin)")
}

// decode reads the request body and decodes it into dst, rejecting unknown fields.
func (p *payloadFlags) decode(cc *commandContext, dst any) error {
	var raw []byte
	switch {
	case p.Data != "" && p.File != "":
		return usagef("use either --data or --file, not both")
	case p.Data != "":
		raw = []byte(p.Data)
	case p.File == "-":
		b, err := io.ReadAll(cc.in)
		if err != nil {
			return fmt.Errorf("read body from stdin: %w", err)
		}
		raw = b
	case p.File != "":
		b, err := os.ReadFile(p.File)
		if err != nil {
			return fmt.Errorf("read body file: %w", err)
		}
		raw = b
	default:
		return usagef("a JSON body is required (--data or --file)")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return usagef("invalid JSON body: %v", err)
	}
	return nil
}

// positionalID returns the single numeric argument left after flag parsing.
func positionalID(fs *pflag.FlagSet, what string) (int64, error) {
	if fs.NArg() != 1 {
		return 0, usagef("%s requires exactly one %s argument", fs.Name(), what)
	}
	return parseID(fs.Arg(0), what)
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, usagef("%s must be a positive integer, got %q", what, raw)
	}
	return id, nil
}

// parseFilters turns repeated key=value flags into a filter object. Values that
// parse as JSON scalars keep their type; everything else is a string.
func parseFilters(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filters := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, usagef("filter %q must look like key=value", pair)
		}
		var typed any
		if err := json.Unmarshal([]byte(value), &typed); err == nil {
			if _, composite := typed.(map[string]any); !composite {
				if _, list := typed.([]any); !list {
					filters[key] = typed
					continue
				}
			}
		}
		filters[key] = value
	}
	return filters, nil
}

type confirmFlags struct {
	Yes bool
}

func (c *confirmFlags) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.Yes, "yes", "y", false, "Skip confirmation prompt")
}

// confirm asks before a destructive action unless --yes was given.
func (c *confirmFlags) confirm(cc *commandContext, action string) error {
	if c.Yes {
		return nil
	}
	if err := writef(cc.Stdout, "About to %s.\nContinue? [y/N]: ", action); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := cc.readLine()
	if err != nil {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
