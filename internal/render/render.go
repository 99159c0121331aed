// Package render formats command results as a table, JSON or YAML, optionally
// narrowed by a JMESPath query first.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

const maxCellWidth = 48

// ParseFormat validates a --output value. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Options controls a Renderer.
type Options struct {
	Format Format
	// Query is a JMESPath expression applied to the JSON form of every result.
	Query string
	// NoColor disables header styling even on a color terminal.
	NoColor bool
}

// Renderer writes results to w.
type Renderer struct {
	w     io.Writer
	opts  Options
	query jmespath.JMESPath
	lip   *lipgloss.Renderer
}

// New validates opts and builds a Renderer.
func New(w io.Writer, opts Options) (*Renderer, error) {
	if opts.Format == "" {
		opts.Format = FormatTable
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}

	r := &Renderer{w: w, opts: opts, lip: lipgloss.NewRenderer(w)}
	if opts.NoColor {
		r.lip.SetColorProfile(termenv.Ascii)
	}
	if q := strings.TrimSpace(opts.Query); q != "" {
		compiled, err := jmespath.Compile(q)
		if err != nil {
			return nil, fmt.Errorf("invalid --query: %w", err)
		}
		r.query = compiled
	}
	return r, nil
}

// Render writes v in the configured format.
func (r *Renderer) Render(v any) error {
	doc, err := toDocument(v)
	if err != nil {
		return err
	}
	if r.query != nil {
		doc, err = r.query.Search(doc)
		if err != nil {
			return fmt.Errorf("apply --query: %w", err)
		}
	}

	switch r.opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return r.table(doc)
	}
}

// Message prints a plain line regardless of format, for confirmations such as "deleted".
func (r *Renderer) Message(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format+"\n", args...)
}

// toDocument converts v into the generic JSON shape (maps, slices, float64, string,
// bool, nil) so field names follow the json tags in every format.
func toDocument(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return doc, nil
}

func (r *Renderer) table(doc any) error {
	switch v := doc.(type) {
	case nil:
		return nil
	case []any:
		if len(v) == 0 {
			r.Message("(no results)")
			return nil
		}
		if rows, ok := objects(v); ok {
			headers := columns(rows)
			t := r.newTable(headers)
			for _, row := range rows {
				cells := make([]string, len(headers))
				for i, h := range headers {
					cells[i] = cell(row[h])
				}
				t.Row(cells...)
			}
			return r.write(t)
		}
		for _, item := range v {
			r.Message("%s", cell(item))
		}
		return nil
	case map[string]any:
		keys := sortedKeys(v)
		t := r.newTable([]string{"field", "value"})
		for _, k := range keys {
			t.Row(k, cell(v[k]))
		}
		return r.write(t)
	default:
		r.Message("%s", cell(v))
		return nil
	}
}

func (r *Renderer) newTable(headers []string) *table.Table {
	upper := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(h)
	}
	headerStyle := r.lip.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.lip.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(upper...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func (r *Renderer) write(t *table.Table) error {
	_, err := fmt.Fprintln(r.w, t.String())
	return err
}

func objects(items []any) ([]map[string]any, bool) {
	rows := make([]map[string]any, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, false
		}
		rows = append(rows, m)
	}
	return rows, true
}

// columns returns the union of keys, "id" first and the rest sorted.
func columns(rows []map[string]any) []string {
	seen := map[string]struct{}{}
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		if k != "id" {
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	if _, ok := seen["id"]; ok {
		cols = append([]string{"id"}, cols...)
	}
	return cols
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cell(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		s = "-"
	case string:
		s = x
	case bool:
		s = strconv.FormatBool(x)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(x); err != nil {
			s = fmt.Sprint(x)
		} else {
			s = strings.TrimSpace(buf.String())
		}
	}
	if len([]rune(s)) > maxCellWidth {
		s = string([]rune(s)[:maxCellWidth-1]) + "…"
	}
	return s
}
