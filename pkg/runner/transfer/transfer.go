// Package transfer provides the runner logic for exporting and importing the
// whole journal as JSON or YAML.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/entry"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Export writes every item to Out, or color.Output when Out is nil.
type Export struct {
	Format string
	Out    io.Writer

	Service *app.Service
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	items, err := n.Service.Items(ctx)
	if err != nil {
		return err
	}
	data, err := Encode(items, n.Format)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, err = out.Write(data)
	return err
}

// Import replaces the journal with the items read from Path. The format is
// taken from Format, or from the file extension when Format is empty.
type Import struct {
	Path   string
	Format string
	In     io.Reader

	Service *app.Service
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	format := n.Format
	if format == "" {
		format = formatFor(n.Path)
	}

	var (
		data []byte
		err  error
	)
	switch {
	case n.In != nil:
		data, err = io.ReadAll(n.In)
	case n.Path == "" || n.Path == "-":
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = os.ReadFile(n.Path)
	}
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}

	items, err := Decode(data, format)
	if err != nil {
		return err
	}
	repairs, err := n.Service.Import(ctx, items)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "imported %d items", len(items))
	if len(repairs) > 0 {
		_, _ = fmt.Fprintf(color.Output, ", %d repairs", len(repairs))
	}
	_, _ = fmt.Fprintln(color.Output)
	return nil
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode renders items in format.
func Encode(items []*entry.Item, format string) ([]byte, error) {
	if items == nil {
		items = []*entry.Item{}
	}
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		b, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(b, '\n'), nil
	}
	return nil, fmt.Errorf("unknown format %q (use %s or %s)", format, FormatJSON, FormatYAML)
}

// Decode parses items in format.
func Decode(data []byte, format string) ([]*entry.Item, error) {
	var items []*entry.Item
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q (use %s or %s)", format, FormatJSON, FormatYAML)
	}
	return items, nil
}
