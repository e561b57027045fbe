// Package dump prints the content registry for manual inspection.
// Nothing here modifies the registry.
package dump

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/udisondev/bronzestone/internal/content"
)

// Section selects one traversal.
type Section string

const (
	SectionRecipes Section = "recipedump"
	SectionItems   Section = "itemdump"
	SectionPieces  Section = "piecedump"
)

// AllSections lists every section in dump order.
var AllSections = []Section{SectionRecipes, SectionItems, SectionPieces}

// ParseSection validates a section name.
func ParseSection(s string) (Section, error) {
	for _, sec := range AllSections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown dump section %q", s)
}

// Lines returns the lines of one section.
func Lines(reg *content.Registry, sec Section) []string {
	switch sec {
	case SectionRecipes:
		return Recipes(reg)
	case SectionItems:
		return Items(reg)
	case SectionPieces:
		return BuildMenus(reg)
	default:
		return nil
	}
}

// Recipes lists crafting recipes: "name@station: Res:amount, ...".
func Recipes(reg *content.Registry) []string {
	out := make([]string, 0, len(reg.Recipes()))
	for _, rc := range reg.Recipes() {
		out = append(out, fmt.Sprintf("%s@%s: %s", rc.Name, rc.Station, requirements(reg, rc.Requirements)))
	}
	return out
}

// Items lists every item with its kind and build menu.
func Items(reg *content.Registry) []string {
	ids := reg.Items()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		it := reg.Item(id)
		line := fmt.Sprintf("%s kind:%s", it.Name, it.Kind)
		if m := reg.Menu(it.BuildMenu); m != nil {
			line += " menu:" + m.Name
		}
		out = append(out, line)
	}
	return out
}

// BuildMenus lists every item that can build things, followed by one
// indented line per piece with its requirements.
func BuildMenus(reg *content.Registry) []string {
	var out []string
	for _, id := range reg.Items() {
		it := reg.Item(id)
		menu := reg.Menu(it.BuildMenu)
		if menu == nil {
			continue
		}

		names := make([]string, 0, len(menu.Pieces))
		for _, pid := range menu.Pieces {
			names = append(names, reg.Piece(pid).Name)
		}
		out = append(out, fmt.Sprintf("%s %s %d => %s", it.Name, menu.Name, len(menu.Pieces), strings.Join(names, ",")))

		for _, pid := range menu.Pieces {
			p := reg.Piece(pid)
			out = append(out, fmt.Sprintf("    %s reqs: %s", p.Name, requirements(reg, p.Requirements)))
		}
	}
	return out
}

func requirements(reg *content.Registry, reqs []content.Requirement) string {
	if reqs == nil {
		return "<nil>"
	}
	parts := make([]string, len(reqs))
	for i, r := range reqs {
		name := reg.ItemName(r.Resource)
		if name == "" {
			name = "[null]"
		}
		parts[i] = fmt.Sprintf("%s:%d", name, r.Amount)
	}
	return strings.Join(parts, ", ")
}

// ToLogger emits the selected sections at debug level.
func ToLogger(log *slog.Logger, reg *content.Registry, sections ...Section) {
	if len(sections) == 0 {
		sections = AllSections
	}
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, sec := range sections {
		for _, line := range Lines(reg, sec) {
			log.Debug(string(sec), "entry", line)
		}
	}
}

// Write writes the selected sections as plain text, one "[section] line"
// per entry.
func Write(w io.Writer, reg *content.Registry, sections ...Section) error {
	if len(sections) == 0 {
		sections = AllSections
	}
	bw := bufio.NewWriter(w)
	for _, sec := range sections {
		for _, line := range Lines(reg, sec) {
			if _, err := fmt.Fprintf(bw, "[%s] %s\n", sec, line); err != nil {
				return fmt.Errorf("writing %s: %w", sec, err)
			}
		}
	}
	return bw.Flush()
}

// ToFile writes the selected sections zstd-compressed to path.
func ToFile(path string, reg *content.Registry, sections ...Section) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dump %s: %w", path, err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if err := Write(enc, reg, sections...); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}
	return f.Close()
}

// ReadFile decompresses a dump written by ToFile.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump %s: %w", path, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer dec.Close()

	out, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("reading dump %s: %w", path, err)
	}
	return out, nil
}
