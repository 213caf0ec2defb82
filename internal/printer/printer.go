// Package printer renders exported files to an output stream in one
// of several formats. A single Printer is safe for concurrent use by
// walker workers.
package printer

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Mode selects the output format.
type Mode int

const (
	// ModePlain writes each file under a colored header banner.
	ModePlain Mode = iota
	// ModeJSON writes a single JSON document with base64 content.
	ModeJSON
	// ModeMarkdown writes each file as a fenced code block.
	ModeMarkdown
)

type jsonEntry struct {
	Path    string `json:"path"`
	Size    int    `json:"size"`
	Content string `json:"content"` // base64
}

// Printer serializes exported files to out.
type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	mode    Mode
	count   int
	entries []jsonEntry
}

// New returns a Printer writing to out in the given mode.
func New(out io.Writer, mode Mode) *Printer {
	return &Printer{out: out, mode: mode}
}

// PrintFile renders one file. In JSON mode the entry is buffered until
// Finalize so the document stays well formed.
func (p *Printer) PrintFile(relPath string, content []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++

	switch p.mode {
	case ModeJSON:
		p.entries = append(p.entries, jsonEntry{
			Path:    relPath,
			Size:    len(content),
			Content: base64.StdEncoding.EncodeToString(content),
		})
		return nil
	case ModeMarkdown:
		if _, err := fmt.Fprintf(p.out, "## %s\n\n```\n", relPath); err != nil {
			return err
		}
		if _, err := p.out.Write(content); err != nil {
			return err
		}
		if len(content) > 0 && content[len(content)-1] != '\n' {
			if _, err := io.WriteString(p.out, "\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(p.out, "```\n\n")
		return err
	default:
		header := color.CyanString("===== %s =====", relPath)
		if _, err := fmt.Fprintf(p.out, "%s\n", header); err != nil {
			return err
		}
		if _, err := p.out.Write(content); err != nil {
			return err
		}
		_, err := io.WriteString(p.out, "\n\n")
		return err
	}
}

// Finalize flushes any buffered output. It must be called exactly once
// after the walk completes.
func (p *Printer) Finalize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != ModeJSON {
		return nil
	}
	doc := struct {
		Files []jsonEntry `json:"files"`
		Count int         `json:"count"`
	}{Files: p.entries, Count: p.count}
	if doc.Files == nil {
		doc.Files = []jsonEntry{}
	}
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Count reports how many files were printed.
func (p *Printer) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}
