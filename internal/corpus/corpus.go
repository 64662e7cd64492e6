// Package corpus reads batches of documents to analyse from JSONL files.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Item is one document in a corpus file:
//
//	{"source": "berita/1", "text": "Dia duduk.", "html": false}
type Item struct {
	Source string `json:"source"`
	Text   string `json:"text"`
	HTML   bool   `json:"html"`
}

// Skipped records a line that could not be decoded.
type Skipped struct {
	Line int
	Err  error
}

// Read decodes one item per non-blank line. Malformed lines and items
// without text are skipped and reported, not fatal. Items without a source
// are named after their line number.
func Read(r io.Reader) ([]Item, []Skipped, error) {
	var (
		items   []Item
		skipped []Skipped
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			skipped = append(skipped, Skipped{Line: n, Err: err})
			continue
		}
		if strings.TrimSpace(item.Text) == "" {
			skipped = append(skipped, Skipped{Line: n, Err: fmt.Errorf("empty text")})
			continue
		}
		if item.Source == "" {
			item.Source = fmt.Sprintf("line-%d", n)
		}
		items = append(items, item)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return items, skipped, nil
}

// Load reads a JSONL corpus file. A file with no usable item is an error.
func Load(path string) ([]Item, []Skipped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer f.Close()

	items, skipped, err := Read(f)
	if err != nil {
		return nil, nil, fmt.Errorf("read file %s: %w", path, err)
	}
	if len(items) == 0 {
		return nil, skipped, fmt.Errorf("no valid items found in %s", path)
	}
	return items, skipped, nil
}
