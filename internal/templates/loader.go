// Package templates provides the message catalogue used for suggestion text.
// Messages are stored as JSON files and embedded at compile time.
package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

// Catalogue files
const (
	Field  = "field.json"
	Global = "global.json"
)

//go:embed *.json
var messageFiles embed.FS

var (
	loadOnce sync.Once
	catalog  map[string]map[string]string
	loadErr  error
)

// messages returns every embedded catalogue keyed by file name, parsed on first use
func messages() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		catalog, loadErr = parseCatalogue(messageFiles)
	})
	return catalog, loadErr
}

func parseCatalogue(fsys fs.FS) (map[string]map[string]string, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]string, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read message file %s: %w", name, err)
		}
		var entries map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse message file %s: %w", name, err)
		}
		out[name] = entries
	}
	return out, nil
}

// Render returns the message for key in file with {{.Name}} placeholders taken from data.
// An unknown file or key renders as "".
func Render(file, key string, data map[string]string) string {
	all, err := messages()
	if err != nil {
		return ""
	}
	return substitute(all[file][key], data)
}

// substitute replaces {{.Name}} placeholders; placeholders without data are left as is
func substitute(message string, data map[string]string) string {
	if message == "" || len(data) == 0 {
		return message
	}
	pairs := make([]string, 0, 2*len(data))
	for name, value := range data {
		pairs = append(pairs, "{{."+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(message)
}
