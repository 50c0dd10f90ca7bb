package form

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/alexanderramin/bfmp/internal/logging"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON string

const snapshotSchemaURL = "https://bfmp.schemas.local/snapshot.schema.json"

// SnapshotSchemaJSON returns the JSON Schema snapshot files are validated
// against.
func SnapshotSchemaJSON() string { return snapshotSchemaJSON }

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func snapshotSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchemaJSON)); err != nil {
			compileErr = fmt.Errorf("loading snapshot schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(snapshotSchemaURL)
	})
	return compiledSchema, compileErr
}

// snapshotDoc mirrors the snapshot file layout. Values stay yaml.Nodes so
// text such as 0123456 or 1.10 keeps the exact characters the user wrote.
type snapshotDoc struct {
	Fields map[string]yaml.Node   `yaml:"fields"`
	Files  map[string]any         `yaml:"files"`
	AFC    []map[string]yaml.Node `yaml:"afc"`
	MGPS   []map[string]yaml.Node `yaml:"mgps"`
}

// LoadSnapshot reads a YAML or JSON snapshot file into a State. Relative file
// paths resolve against the snapshot's directory.
func LoadSnapshot(path string, schema Schema) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("reading snapshot: %w", err)
	}
	return ParseSnapshot(data, filepath.Dir(path), schema)
}

// ParseSnapshot validates data against the snapshot JSON Schema and builds a
// State from it.
func ParseSnapshot(data []byte, baseDir string, schema Schema) (State, error) {
	if err := ValidateSnapshot(data); err != nil {
		return State{}, err
	}

	var doc snapshotDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("parsing snapshot: %w", err)
	}

	logger := logging.WithOperation(logging.WithComponent("form"), "parse_snapshot")
	b := NewBuilder(schema)

	for _, id := range sortedKeys(doc.Fields) {
		f, ok := schema.Field(id)
		if !ok {
			logger.Warn("ignoring unknown field", "field", id)
			continue
		}
		if f.Kind.IsFile() {
			logger.Warn("file field given under fields; use files", "field", id)
			continue
		}
		raw := doc.Fields[id]
		if f.Kind == KindCheckbox {
			b.SetChecked(id, truthy(raw))
			continue
		}
		b.SetText(id, scalarText(raw))
	}

	for _, id := range sortedKeys(doc.Files) {
		f, ok := schema.Field(id)
		if !ok || !f.Kind.IsFile() {
			logger.Warn("ignoring unknown file field", "field", id)
			continue
		}
		paths := filePaths(doc.Files[id])
		if f.Kind == KindFile && len(paths) > 1 {
			paths = paths[:1]
		}
		files := make([]File, 0, len(paths))
		for _, p := range paths {
			if !filepath.IsAbs(p) {
				p = filepath.Join(baseDir, p)
			}
			file := InspectFile(p)
			if !file.Loaded {
				logger.Warn("file is not a readable image", "field", id, "path", p)
			}
			files = append(files, file)
		}
		b.SetFiles(id, files...)
	}

	for prefix, items := range map[string][]map[string]yaml.Node{ListAFC: doc.AFC, ListMGPS: doc.MGPS} {
		if err := fillList(b, schema, prefix, items); err != nil {
			return State{}, err
		}
	}

	return b.State(), nil
}

// ValidateSnapshot checks data against the embedded snapshot JSON Schema.
func ValidateSnapshot(data []byte) error {
	sch, err := snapshotSchema()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("validating snapshot: keys must be strings: %w", err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("validating snapshot: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("validating snapshot: %w", err)
	}
	return nil
}

func fillList(b *Builder, schema Schema, prefix string, items []map[string]yaml.Node) error {
	l, ok := schema.List(prefix)
	if !ok || len(items) == 0 {
		return nil
	}
	for i, item := range items {
		pos := i + 1
		if pos > b.Items(prefix) {
			if _, err := b.AppendItem(prefix); err != nil {
				return err
			}
		}
		for _, name := range sortedKeys(item) {
			f, ok := l.FindField(name)
			if !ok {
				logging.WithComponent("form").Warn("ignoring unknown item field", "list", prefix, "field", name)
				continue
			}
			if err := b.SetItemText(prefix, pos, f.ID, scalarText(item[name])); err != nil {
				return err
			}
		}
	}
	return nil
}

// scalarText returns a scalar's source text. Null and non-scalar nodes are
// empty.
func scalarText(n yaml.Node) string {
	if n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return ""
	}
	return n.Value
}

// truthy reads a checkbox value: a YAML bool or a string ParseBool accepts.
func truthy(n yaml.Node) bool {
	if n.Kind != yaml.ScalarNode {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(n.Value))
	return err == nil && b
}

func filePaths(v any) []string {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, p := range t {
			if s, ok := p.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
