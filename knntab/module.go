package knntab

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"modernc.org/sqlite/vtab"

	"github.com/viant/mlnotes/dataset"
	"github.com/viant/mlnotes/feature"
	"github.com/viant/mlnotes/index"
	"github.com/viant/mlnotes/index/bruteforce"
	"github.com/viant/mlnotes/index/cover"
	"github.com/viant/mlnotes/knn"
	"github.com/viant/mlnotes/normalize"
	"github.com/viant/mlnotes/vector"
)

// ModuleName is the name used in CREATE VIRTUAL TABLE ... USING knn(...).
const ModuleName = "knn"

// Declared columns; query and k are hidden inputs.
const (
	colQuery = iota
	colK
	colRank
	colName
	colLabel
	colDistance
	colPrediction
)

const (
	idxMatch = iota + 1
	idxMatchK
)

// Module implements vtab.Module for knn tables.
type Module struct{}

// Table is one knn table bound to a classifier over a published set.
type Table struct {
	name       string
	set        string
	k          int
	classifier *knn.Classifier
	arity      int
}

type row struct {
	rank       int64
	name       string
	label      string
	distance   float64
	prediction string
}

// Cursor iterates the neighbors of one query.
type Cursor struct {
	table *Table
	k     int
	rows  []row
	pos   int
}

// Register registers the knn module with db.
func Register(db *sql.DB) error {
	if err := vtab.RegisterModule(db, ModuleName, &Module{}); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return err
		}
	}
	return nil
}

// Create declares the table and builds its classifier.
func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

// Connect attaches to an existing table.
func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

func (m *Module) connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	// argv: module, database, table, set, options...
	if len(args) < 4 {
		return nil, fmt.Errorf("knntab: USING knn(set, ...) expects a training set name")
	}
	if err := ctx.EnableConstraintSupport(); err != nil {
		return nil, fmt.Errorf("knntab: EnableConstraintSupport failed: %w", err)
	}
	t, err := newTable(args[2], unquote(args[3]), args[4:])
	if err != nil {
		return nil, err
	}
	ddl := fmt.Sprintf(`CREATE TABLE %s(query HIDDEN, k HIDDEN, rank INTEGER, name TEXT, label TEXT, distance REAL, prediction TEXT)`, args[2])
	if err := ctx.Declare(ddl); err != nil {
		return nil, err
	}
	return t, nil
}

func newTable(name, setName string, options []string) (*Table, error) {
	set, err := lookup(setName)
	if err != nil {
		return nil, err
	}
	t := &Table{name: name, set: setName, k: 1, arity: set.Schema().Len()}
	var (
		strategy normalize.Strategy
		features []feature.Name
		normOpts []normalize.Option
		idx      index.Index = bruteforce.New()
	)
	for _, raw := range options {
		key, val, ok := strings.Cut(strings.TrimSpace(raw), "=")
		if !ok {
			return nil, fmt.Errorf("knntab: %s: option %q is not key=value", name, raw)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = unquote(strings.TrimSpace(val))
		switch key {
		case "k":
			k, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("knntab: %s: invalid k %q", name, val)
			}
			t.k = k
		case "normalize":
			if strategy, err = normalize.ParseStrategy(val); err != nil {
				return nil, err
			}
		case "features":
			for _, f := range strings.Split(val, "|") {
				if f = strings.TrimSpace(f); f != "" {
					features = append(features, feature.Name(f))
				}
			}
		case "skip_degenerate":
			skip, err := strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("knntab: %s: invalid skip_degenerate %q", name, val)
			}
			if skip {
				normOpts = append(normOpts, normalize.SkipDegenerate())
			}
		case "index":
			switch strings.ToLower(val) {
			case "brute":
				idx = bruteforce.New()
			case "cover":
				idx = cover.New()
			default:
				return nil, fmt.Errorf("knntab: %s: unknown index %q", name, val)
			}
		default:
			return nil, fmt.Errorf("knntab: %s: unknown option %q", name, key)
		}
	}
	opts := []knn.Option{knn.WithIndex(idx)}
	if strategy != nil {
		opts = append(opts, knn.WithNormalization(strategy, features, normOpts...))
	}
	if t.classifier, err = knn.New(set, opts...); err != nil {
		return nil, err
	}
	return t, nil
}

// BestIndex requires MATCH on query and pushes down an optional k = ?.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	var matchConstraint, kConstraint *vtab.Constraint
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if !c.Usable {
			continue
		}
		switch {
		case c.Column == colQuery && c.Op == vtab.OpMATCH:
			matchConstraint = c
		case c.Column == colK && c.Op == vtab.OpEQ:
			kConstraint = c
		}
	}
	if matchConstraint == nil {
		return fmt.Errorf("knntab: %s: WHERE query MATCH ? is required", t.name)
	}
	matchConstraint.ArgIndex = 0
	matchConstraint.Omit = true
	info.IdxNum = idxMatch
	if kConstraint != nil {
		kConstraint.ArgIndex = 1
		kConstraint.Omit = true
		info.IdxNum = idxMatchK
	}
	return nil
}

// Open allocates a new cursor.
func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }

// Disconnect releases nothing; the classifier is garbage collected with the table.
func (t *Table) Disconnect() error { return nil }

// Destroy releases nothing; the catalog entry outlives the table.
func (t *Table) Destroy() error { return nil }

// Filter classifies the MATCH argument and materializes its neighbors.
func (c *Cursor) Filter(idxNum int, _ string, vals []vtab.Value) error {
	c.rows, c.pos = nil, 0
	if len(vals) == 0 || vals[0] == nil {
		return fmt.Errorf("knntab: %s: MATCH argument is required", c.table.name)
	}
	query, err := decodeQuery(vals[0], c.table.arity)
	if err != nil {
		return err
	}
	k := c.table.k
	if idxNum == idxMatchK {
		if len(vals) < 2 {
			return fmt.Errorf("knntab: %s: missing k argument", c.table.name)
		}
		if k, err = asInt(vals[1]); err != nil {
			return err
		}
	}
	result, err := c.table.classifier.Classify(query, k)
	if err != nil {
		return err
	}
	c.k = k
	c.rows = make([]row, len(result.Neighbors))
	for i, n := range result.Neighbors {
		c.rows[i] = row{
			rank:       int64(i + 1),
			name:       n.Example.Name,
			label:      n.Example.Label,
			distance:   n.Distance,
			prediction: result.Label,
		}
	}
	return nil
}

// Next advances the cursor.
func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

// Eof reports end-of-rows.
func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }

// Column returns the value of a column in the current row.
func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, fmt.Errorf("knntab: Column out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	r := c.rows[c.pos]
	switch col {
	case colQuery:
		return nil, nil
	case colK:
		return int64(c.k), nil
	case colRank:
		return r.rank, nil
	case colName:
		return r.name, nil
	case colLabel:
		return r.label, nil
	case colDistance:
		return r.distance, nil
	case colPrediction:
		return r.prediction, nil
	}
	return nil, fmt.Errorf("knntab: unsupported column %d", col)
}

// Rowid returns the rank of the current row.
func (c *Cursor) Rowid() (int64, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return 0, fmt.Errorf("knntab: Rowid out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	return c.rows[c.pos].rank, nil
}

// Close releases the materialized rows.
func (c *Cursor) Close() error { c.rows = nil; c.pos = 0; return nil }

// decodeQuery accepts a feature BLOB or a comma separated string.
func decodeQuery(v vtab.Value, arity int) ([]float64, error) {
	switch val := v.(type) {
	case []byte:
		query, err := vector.DecodeFeatures(val)
		if err != nil {
			return nil, err
		}
		if len(query) != arity {
			return nil, fmt.Errorf("knntab: query: %w", vector.Mismatch(len(query), arity))
		}
		if err := vector.Finite(query); err != nil {
			return nil, fmt.Errorf("knntab: query: %w", err)
		}
		return query, nil
	case string:
		return dataset.ParseQuery(val, arity)
	}
	return nil, fmt.Errorf("knntab: expected MATCH arg as BLOB or string, got %T", v)
}

func asInt(v vtab.Value) (int, error) {
	switch val := v.(type) {
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("knntab: k must be an integer, got %v", val)
		}
		return int(val), nil
	case string:
		k, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("knntab: cannot parse k %q: %w", val, err)
		}
		return k, nil
	}
	return 0, fmt.Errorf("knntab: unsupported k type %T", v)
}

func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '\'' || q == '"') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}
