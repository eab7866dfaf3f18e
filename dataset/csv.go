package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/viant/mlnotes/feature"
	"github.com/viant/mlnotes/vector"
	"golang.org/x/text/unicode/norm"
)

const (
	nameColumn  = "name"
	labelColumn = "label"
)

// ErrMissingLabel is returned when the header does not end with a label column.
var ErrMissingLabel = errors.New("dataset: header must end with a label column")

// ErrNoFeatures is returned when the header names no feature columns.
var ErrNoFeatures = errors.New("dataset: header names no features")

// ParseFile reads a training set from a CSV file.
func ParseFile(path string) (feature.Set, []feature.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dataset: cannot open %s", path)
	}
	defer f.Close()
	schema, examples, err := Parse(f)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dataset: %s", path)
	}
	return schema, examples, nil
}

// Parse reads a training set. The header is
//
//	[name,]feature1,...,featureN,label
//
// Lines starting with '#' are comments.
func Parse(r io.Reader) (feature.Set, []feature.Example, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New("dataset: missing header")
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "dataset: cannot read header")
	}
	for i := range header {
		header[i] = Clean(header[i])
	}
	last := len(header) - 1
	if !strings.EqualFold(header[last], labelColumn) {
		return nil, nil, ErrMissingLabel
	}
	first := 0
	if strings.EqualFold(header[0], nameColumn) {
		first = 1
	}
	if last-first < 1 {
		return nil, nil, ErrNoFeatures
	}
	schema := feature.NewSet(header[first:last]...)

	var examples []feature.Example
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "dataset: cannot read record")
		}
		line, _ := reader.FieldPos(0)
		values, err := parseValues(record[first:last])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "dataset: line %d", line)
		}
		ex := feature.Example{Label: Clean(record[last]), Features: values}
		if first == 1 {
			ex.Name = Clean(record[0])
		}
		examples = append(examples, ex)
	}
	return schema, examples, nil
}

// ParseQuery parses a comma separated feature vector of the given arity.
func ParseQuery(s string, arity int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if strings.TrimSpace(s) == "" {
		parts = nil
	}
	if len(parts) != arity {
		return nil, errors.Errorf("dataset: query %q has %d value(s), want %d", s, len(parts), arity)
	}
	return parseValues(parts)
}

// Write renders a training set in the format accepted by Parse.
func Write(w io.Writer, schema feature.Set, examples []feature.Example) error {
	writer := csv.NewWriter(w)
	header := append([]string{nameColumn}, schema.Strings()...)
	header = append(header, labelColumn)
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "dataset: cannot write header")
	}
	for _, ex := range examples {
		record := make([]string, 0, len(header))
		record = append(record, ex.Name)
		for _, v := range ex.Features {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		record = append(record, ex.Label)
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "dataset: cannot write %s", ex.Name)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "dataset: flush")
}

// Clean applies Unicode NFKC normalization, trims whitespace and drops
// control characters so labels compare equal however they were typed.
func Clean(text string) string {
	text = strings.TrimSpace(norm.NFKC.String(text))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

func parseValues(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i+1)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(vector.ErrNonFinite, "feature %d: %q", i+1, f)
		}
		values[i] = v
	}
	return values, nil
}
