package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/viant/mlnotes/vector"
	sqlite "modernc.org/sqlite"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterFunctions registers knn_l2 with the driver so it is available on
// connections opened after this call. It is safe to call repeatedly.
//
//	knn_l2(a BLOB, b BLOB) -> REAL
//
// returns the Euclidean distance between two vectors encoded with
// vector.EncodeFeatures, or NULL when either argument is NULL.
func RegisterFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction("knn_l2", 2, knnL2Impl)
	})
	return registerErr
}

func asFeatures(arg driver.Value) ([]float64, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.DecodeFeatures(v)
	default:
		return nil, fmt.Errorf("knn_l2: unsupported argument type %T for features; want BLOB", arg)
	}
}

func knnL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("knn_l2: expected 2 arguments, got %d", len(args))
	}
	if args[0] == nil || args[1] == nil {
		return nil, nil
	}
	a, err := asFeatures(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asFeatures(args[1])
	if err != nil {
		return nil, err
	}
	d, err := vector.Euclidean(a, b)
	if err != nil {
		return nil, fmt.Errorf("knn_l2: %w", err)
	}
	return d, nil
}
