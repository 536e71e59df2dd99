// This file contains the logic for converting evaluated HCL attribute values
// (cty.Value) into the plain Go values stored in a config.Document.

package hcldoc

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/optgen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ctyToNative converts a literal cty value into one of the value kinds a
// config.Attribute may hold. Only scalars and flat lists of scalars occur in
// option specifications; anything else is rejected.
func ctyToNative(ctx context.Context, val cty.Value) (any, error) {
	logger := ctxlog.FromContext(ctx)

	if val.IsNull() {
		return nil, errors.New("null is not allowed")
	}
	if !val.IsWhollyKnown() {
		return nil, errors.New("value must be known without evaluation")
	}

	ty := val.Type()
	switch {
	case ty.Equals(cty.String):
		return val.AsString(), nil

	case ty.Equals(cty.Bool):
		return val.True(), nil

	case ty.Equals(cty.Number):
		var i int64
		if err := gocty.FromCtyValue(val, &i); err == nil {
			return i, nil
		}
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return nil, fmt.Errorf("number out of range: %w", err)
		}
		logger.Debug("Converted non-integral number.", "value", f)
		return f, nil

	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyToNative(ctx, elem)
			if err != nil {
				return nil, fmt.Errorf("list element: %w", err)
			}
			if _, nested := native.([]any); nested {
				return nil, errors.New("nested lists are not allowed")
			}
			out = append(out, native)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("values of type %s are not allowed", ty.FriendlyName())
	}
}
