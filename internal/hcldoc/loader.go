package hcldoc

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/optgen/internal/config"
	"github.com/specialistvlad/optgen/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL specification loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the HCL file at path and translates its body into a
// config.Document.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return l.translateFile(ctx, path, file)
}

// LoadSource parses src as if it had been read from path. It exists for
// callers that already hold the bytes, such as tests.
func (l *Loader) LoadSource(ctx context.Context, path string, src []byte) (*config.Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return l.translateFile(ctx, path, file)
}

func (l *Loader) translateFile(ctx context.Context, path string, file *hcl.File) (*config.Document, error) {
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to decode HCL file %s: only native HCL syntax is supported", path)
	}

	doc := config.NewDocument(config.Pos{File: path, Line: 1})
	if diags := l.translateBody(ctx, path, body, doc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	ctxlog.FromContext(ctx).Debug("HCL document translated.", "path", path, "attributes", doc.Len())
	return doc, nil
}

// translateBody copies attributes (in source order) and blocks of body into
// doc. Unlabeled blocks become repeated tables keyed by block type; blocks
// with one label become a table keyed by type whose entries are keyed by the
// label.
func (l *Loader) translateBody(ctx context.Context, path string, body *hclsyntax.Body, doc *config.Document) hcl.Diagnostics {
	var diags hcl.Diagnostics

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	for _, attr := range attrs {
		// Specifications are literal data, so no evaluation context is offered.
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		native, err := ctyToNative(ctx, val)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported attribute value",
				Detail:   fmt.Sprintf("The value of %q cannot be used in an option specification: %s.", attr.Name, err),
				Subject:  attr.SrcRange.Ptr(),
			})
			continue
		}
		doc.Set(attr.Name, native, posOf(path, attr.SrcRange))
	}

	for _, block := range body.Blocks {
		pos := posOf(path, block.DefRange())
		child := config.NewDocument(pos)
		diags = append(diags, l.translateBody(ctx, path, block.Body, child)...)

		var err error
		switch len(block.Labels) {
		case 0:
			err = doc.Append(block.Type, child, pos)
		case 1:
			var parent *config.Document
			parent, err = doc.Child(block.Type, pos)
			if err == nil {
				err = parent.Append(block.Labels[0], child, pos)
			}
		default:
			err = fmt.Errorf("block %q takes at most one label, got %d", block.Type, len(block.Labels))
		}
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid block",
				Detail:   err.Error(),
				Subject:  block.DefRange().Ptr(),
			})
		}
	}

	return diags
}

func posOf(path string, rng hcl.Range) config.Pos {
	return config.Pos{File: path, Line: rng.Start.Line}
}
