// Package compiler wires the hoist, numbering and assemble stages (the
// latter driving rtfy and continuation) into the generator-to-iterator
// transformation of an already decoded forest: construct stage inputs, run
// each stage in sequence, return on the first error. Decoding the input and
// printing the result are done by the caller.
package compiler

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/mod/semver"

	"github.com/corvid-lang/genit2iter/internal/assemble"
	"github.com/corvid-lang/genit2iter/internal/config"
	"github.com/corvid-lang/genit2iter/internal/hoist"
	"github.com/corvid-lang/genit2iter/internal/mast"
	"github.com/corvid-lang/genit2iter/internal/mast/mastutil"
	"github.com/corvid-lang/genit2iter/internal/numbering"
	"github.com/corvid-lang/genit2iter/internal/transformation"
)

// Compiler implements transformation.Transformer: the whole pipeline is one
// forest-to-forest transform. The stages it drives take narrower inputs and
// do not implement the interface themselves.
var _ transformation.Transformer = (*Compiler)(nil)

// genericsMinVersion is the target-version threshold at or above which the
// assembler may emit a generic (type-parameterized) iterator class, mirroring
// Go's own introduction of type parameters in 1.18.
const genericsMinVersion = "v1.18.0"

// Category classifies a FatalError into the tool's error taxonomy.
type Category int

const (
	// CategoryParse covers malformed input to the decode stage.
	CategoryParse Category = iota
	// CategoryStructural covers violations of the "exactly one class,
	// exactly one generate method" input shape.
	CategoryStructural
	// CategoryUnsupported covers constructs explicitly out of scope
	// (three-part for, switch inside a generator body, yield in an
	// expression context, unknown AST nodes encountered by a rewriter).
	CategoryUnsupported
	// CategoryInternal covers invariant violations that indicate a bug in
	// this tool rather than a problem with the input (a yield site missing
	// its tag, a name lookup miss).
	CategoryInternal
)

func (c Category) String() string {
	switch c {
	case CategoryParse:
		return "parse error"
	case CategoryStructural:
		return "structural error"
	case CategoryUnsupported:
		return "unsupported construct"
	case CategoryInternal:
		return "internal invariant violation"
	default:
		return "error"
	}
}

// FatalError wraps an error with its category. The tool is a batch
// compiler with no recoverable-error tier: every FatalError aborts the run
// without partial output.
type FatalError struct {
	Category Category
	Err      error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func fatal(cat Category, format string, args ...any) error {
	return &FatalError{Category: cat, Err: fmt.Errorf(format, args...)}
}

// Compiler runs the full transformation for one compilation unit. A fresh
// Compiler should be constructed per run: its fresh-name counter (carried
// inside the Hoister it creates) is per-instance state, not a package
// global, so that running the transformation repeatedly in-process (tests,
// a batch driver) never leaks state across runs.
type Compiler struct {
	cfg           *config.Config
	allowGenerics bool
}

// New returns a Compiler configured by cfg. A nil cfg uses config.Default().
// minTargetVersion is the --min-target-version CLI flag; an empty string or
// a version below genericsMinVersion forces the non-generic iterator form.
func New(cfg *config.Config, minTargetVersion string) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Compiler{cfg: cfg, allowGenerics: generics(minTargetVersion)}
}

// generics reports whether minTargetVersion supports type parameters. An
// unparseable or empty version is treated as "not supported", so an omitted
// flag falls back to the non-generic form.
func generics(minTargetVersion string) bool {
	if minTargetVersion == "" {
		return false
	}
	v := minTargetVersion
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, genericsMinVersion) >= 0
}

// Compile runs the full pipeline over a decoded forest and returns the
// rewritten forest ready for printing.
func (c *Compiler) Compile(forest []mast.Node) ([]mast.Node, error) {
	root, err := validateStructure(forest)
	if err != nil {
		return nil, err
	}

	class, generate, otherMembers, err := findGenerateMethod(root)
	if err != nil {
		return nil, err
	}

	params, err := paramDecls(generate.Parameters)
	if err != nil {
		return nil, fatal(CategoryInternal, "generate method parameter is not a ParameterDeclaration: %w", err)
	}

	existingNames := make([]string, 0, len(params)+len(otherMembers))
	for _, p := range params {
		existingNames = append(existingNames, p.Name.Name)
	}

	hoister := hoist.New(c.cfg.FreshNamePrefix, existingNames)
	hoistedBody, err := hoister.Transform(&mast.Block{Statements: generate.Statements})
	if err != nil {
		return nil, fatal(categorizeStageError(err), "hoisting generator body: %w", err)
	}

	tags, err := numbering.Number(hoistedBody)
	if err != nil {
		return nil, fatal(CategoryInternal, "numbering yield sites: %w", err)
	}

	fields := assemble.Fields{
		HasNext: c.cfg.HasNextField,
		Next:    c.cfg.NextField,
		Tmp:     c.cfg.FreshNamePrefix + "next_tmp",
	}
	if tags.Count() >= 2 {
		fields.State = c.cfg.StateField
	}

	elementType := elementType(generate)

	typeParameters := class.TypeParameters
	if !c.allowGenerics {
		// Non-generic target: erase the class's own type parameters from the
		// assembled iterator rather than threading them through a dispatch
		// that the --min-target-version gate says the target can't express.
		typeParameters = nil
	}

	newClass, err := assemble.Assemble(assemble.Input{
		Name:           class.Name,
		Modifiers:      class.Modifiers,
		TypeParameters: typeParameters,
		Supers:         class.Supers,
		Interfaces:     class.Interfaces,
		OtherMembers:   otherMembers,
		Parameters:     params,
		ElementType:    elementType,
		HoistedFields:  hoister.Fields(),
		HoistedBody:    hoistedBody,
		Tags:           tags,
		Fields:         fields,
	})
	if err != nil {
		return nil, fatal(categorizeStageError(err), "assembling iterator class: %w", err)
	}

	// Preserve the input compilation unit's package and imports verbatim by
	// keeping every declaration's position, substituting only the original
	// class for the assembled one.
	newDecls := make([]mast.Declaration, 0, len(root.Declarations))
	for _, d := range root.Declarations {
		if cls, ok := d.(*mast.ClassDeclaration); ok && cls == class {
			newDecls = append(newDecls, newClass)
			continue
		}
		newDecls = append(newDecls, d)
	}
	return []mast.Node{&mast.Root{Declarations: newDecls}}, nil
}

// Transform satisfies transformation.Transformer by delegating to Compile.
func (c *Compiler) Transform(forest []mast.Node) ([]mast.Node, error) {
	return c.Compile(forest)
}

func paramDecls(decls []mast.Declaration) ([]*mast.ParameterDeclaration, error) {
	out := make([]*mast.ParameterDeclaration, len(decls))
	for i, d := range decls {
		p, ok := d.(*mast.ParameterDeclaration)
		if !ok {
			return nil, fmt.Errorf("declaration %d has type %T, not *mast.ParameterDeclaration", i, d)
		}
		out[i] = p
	}
	return out, nil
}

// elementType returns the generate method's declared return type, or a
// reasonable default identifier if none was declared.
func elementType(generate *mast.FunctionDeclaration) mast.Expression {
	if len(generate.Returns) == 0 {
		return &mast.Identifier{Name: "Object"}
	}
	ret, ok := generate.Returns[0].(*mast.ParameterDeclaration)
	if !ok || ret.Type == nil {
		return &mast.Identifier{Name: "Object"}
	}
	return ret.Type
}

// categorizeStageError maps an untyped stage error to a Category by
// inspecting its message, since hoist/rtfy/continuation/assemble return
// plain fmt.Errorf-wrapped errors (once structural validation passes, later
// stages fail fast) rather than their own FatalError type.
func categorizeStageError(err error) Category {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not implemented"):
		return CategoryUnsupported
	case strings.Contains(msg, "internal invariant violation"):
		return CategoryInternal
	default:
		return CategoryInternal
	}
}

// validateStructure checks the input has exactly one top-level class
// declaration, collecting every violation via multierr before returning
// rather than stopping at the first one.
func validateStructure(forest []mast.Node) (*mast.Root, error) {
	var root *mast.Root
	for _, n := range forest {
		if r, ok := n.(*mast.Root); ok {
			root = r
			break
		}
	}
	if root == nil {
		return nil, fatal(CategoryStructural, "input forest does not contain a Root node")
	}

	var classes []*mast.ClassDeclaration
	var errs error
	for _, d := range root.Declarations {
		if cls, ok := d.(*mast.ClassDeclaration); ok {
			classes = append(classes, cls)
		}
	}
	if len(classes) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("no top-level class declaration"))
	}
	if len(classes) > 1 {
		errs = multierr.Append(errs, fmt.Errorf("expected exactly one top-level class declaration, found %d", len(classes)))
	}
	if errs != nil {
		return nil, &FatalError{Category: CategoryStructural, Err: errs}
	}
	return root, nil
}

// findGenerateMethod locates the single "generate" method in class's body,
// collecting "missing", "multiple" and "static" violations via multierr
// before returning.
func findGenerateMethod(root *mast.Root) (*mast.ClassDeclaration, *mast.FunctionDeclaration, []mast.Declaration, error) {
	var class *mast.ClassDeclaration
	for _, d := range root.Declarations {
		if cls, ok := d.(*mast.ClassDeclaration); ok {
			class = cls
			break
		}
	}

	var generates []*mast.FunctionDeclaration
	var other []mast.Declaration
	for _, d := range class.Body {
		if fn, ok := d.(*mast.FunctionDeclaration); ok && fn.Name != nil && fn.Name.Name == "generate" {
			generates = append(generates, fn)
			continue
		}
		other = append(other, d)
	}

	var errs error
	if len(generates) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("class %q has no generate method", class.Name.Name))
	}
	if len(generates) > 1 {
		errs = multierr.Append(errs, fmt.Errorf("class %q has %d generate methods, expected exactly one", class.Name.Name, len(generates)))
	}
	if len(generates) == 1 && mastutil.HasModifier(generates[0].Modifiers, mast.StaticMod) {
		errs = multierr.Append(errs, fmt.Errorf("class %q's generate method is static; the assembled iterator needs an instance method to hoist into", class.Name.Name))
	}
	if errs != nil {
		return nil, nil, nil, &FatalError{Category: CategoryStructural, Err: errs}
	}
	return class, generates[0], other, nil
}
