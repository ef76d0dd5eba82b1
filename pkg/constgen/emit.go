package constgen

import (
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/constgen/internal/fileutil"
)

const (
	// DefaultHeaderExt is the extension of the declarations artifact.
	DefaultHeaderExt = ".h"
	// DefaultSourceExt is the extension of the definitions artifact.
	DefaultSourceExt = ".cpp"
)

// Constant describes one emitted constant.
type Constant struct {
	Name  string // derived identifier
	Path  string // input path as given
	Lines int    // number of string literal segments
}

// Emitter writes the declarations and definitions artifacts.
type Emitter struct {
	headerExt string
	sourceExt string
	logger    arbor.ILogger
}

// New creates an Emitter with the default ".h"/".cpp" extensions.
// The two extensions must differ, ignoring case, so the artifacts never
// share a file.
func New(opts ...Option) (*Emitter, error) {
	e := &Emitter{
		headerExt: DefaultHeaderExt,
		sourceExt: DefaultSourceExt,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if strings.EqualFold(e.headerExt, e.sourceExt) {
		return nil, fmt.Errorf("header and source extensions must differ, both are %q", e.headerExt)
	}
	return e, nil
}

// Emit writes <outputBase>.h and <outputBase>.cpp for inputPaths using the
// default extensions.
func Emit(outputBase string, inputPaths []string) error {
	e, err := New()
	if err != nil {
		return err
	}
	_, err = e.Emit(outputBase, inputPaths)
	return err
}

// Artifacts returns the declarations and definitions paths for outputBase.
func (e *Emitter) Artifacts(outputBase string) (header, source string) {
	return outputBase + e.headerExt, outputBase + e.sourceExt
}

// Emit converts every input, in order, into one constant. A missing parent
// directory of outputBase is created. Both artifacts are truncated first and
// always closed before Emit returns. When an input cannot
// be read Emit stops with an *InputError and the artifacts keep the constants
// written before it.
func (e *Emitter) Emit(outputBase string, inputPaths []string) (constants []Constant, err error) {
	if outputBase == "" || len(inputPaths) == 0 {
		return nil, ErrUsage
	}

	headerPath, sourcePath := e.Artifacts(outputBase)
	if err := fileutil.EnsureParent(headerPath); err != nil {
		return nil, &OutputError{Path: headerPath, Err: err}
	}

	header, err := createArtifact(headerPath)
	if err != nil {
		return nil, err
	}
	defer closeArtifact(header, &err)

	source, err := createArtifact(sourcePath)
	if err != nil {
		return nil, err
	}
	defer closeArtifact(source, &err)

	header.printf("#pragma once\n")
	source.printf("#include \"%s\"\n", headerPath)

	seen := make(map[string]string, len(inputPaths))
	for _, path := range inputPaths {
		c, err := e.emitConstant(header, source, path)
		if err != nil {
			return constants, err
		}
		if prev, ok := seen[c.Name]; ok && e.logger != nil {
			e.logger.Warn().
				Str("name", c.Name).
				Str("input", path).
				Str("previous", prev).
				Msg("Constant name emitted more than once")
		}
		seen[c.Name] = path
		constants = append(constants, c)
	}
	return constants, nil
}

func (e *Emitter) emitConstant(header, source *artifact, path string) (Constant, error) {
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return Constant{}, &InputError{Path: path, Err: err}
	}

	name := ConstantName(path)
	header.printf("extern const char* %s;\n", name)
	source.printf("const char* %s = \n", name)
	for _, line := range lines {
		source.printf("\t\"%s\"\n", Escape(line))
	}
	source.printf("\t;\n\n")

	for _, a := range []*artifact{header, source} {
		if a.err != nil {
			return Constant{}, &OutputError{Path: a.path, Err: a.err}
		}
	}

	if e.logger != nil {
		e.logger.Debug().Str("name", name).Str("input", path).Msg("Constant emitted")
	}
	return Constant{Name: name, Path: path, Lines: len(lines)}, nil
}

// closeArtifact closes a and records its error in *errp unless an earlier
// error is already there.
func closeArtifact(a *artifact, errp *error) {
	if cerr := a.Close(); *errp == nil {
		*errp = cerr
	}
}
