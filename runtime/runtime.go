// Package runtime wires the scanner, parser, resolver and interpreter into
// a single pipeline and installs the host primitives.
package runtime

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sergev/tlox/lang"
	"github.com/sergev/tlox/parser"
	"github.com/sergev/tlox/resolver"
)

// NewInterpreter constructs an interpreter with the standard primitives
// installed.
func NewInterpreter(opts ...lang.Option) *lang.Interpreter {
	in := lang.NewInterpreter(opts...)
	installPrimitives(in)
	return in
}

// Check scans, parses and resolves src without running it. Any static error
// is returned as a parser.ErrorList; scan and syntax errors stop the
// pipeline before resolution.
func Check(src string) (*parser.Program, resolver.Locals, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	locals, err := resolver.Resolve(prog)
	if err != nil {
		return nil, nil, err
	}
	return prog, locals, nil
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		// Keep the newline so line numbers stay accurate.
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			return data[idx:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// EvaluateString checks and executes src. Nothing runs if a static error
// is found.
func EvaluateString(in *lang.Interpreter, src string) error {
	prog, locals, err := Check(src)
	if err != nil {
		return err
	}
	return in.Interpret(prog, locals)
}

// EvaluateReader consumes all source from the reader and executes it.
func EvaluateReader(in *lang.Interpreter, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return EvaluateString(in, string(data))
}

// ReadSource loads a script, allowing a #! first line.
func ReadSource(path string) (string, error) {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EvaluateFile loads and executes a script file.
func EvaluateFile(in *lang.Interpreter, path string) error {
	src, err := ReadSource(path)
	if err != nil {
		return err
	}
	return EvaluateString(in, src)
}
