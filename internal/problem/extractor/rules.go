package extractor

import (
	"regexp"
	"strings"
)

// Shape tags the parameter signature an input rule understands.
type Shape string

const (
	// ShapeArrayInt is `name = [int,...]` followed by `name = int`.
	ShapeArrayInt Shape = "array+int"
	// ShapeBareArray is an unlabelled array literal on its own line.
	ShapeBareArray Shape = "bare-array"
)

const (
	arrayLiteral = `\[(?:-?\d+(?:,-?\d+)*)?\]`
	identifier   = `[A-Za-z_]\w*`
)

var (
	arrayParamRe = regexp.MustCompile(`(?:^|[\s,])(` + identifier + `)\s*=\s*(` + arrayLiteral + `)`)
	intParamRe   = regexp.MustCompile(`(?:^|[\s,])(` + identifier + `)\s*=\s*(-?\d+)\s*(?:,|$)`)
	bareArrayRe  = regexp.MustCompile(`^` + arrayLiteral + `$`)
)

// InputRule recognises the input parameters of one problem signature inside
// the cleaned lines of a block.
type InputRule interface {
	Shape() Shape
	MatchInput(lines []string) (string, bool)
}

// OutputRule recognises the expected output inside the cleaned lines of a block.
type OutputRule interface {
	Shape() Shape
	MatchOutput(lines []string) (string, bool)
}

// ArrayIntRule matches an array parameter and an integer parameter, either on
// one line or on separate lines of the same block. Empty names accept any
// identifier. The normalised input is the array, a newline, then the integer.
type ArrayIntRule struct {
	ArrayName string
	IntName   string
}

func (r ArrayIntRule) Shape() Shape {
	return ShapeArrayInt
}

func (r ArrayIntRule) MatchInput(lines []string) (string, bool) {
	var array, integer string
	for _, line := range lines {
		if array == "" {
			array = findParam(arrayParamRe, line, r.ArrayName)
		}
		if integer == "" {
			integer = findParam(intParamRe, line, r.IntName)
		}
		if array != "" && integer != "" {
			return array + "\n" + integer, true
		}
	}
	return "", false
}

// BareArrayRule takes the first line that is nothing but an array literal.
type BareArrayRule struct{}

func (BareArrayRule) Shape() Shape {
	return ShapeBareArray
}

func (BareArrayRule) MatchOutput(lines []string) (string, bool) {
	for _, line := range lines {
		if bareArrayRe.MatchString(line) {
			return line, true
		}
	}
	return "", false
}

func findParam(re *regexp.Regexp, line, name string) string {
	for _, m := range re.FindAllStringSubmatch(line, -1) {
		if name == "" || strings.EqualFold(m[1], name) {
			return m[2]
		}
	}
	return ""
}
