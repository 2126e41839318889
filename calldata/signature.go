package calldata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/tessellated-io/foresight/arrays"
)

const functionKeyword = "function"

var (
	identifierRegex  = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*$`)
	arraySuffixRegex = regexp.MustCompile(`^(\[[0-9]*\])*`)
	elementaryRegex  = regexp.MustCompile(`^([a-z]+[0-9]*(x[0-9]+)?)((\[[0-9]*\])*)$`)
	sizedRegex       = regexp.MustCompile(`^(u?int|bytes)([0-9]+)$`)

	// Words that may follow a parameter type without changing the encoding.
	parameterKeywords = map[string]bool{"memory": true, "calldata": true, "storage": true, "indexed": true, "payable": true}
	// Words that may follow the parameter list of a declaration.
	functionModifiers = map[string]bool{"external": true, "public": true, "view": true, "pure": true, "payable": true, "nonpayable": true}
)

// parameter is one declared input, reduced to what the encoding depends on.
type parameter struct {
	elementary string

	isTuple    bool
	components []parameter
	suffix     string
}

func (p parameter) canonical() string {
	if !p.isTuple {
		return p.elementary
	}
	return "(" + strings.Join(arrays.Map(p.components, parameter.canonical), ",") + ")" + p.suffix
}

func (p parameter) marshaling(name string) abi.ArgumentMarshaling {
	if !p.isTuple {
		return abi.ArgumentMarshaling{Name: name, Type: p.elementary, InternalType: p.elementary}
	}

	components := make([]abi.ArgumentMarshaling, len(p.components))
	for i, component := range p.components {
		components[i] = component.marshaling(fmt.Sprintf("field%d", i))
	}
	return abi.ArgumentMarshaling{Name: name, Type: "tuple" + p.suffix, Components: components}
}

// function is a parsed declaration.
type function struct {
	name       string
	parameters []parameter
}

func (f *function) canonical() string {
	return f.name + "(" + strings.Join(arrays.Map(f.parameters, parameter.canonical), ",") + ")"
}

// Canonicalize reduces a human readable declaration, ex. "transfer(address to, uint amount)", to its
// canonical form, ex. "transfer(address,uint256)".
func Canonicalize(signature string) (string, error) {
	method, err := parseMethod(signature)
	if err != nil {
		return "", err
	}
	return method.Sig, nil
}

// parseMethod turns a declaration into a typed go-ethereum method descriptor.
func parseMethod(signature string) (*abi.Method, error) {
	fn, err := parseFunction(signature)
	if err != nil {
		return nil, err
	}

	inputs := make(abi.Arguments, len(fn.parameters))
	for i, p := range fn.parameters {
		m := p.marshaling(fmt.Sprintf("arg%d", i))
		typ, err := abi.NewType(m.Type, m.InternalType, m.Components)
		if err != nil {
			return nil, malformed(signature, "parameter %d (%s): %v", i, p.canonical(), err)
		}
		inputs[i] = abi.Argument{Name: m.Name, Type: typ}
	}

	method := abi.NewMethod(fn.name, fn.name, abi.Function, "nonpayable", false, false, inputs, nil)
	if method.Sig != fn.canonical() {
		return nil, malformed(signature, "parsed descriptor %q does not match declaration %q", method.Sig, fn.canonical())
	}
	return &method, nil
}

func parseFunction(signature string) (*function, error) {
	// Declarations are accepted without the leading keyword; normalize so both forms parse alike.
	declaration := strings.TrimSpace(signature)
	if !strings.HasPrefix(declaration, functionKeyword+" ") {
		declaration = functionKeyword + " " + declaration
	}
	declaration = strings.TrimSpace(strings.TrimPrefix(declaration, functionKeyword))

	open := strings.Index(declaration, "(")
	if open < 0 {
		return nil, malformed(signature, "missing parameter list")
	}
	name := strings.TrimSpace(declaration[:open])
	if !identifierRegex.MatchString(name) || name == functionKeyword {
		return nil, malformed(signature, "invalid function name %q", name)
	}

	end, err := matchingParen(declaration, open)
	if err != nil {
		return nil, malformed(signature, "%v", err)
	}
	if err := checkTrailer(declaration[end+1:]); err != nil {
		return nil, malformed(signature, "%v", err)
	}

	parameters, err := parseParameterList(declaration[open+1 : end])
	if err != nil {
		return nil, malformed(signature, "%v", err)
	}

	return &function{name: name, parameters: parameters}, nil
}

// checkTrailer accepts modifiers and a returns clause after the parameter list. Neither affects the call payload.
func checkTrailer(trailer string) error {
	rest := strings.TrimSpace(trailer)
	for rest != "" {
		if strings.HasPrefix(rest, "returns") {
			after := strings.TrimSpace(strings.TrimPrefix(rest, "returns"))
			if !strings.HasPrefix(after, "(") {
				return fmt.Errorf("returns clause without a parameter list")
			}
			end, err := matchingParen(after, 0)
			if err != nil {
				return err
			}
			rest = strings.TrimSpace(after[end+1:])
			continue
		}

		word, remainder, _ := strings.Cut(rest, " ")
		if !functionModifiers[word] {
			return fmt.Errorf("unexpected %q after parameter list", rest)
		}
		rest = strings.TrimSpace(remainder)
	}
	return nil
}

func parseParameterList(list string) ([]parameter, error) {
	if strings.TrimSpace(list) == "" {
		return []parameter{}, nil
	}

	parts, err := splitTopLevel(list)
	if err != nil {
		return nil, err
	}
	return arrays.MapWithError(parts, func(idx int, part string) (parameter, error) {
		p, err := parseParameter(strings.TrimSpace(part))
		if err != nil {
			return parameter{}, fmt.Errorf("parameter %d: %w", idx, err)
		}
		return p, nil
	})
}

func parseParameter(declaration string) (parameter, error) {
	if declaration == "" {
		return parameter{}, fmt.Errorf("empty parameter")
	}

	if strings.HasPrefix(declaration, "tuple(") {
		declaration = strings.TrimPrefix(declaration, "tuple")
	}

	if declaration[0] == '(' {
		end, err := matchingParen(declaration, 0)
		if err != nil {
			return parameter{}, err
		}
		components, err := parseParameterList(declaration[1:end])
		if err != nil {
			return parameter{}, err
		}
		if len(components) == 0 {
			return parameter{}, fmt.Errorf("empty tuple")
		}

		rest := declaration[end+1:]
		suffix := arraySuffixRegex.FindString(rest)
		if err := checkParameterTrailer(rest[len(suffix):]); err != nil {
			return parameter{}, err
		}
		return parameter{isTuple: true, components: components, suffix: suffix}, nil
	}

	fields := strings.Fields(declaration)
	if err := checkParameterTrailer(strings.Join(fields[1:], " ")); err != nil {
		return parameter{}, err
	}

	elementary, err := canonicalElementary(fields[0])
	if err != nil {
		return parameter{}, err
	}
	return parameter{elementary: elementary}, nil
}

// checkParameterTrailer accepts data location keywords and at most one parameter name.
func checkParameterTrailer(trailer string) error {
	names := 0
	for _, word := range strings.Fields(trailer) {
		if parameterKeywords[word] {
			continue
		}
		if !identifierRegex.MatchString(word) {
			return fmt.Errorf("unexpected %q in parameter", word)
		}
		names++
	}
	if names > 1 {
		return fmt.Errorf("unexpected %q in parameter", strings.TrimSpace(trailer))
	}
	return nil
}

func canonicalElementary(typ string) (string, error) {
	matches := elementaryRegex.FindStringSubmatch(typ)
	if matches == nil {
		return "", fmt.Errorf("invalid type %q", typ)
	}

	base, suffix := matches[1], matches[3]
	switch base {
	case "uint":
		base = "uint256"
	case "int":
		base = "int256"
	case "byte":
		base = "bytes1"
	}
	if err := checkSize(base); err != nil {
		return "", err
	}
	return base + suffix, nil
}

// checkSize rejects widths go-ethereum would accept but the ABI does not define, ex. uint7 or bytes33.
func checkSize(typ string) error {
	matches := sizedRegex.FindStringSubmatch(typ)
	if matches == nil {
		return nil
	}

	size, err := strconv.Atoi(matches[2])
	if err != nil || strconv.Itoa(size) != matches[2] {
		return fmt.Errorf("invalid type %q", typ)
	}
	if matches[1] == "bytes" {
		if size < 1 || size > 32 {
			return fmt.Errorf("invalid type %q: bytes size must be between 1 and 32", typ)
		}
		return nil
	}
	if size < 8 || size > 256 || size%8 != 0 {
		return fmt.Errorf("invalid type %q: integer width must be a multiple of 8 between 8 and 256", typ)
	}
	return nil
}

func matchingParen(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unbalanced parentheses")
}

// splitTopLevel splits a parameter list on commas that are not nested in a tuple.
func splitTopLevel(list string) ([]string, error) {
	parts := []string{}
	depth, start := 0, 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, list[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	return append(parts, list[start:]), nil
}
