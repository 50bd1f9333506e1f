package expression

import (
	"fmt"
	"strings"
)

// Role selects how an operand with no explicit escape prefix is interpreted.
type Role int

const (
	// RoleName resolves bare strings as attribute paths.
	RoleName Role = iota
	// RoleValue resolves bare operands as literal values.
	RoleValue
)

type operandClass int

const (
	operandPlain operandClass = iota
	operandValueLiteral
	operandNameRef
)

// structural delimiters ending an embedded #name run
const nameDelimiters = "()[], .="

// classifiedOperand is the parsed form of a string operand: an explicit value
// escape, an embedded attribute reference with its surrounding text, or plain
// text to be interpreted per the caller's default role.
type classifiedOperand struct {
	class  operandClass
	text   string
	prefix string
	suffix string
}

// classifyOperand applies the escaping grammar:
//
//   - a leading ':' marks an explicit literal; exactly one colon is stripped,
//     so "::x" denotes the literal ":x" and ":#x" the literal "#x"
//   - an embedded '#' marks an attribute reference running to the next
//     structural delimiter; exactly one leading '#' is stripped, so "##x"
//     references an attribute literally named "#x"
//   - anything else is plain and falls back to the default role
func classifyOperand(s string) classifiedOperand {
	if strings.HasPrefix(s, ":") {
		return classifiedOperand{class: operandValueLiteral, text: s[1:]}
	}

	if i := strings.IndexByte(s, '#'); i >= 0 {
		run := s[i+1:]
		suffix := ""
		if j := strings.IndexAny(run, nameDelimiters); j >= 0 {
			run, suffix = run[:j], run[j:]
		}
		return classifiedOperand{class: operandNameRef, prefix: s[:i], text: run, suffix: suffix}
	}

	return classifiedOperand{class: operandPlain}
}

// resolveOperand turns an operand into the text to splice into an expression,
// binding placeholders as needed. String operands go through the escaping
// grammar first; unescaped operands follow the default role. Strings that
// happen to contain '#' or start with ':' are always resolved per the grammar,
// so literal values of that shape must be escaped explicitly by the caller.
func (p *Params) resolveOperand(operand any, role Role, hint string) (string, error) {
	if s, ok := operand.(string); ok {
		c := classifyOperand(s)
		switch c.class {
		case operandValueLiteral:
			return p.BindValue(c.text, hint)
		case operandNameRef:
			return c.prefix + p.BindName(c.text) + c.suffix, nil
		}
		if role == RoleName {
			return p.bindPath(s), nil
		}
		return p.BindValue(s, hint)
	}

	if role == RoleName {
		return p.bindPath(fmt.Sprint(operand)), nil
	}
	return p.BindValue(operand, hint)
}

// bindPath binds a dotted attribute path segment by segment. Bracketed index
// suffixes are preserved verbatim and never escaped.
func (p *Params) bindPath(path string) string {
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		indexes := ""
		if j := strings.IndexByte(segment, '['); j >= 0 {
			segment, indexes = segment[:j], segment[j:]
		}
		segments[i] = p.BindName(segment) + indexes
	}
	return strings.Join(segments, ".")
}

// hintFor derives a value-placeholder hint from an attribute path.
func hintFor(path string) string {
	return placeholderChars.ReplaceAllString(path, "")
}
