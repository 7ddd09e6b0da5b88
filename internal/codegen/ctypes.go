package codegen

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/vera/internal/syntax"
)

// binaryOps maps every operator a BinaryOp may carry to its C spelling.
// Each relational operator has its own entry.
var binaryOps = map[syntax.Token]string{
	syntax.Add: "+",
	syntax.Sub: "-",
	syntax.Mul: "*",
	syntax.Div: "/",
	syntax.Eql: "==",
	syntax.Neq: "!=",
	syntax.Lss: "<",
	syntax.Leq: "<=",
	syntax.Gtr: ">",
	syntax.Geq: ">=",
}

var stepOps = map[syntax.Token]string{
	syntax.Inc: "++",
	syntax.Dec: "--",
}

// cType returns the C type for a declared type. Booleans are ints.
func cType(t syntax.BasicType) (string, bool) {
	switch t {
	case syntax.TypeInteger, syntax.TypeBoolean:
		return "int", true
	case syntax.TypeString:
		return "const char *", true
	}
	return "", false
}

// declarator joins a C type and a name: "int x", "const char *s".
func declarator(ctype, name string) string {
	if strings.HasSuffix(ctype, "*") {
		return ctype + name
	}
	return ctype + " " + name
}

// cReserved lists names that cannot be used as C locals inside main:
// C99 keywords, the object-like macros and types <stdio.h> brings in,
// and the identifiers the generated program relies on.
var cReserved = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
	"_Bool": true, "_Complex": true, "_Imaginary": true,
	"main": true, "printf": true,

	"EOF": true, "NULL": true, "BUFSIZ": true, "FILENAME_MAX": true,
	"FOPEN_MAX": true, "L_tmpnam": true, "L_ctermid": true, "TMP_MAX": true,
	"P_tmpdir": true, "SEEK_SET": true, "SEEK_CUR": true, "SEEK_END": true,
	"stdin": true, "stdout": true, "stderr": true,
	"FILE": true, "fpos_t": true, "size_t": true, "va_list": true,
}

// manglePrefix marks a mangled name. Source names that already carry it
// are mangled too, so distinct source names stay distinct in C.
const manglePrefix = "vera_"

// cName returns the C spelling of a source identifier. Names that would
// clash with C, or that C reserves for the implementation (leading "__"
// or "_" plus an uppercase letter), get the mangle prefix.
func cName(name string) string {
	if cReserved[name] || strings.HasPrefix(name, manglePrefix) || implReserved(name) {
		return manglePrefix + name
	}
	return name
}

func implReserved(name string) bool {
	if len(name) < 2 || name[0] != '_' {
		return false
	}
	return name[1] == '_' || ('A' <= name[1] && name[1] <= 'Z')
}

// cNumber returns integer literal text that C reads as the same decimal
// value; leading zeros would otherwise make it octal.
func cNumber(lit string) string {
	if strings.HasPrefix(lit, "-") {
		return "-" + cNumber(lit[1:])
	}
	trimmed := strings.TrimLeft(lit, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// cQuote returns a C string literal whose value is exactly s.
func cQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' || c == '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '?' && i > 0 && s[i-1] == '?':
			// break up trigraphs
			b.WriteString(`\?`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
