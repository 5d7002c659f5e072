package mock

import "fmt"

// Func identifies a mocked function within a FuncMap.
type Func int

// FuncMap describes the functions a Mock can expect calls for. It is supplied by whatever defines
// the mocked interface.
type FuncMap interface {
	// ArgCount returns the number of arguments fn takes, or a negative value if fn is unknown.
	ArgCount(fn Func) int

	// FuncName returns the name of fn used in diagnostics.
	FuncName(fn Func) string

	// ArgName returns the name of argument arg of fn used in diagnostics.
	ArgName(fn Func, arg int) string
}

// Signature names a mocked function and its positional arguments.
type Signature struct {
	// Name is the function name.
	Name string

	// Args names each argument in order. Its length is the function's arity.
	Args []string
}

// Table is a FuncMap indexed by Func, so a set of constants declared with iota can index into a
// Table literal.
type Table []Signature

// Ensure Table satisfies the FuncMap interface at compile time.
var _ FuncMap = Table(nil)

// Add appends a signature and returns the Func that identifies it.
func (t *Table) Add(sig Signature) Func {
	*t = append(*t, sig)
	return Func(len(*t) - 1)
}

// ArgCount implements FuncMap.
func (t Table) ArgCount(fn Func) int {
	if !t.known(fn) {
		return -1
	}
	return len(t[fn].Args)
}

// FuncName implements FuncMap.
func (t Table) FuncName(fn Func) string {
	if !t.known(fn) {
		return fmt.Sprintf("func(%d)", int(fn))
	}
	return t[fn].Name
}

// ArgName implements FuncMap.
func (t Table) ArgName(fn Func, arg int) string {
	if !t.known(fn) || arg < 0 || arg >= len(t[fn].Args) {
		return fmt.Sprintf("arg%d", arg)
	}
	return t[fn].Args[arg]
}

func (t Table) known(fn Func) bool {
	return fn >= 0 && int(fn) < len(t)
}
