package runtime

import (
	"time"

	"github.com/sergev/tlox/lang"
)

// now is replaced in tests.
var now = time.Now

func installPrimitives(in *lang.Interpreter) {
	define := func(name string, arity int, fn lang.NativeFunc) {
		in.DefineNative(name, arity, fn)
	}

	define("clock", 0, primClock)
}

// primClock returns seconds since the Unix epoch with millisecond
// resolution.
func primClock(_ *lang.Interpreter, _ []lang.Value) (lang.Value, error) {
	return lang.NumberValue(float64(now().UnixMilli()) / 1000), nil
}
