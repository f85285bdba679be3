package fuzztests

import "testing"

// maxFuzzInput caps one input; longer inputs are truncated.
const maxFuzzInput = 1 << 16

var languageSeeds = []string{
	"",
	"//! module doc\n/// item doc\nfun main() {}\n",
	"import std.io as stdio;\nimport std.fs;\n",
	"pub fun max[T: Ord](a: T, b: T): T where T: Copy {\n\tif a > b { a } else { b }\n}\n",
	"fun decl(x: int32);\n",
	"struct Point[T] implements Show where T: Num {\n\tpub x: T,\n\ty: T,\n}\n",
	"struct Handle;\n",
	"enum Shape {\n\tUnit,\n\tCircle(float64),\n\tRect { w: float64, h: float64 },\n}\n",
	"interface Show: Display + Debug {\n\tfun show(self): String;\n}\n",
	"type Pair[A, B] = #(A, B);\ntype Opaque;\n",
	"fun f() {\n\tlet x = 1 + 2 * 3 - -4;\n\tlet y: int32 = (x as int32) << 2;\n\tx == y && !false || true\n}\n",
	"fun g() {\n\twhile x < 10 { x = x + 1; }\n\tloop { break; }\n}\n",
	"fun h(v: Shape) {\n\tmatch v {\n\t\tShape.Circle(r) => r,\n\t\t_ => 0.0,\n\t}\n}\n",
	"fun k() { let c = |a, b| a + b; c(1, 2) }\n",
	"fun s() { let p = Point { x: 1, y: 2 }; p.x }\n",
	"fun l() { [1, 2, 3]; #(1, \"two\", 'c'); 0xFF; 1_000; 1.5e10 }\n",
	"fun bad() { return 1\n}\n",
	"fun f() { { { { } } } }\n",
	"42",
	"fun f() { \"unterminated }\n",
	"fun f() { 99999999999999999999999 }\n",
	"pub import std.io;\n",
}

func addSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
