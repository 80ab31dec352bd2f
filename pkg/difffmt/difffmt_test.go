package difffmt

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/speakeasy-api/structdiff"
)

func TestPretty_Scalars(t *testing.T) {
	cases := []struct {
		name string
		v    structdiff.Value
		want string
	}{
		{"nil", structdiff.Nil(), "nil"},
		{"bool", structdiff.Bool(true), "true"},
		{"integer number", structdiff.Int(121221), "121221"},
		{"fraction", structdiff.Number(1.5), "1.5"},
		{"negative zero", structdiff.Number(math.Copysign(0, -1)), "-0"},
		{"nan", structdiff.Number(math.NaN()), "nan"},
		{"+inf", structdiff.Number(math.Inf(1)), "inf"},
		{"-inf", structdiff.Number(math.Inf(-1)), "-inf"},
		{"string", structdiff.String("a\nb"), `"a\nb"`},
		{"function", structdiff.FuncRef(func() {}), "<function>"},
		{"opaque", structdiff.Opaque("userdata", nil), "<userdata>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Pretty(tc.v); got != tc.want {
				t.Errorf("Pretty() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPretty_Composites(t *testing.T) {
	list := structdiff.List(structdiff.Int(1), structdiff.String("x"))
	if got := Pretty(list); got != `[1, "x"]` {
		t.Errorf("list = %q", got)
	}

	obj := structdiff.Object(
		structdiff.Pair{Key: structdiff.String("name"), Val: structdiff.String("w")},
		structdiff.Pair{Key: structdiff.Int(5), Val: structdiff.Bool(false)},
	)
	if got := Pretty(obj); got != `{name: "w", [5]: false}` {
		t.Errorf("object = %q", got)
	}

	nested := structdiff.Object(
		structdiff.Pair{Key: structdiff.String("items"), Val: list},
	)
	if got := Pretty(nested); got != `{items: [1, "x"]}` {
		t.Errorf("nested = %q", got)
	}

	if got := Pretty(structdiff.List()); got != "[]" {
		t.Errorf("empty = %q", got)
	}
}

func TestPretty_CycleSafe(t *testing.T) {
	c := structdiff.NewComposite()
	c.Set(structdiff.String("self"), structdiff.FromComposite(c))
	got := Pretty(structdiff.FromComposite(c))
	if got != "{self: <cycle #1>}" {
		t.Errorf("cyclic render = %q", got)
	}
	// Deterministic across calls, no addresses leak into output.
	if again := Pretty(structdiff.FromComposite(c)); again != got {
		t.Errorf("repeated render differs: %q vs %q", got, again)
	}
}

func TestPathString(t *testing.T) {
	path := []structdiff.Value{structdiff.String("b"), structdiff.Int(3), structdiff.String("two words")}
	if got := PathString(path); got != `value.b[3]["two words"]` {
		t.Errorf("PathString = %q", got)
	}
	if got := PathString(nil); got != "value" {
		t.Errorf("root PathString = %q", got)
	}
}

func intList(vals ...int) structdiff.Value {
	elems := make([]structdiff.Value, len(vals))
	for i, v := range vals {
		elems[i] = structdiff.Int(v)
	}
	return structdiff.List(elems...)
}

func TestReport_ListDiff(t *testing.T) {
	actual := intList(121221, 122211, 121221, 122211, 121221, 122212, 121212, 122112, 122121, 121212, 122121)
	expected := intList(121221, 122211, 121221, 122211, 121221, 122212, 121212, 122112, 121221, 121212, 122121)

	res := structdiff.Equals(actual, expected)
	if res.Equal {
		t.Fatal("expected a mismatch")
	}
	got := Report(actual, expected, res)

	want := strings.Join([]string{
		"lists A and B both have 11 entries",
		"first diverging at index 9, re-converging at A[10], B[10]",
		"common prefix:",
		"= A[1], B[1]:   121221",
		"= A[2], B[2]:   122211",
		"= A[3], B[3]:   121221",
		"= A[4], B[4]:   122211",
		"= A[5], B[5]:   121221",
		"= A[6], B[6]:   122212",
		"= A[7], B[7]:   121212",
		"= A[8], B[8]:   122112",
		"diverging entries:",
		"- A[9]:         122121",
		"+ B[9]:         121221",
		"common suffix:",
		"= A[10], B[10]: 121212",
		"= A[11], B[11]: 122121",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	// Idempotent: a second render of the same mismatch is byte-identical.
	if again := Report(actual, expected, res); again != got {
		t.Error("repeated Report calls differ")
	}
}

func TestReport_DifferentLengths(t *testing.T) {
	actual := intList(1, 2)
	expected := intList(1, 2, 3)
	res := structdiff.Equals(actual, expected)
	got := Report(actual, expected, res)

	if !strings.Contains(got, "list A has 2 entries, list B has 3 entries") {
		t.Errorf("missing size line:\n%s", got)
	}
	if !strings.Contains(got, "+ B[3]: 3") {
		t.Errorf("missing diverging entry:\n%s", got)
	}
	if strings.Contains(got, "common suffix") {
		t.Errorf("unexpected suffix section:\n%s", got)
	}
}

func TestReport_Generic(t *testing.T) {
	actual := structdiff.Object(
		structdiff.Pair{Key: structdiff.String("a"), Val: structdiff.Int(1)},
		structdiff.Pair{Key: structdiff.String("b"), Val: intList(1, 2)},
	)
	expected := structdiff.Object(
		structdiff.Pair{Key: structdiff.String("a"), Val: structdiff.Int(1)},
		structdiff.Pair{Key: structdiff.String("b"), Val: intList(1, 5)},
	)
	res := structdiff.Equals(actual, expected)
	if res.Equal {
		t.Fatal("expected a mismatch")
	}
	got := Report(actual, expected, res)
	if !strings.Contains(got, "values differ at value.b[2]") {
		t.Errorf("missing path line:\n%s", got)
	}
	if !strings.Contains(got, "actual:   2") || !strings.Contains(got, "expected: 5") {
		t.Errorf("missing sub-values:\n%s", got)
	}
}

func TestReport_KeySetMismatchShowsAbsent(t *testing.T) {
	actual := structdiff.Object(structdiff.Pair{Key: structdiff.String("x"), Val: structdiff.Int(1)})
	expected := structdiff.Object(
		structdiff.Pair{Key: structdiff.String("x"), Val: structdiff.Int(1)},
		structdiff.Pair{Key: structdiff.String("y"), Val: structdiff.Int(2)},
	)
	res := structdiff.Equals(actual, expected)
	got := Report(actual, expected, res)
	if !strings.Contains(got, "<absent>") {
		t.Errorf("missing absence marker:\n%s", got)
	}
	if !strings.Contains(got, "key set mismatch") {
		t.Errorf("missing reason:\n%s", got)
	}
}

func TestReport_Equal(t *testing.T) {
	v := intList(1)
	if got := Report(v, v, structdiff.Equals(v, v)); got != "values match\n" {
		t.Errorf("Report on equal values = %q", got)
	}
}

func TestReport_ColorAndTruncation(t *testing.T) {
	actual := intList(1)
	expected := structdiff.List(structdiff.String(strings.Repeat("x", 300)))
	res := structdiff.Equals(actual, expected)

	plain := Report(actual, expected, res)
	if strings.Contains(plain, "\033[") {
		t.Error("color codes present without Color config")
	}
	colored := Report(actual, expected, res, Config{Color: true})
	if !strings.Contains(colored, colorRed) || !strings.Contains(colored, colorGreen) {
		t.Error("color codes missing with Color config")
	}

	tight := Report(actual, expected, res, Config{MaxValueWidth: 20})
	for _, line := range strings.Split(tight, "\n") {
		if strings.HasPrefix(line, "+") && !strings.Contains(line, "...") {
			t.Errorf("long value not truncated: %q", line)
		}
	}
}
