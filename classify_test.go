package structdiff

import (
	"math"
	"testing"
)

func TestClassifyNumber(t *testing.T) {
	cases := []struct {
		name string
		f    float64
		want NumClass
	}{
		{"finite", 1.5, NumFinite},
		{"negative finite", -7, NumFinite},
		{"nan", math.NaN(), NumNaN},
		{"+inf", math.Inf(1), NumPosInf},
		{"-inf", math.Inf(-1), NumNegInf},
		{"+0", 0.0, NumPosZero},
		{"-0", math.Copysign(0, -1), NumNegZero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyNumber(tc.f); got != tc.want {
				t.Errorf("ClassifyNumber(%v) = %v, want %v", tc.f, got, tc.want)
			}
		})
	}
}

func TestSignedZeroPredicates(t *testing.T) {
	pos := Number(0.0)
	neg := Number(math.Copysign(0, -1))

	// +0 and -0 compare equal under ordinary equality...
	if !Equals(pos, neg).Equal {
		t.Error("+0 and -0 compared unequal under ordinary equality")
	}
	// ...but the sign-sensitive predicates tell them apart.
	if !IsPlusZero(pos) || IsPlusZero(neg) {
		t.Error("IsPlusZero misclassified a zero")
	}
	if !IsMinusZero(neg) || IsMinusZero(pos) {
		t.Error("IsMinusZero misclassified a zero")
	}
}

func TestNumericPredicates(t *testing.T) {
	if !IsNaN(Number(math.NaN())) || IsNaN(Number(1)) || IsNaN(String("nan")) {
		t.Error("IsNaN misclassified a value")
	}
	if !IsInf(Number(math.Inf(1)), 1) || !IsInf(Number(math.Inf(-1)), -1) {
		t.Error("IsInf missed an infinity")
	}
	if !IsInf(Number(math.Inf(-1)), 0) || IsInf(Number(1), 0) {
		t.Error("IsInf sign 0 misclassified a value")
	}
}

func TestKindString(t *testing.T) {
	if KindComposite.String() != "composite" || KindNil.String() != "nil" {
		t.Error("Kind.String() returned unexpected name")
	}
	if NumNegZero.String() != "-0" {
		t.Error("NumClass.String() returned unexpected name")
	}
}
