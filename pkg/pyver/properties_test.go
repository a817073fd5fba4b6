package pyver_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/jebel-quant/rhiza/pkg/pyver"
	"github.com/jebel-quant/rhiza/pkg/testutil"
)

// relTuple generates plausible release tuples: 1-4 segments, each 0-999.
type relTuple []int

func (relTuple) Generate(rand *rand.Rand, _ int) reflect.Value {
	ret := make(relTuple, 1+rand.Intn(4))
	for i := range ret {
		ret[i] = rand.Intn(1000)
	}
	return reflect.ValueOf(ret)
}

func (t relTuple) Version() pyver.Version {
	return pyver.Version(t)
}

// suffix generates trailing tags that ParseVersion must strip.
type suffix string

func (suffix) Generate(rand *rand.Rand, _ int) reflect.Value {
	options := []suffix{"", "rc1", "rc2", "a1", "b2", "alpha", "beta", "dev1", "post1"}
	return reflect.ValueOf(options[rand.Intn(len(options))])
}

func TestParseVersionRoundtrip(t *testing.T) {
	t.Parallel()
	fn := func(tuple relTuple) bool {
		ver := tuple.Version()
		reparsed, err := pyver.ParseVersion(ver.String())
		return err == nil && reparsed.Cmp(ver) == 0 && len(reparsed) == len(ver)
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{},
		[]interface{}{relTuple{3, 11}},
		[]interface{}{relTuple{3, 11, 0}},
		[]interface{}{relTuple{0}},
	)
}

func TestParseVersionStripsSuffix(t *testing.T) {
	t.Parallel()
	fn := func(tuple relTuple, tag suffix) bool {
		ver := tuple.Version()
		parsed, err := pyver.ParseVersion(ver.String() + string(tag))
		return err == nil && parsed.Cmp(ver) == 0
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{},
		[]interface{}{relTuple{3, 11, 0}, suffix("rc1")},
		[]interface{}{relTuple{3, 14, 0}, suffix("dev1")},
	)
}

func TestParseVersionIdempotent(t *testing.T) {
	t.Parallel()
	fn := func(tuple relTuple, tag suffix) bool {
		first, err := pyver.ParseVersion(tuple.Version().String() + string(tag))
		if err != nil {
			return false
		}
		second, err := pyver.ParseVersion(first.String())
		return err == nil && second.Cmp(first) == 0 && len(second) == len(first)
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{})
}

func TestCmpReflexive(t *testing.T) {
	t.Parallel()
	fn := func(tuple relTuple) bool {
		return tuple.Version().Cmp(tuple.Version()) == 0
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{})
}

// A version always satisfies ==, >=, and <= of itself, and never >, <,
// or != of itself.
func TestSatisfiesReflexive(t *testing.T) {
	t.Parallel()
	fn := func(tuple relTuple) bool {
		str := tuple.Version().String()
		for op, expected := range map[string]bool{
			"==": true, ">=": true, "<=": true,
			">": false, "<": false, "!=": false,
		} {
			actual, err := pyver.Satisfies(str, op+str)
			if err != nil || actual != expected {
				return false
			}
		}
		return true
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{},
		[]interface{}{relTuple{3, 11}},
		[]interface{}{relTuple{3, 11, 0}},
	)
}

// Exactly one of <, ==, > holds for any pair of versions.
func TestSatisfiesTrichotomy(t *testing.T) {
	t.Parallel()
	fn := func(a, b relTuple) bool {
		v, s := a.Version().String(), b.Version().String()
		count := 0
		for _, op := range []string{"<", "==", ">"} {
			ok, err := pyver.Satisfies(v, op+s)
			if err != nil {
				return false
			}
			if ok {
				count++
			}
		}
		return count == 1
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{},
		[]interface{}{relTuple{3, 11}, relTuple{3, 11, 0}},
	)
}

func TestCmpAntisymmetric(t *testing.T) {
	t.Parallel()
	sign := func(n int) int {
		switch {
		case n < 0:
			return -1
		case n > 0:
			return 1
		default:
			return 0
		}
	}
	fn := func(a, b relTuple) bool {
		return sign(a.Version().Cmp(b.Version())) == -sign(b.Version().Cmp(a.Version()))
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{},
		[]interface{}{relTuple{3, 11}, relTuple{3, 11, 0}},
		[]interface{}{relTuple{3, 11}, relTuple{3, 11}},
	)
}

// Every operator's truth value must line up with Cmp; in particular "<"
// is exactly the negation of ">=", and "==" of "!=".
func TestOperatorDuality(t *testing.T) {
	t.Parallel()
	fn := func(a, b relTuple) bool {
		av, bv := a.Version(), b.Version()
		lt := pyver.SpecifierClause{Op: pyver.CmpOpLT, Version: bv}.Match(av)
		ge := pyver.SpecifierClause{Op: pyver.CmpOpGE, Version: bv}.Match(av)
		eq := pyver.SpecifierClause{Op: pyver.CmpOpEQ, Version: bv}.Match(av)
		ne := pyver.SpecifierClause{Op: pyver.CmpOpNE, Version: bv}.Match(av)
		gt := pyver.SpecifierClause{Op: pyver.CmpOpGT, Version: bv}.Match(av)
		le := pyver.SpecifierClause{Op: pyver.CmpOpLE, Version: bv}.Match(av)
		return lt == !ge && eq == !ne && gt == !le
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{},
		[]interface{}{relTuple{3, 11}, relTuple{3, 11, 0}},
	)
}

func TestSpecifierIsConjunction(t *testing.T) {
	t.Parallel()
	fn := func(v, lo, hi relTuple) bool {
		ver := v.Version()
		loClause := pyver.SpecifierClause{Op: pyver.CmpOpGE, Version: lo.Version()}
		hiClause := pyver.SpecifierClause{Op: pyver.CmpOpLT, Version: hi.Version()}
		spec := pyver.Specifier{loClause, hiClause}
		return spec.Match(ver) == (loClause.Match(ver) && hiClause.Match(ver))
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{})
}

func TestSpecifierWhitespaceTolerant(t *testing.T) {
	t.Parallel()
	fn := func(a, b relTuple) bool {
		tight := ">=" + a.Version().String() + ",<" + b.Version().String()
		loose := " >= " + a.Version().String() + " , < " + b.Version().String() + " "
		tightSpec, err1 := pyver.ParseSpecifier(tight)
		looseSpec, err2 := pyver.ParseSpecifier(loose)
		return err1 == nil && err2 == nil && tightSpec.String() == looseSpec.String()
	}
	testutil.QuickCheck(t, fn, testutil.QuickConfig{})
}
