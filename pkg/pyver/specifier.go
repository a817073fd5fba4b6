package pyver

import (
	"fmt"
	"strings"
)

// CmpOp is a comparison operator within a specifier clause.
type CmpOp int

const (
	CmpOpEQ CmpOp = iota
	CmpOpNE
	CmpOpLE
	CmpOpGE
	CmpOpLT
	CmpOpGT
)

func (op CmpOp) String() string {
	str, ok := map[CmpOp]string{
		CmpOpEQ: "==",
		CmpOpNE: "!=",
		CmpOpLE: "<=",
		CmpOpGE: ">=",
		CmpOpLT: "<",
		CmpOpGT: ">",
	}[op]
	if !ok {
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
	return str
}

func (op CmpOp) eval(cmp int) bool {
	switch op {
	case CmpOpEQ:
		return cmp == 0
	case CmpOpNE:
		return cmp != 0
	case CmpOpLE:
		return cmp <= 0
	case CmpOpGE:
		return cmp >= 0
	case CmpOpLT:
		return cmp < 0
	case CmpOpGT:
		return cmp > 0
	default:
		panic(fmt.Errorf("invalid CmpOp: %d", op))
	}
}

// SpecifierClause is one operator+version unit within a specifier.
type SpecifierClause struct {
	Op      CmpOp
	Version Version
}

// Match reports whether ver satisfies the clause.
func (clause SpecifierClause) Match(ver Version) bool {
	return clause.Op.eval(ver.Cmp(clause.Version))
}

func (clause SpecifierClause) String() string {
	return clause.Op.String() + clause.Version.String()
}

// Specifier is a comma-separated conjunction of clauses; a version
// satisfies the Specifier iff it satisfies every clause.
type Specifier []SpecifierClause

// ParseSpecifier parses a specifier string such as ">=3.11,<3.14".
//
// Clauses are split on ",", with whitespace tolerated around each clause
// and between the operator and the version.  A clause with no leading
// operator is an implicit "==".  An empty specifier is invalid.
func ParseSpecifier(str string) (Specifier, error) {
	clauseStrs := strings.Split(str, ",")
	ret := make(Specifier, 0, len(clauseStrs))
	for _, clauseStr := range clauseStrs {
		clause, err := parseSpecifierClause(strings.TrimSpace(clauseStr))
		if err != nil {
			return nil, err
		}
		ret = append(ret, clause)
	}
	return ret, nil
}

// operators are tried longest first so that "<" can't claim the front of
// "<=".
var operators = []struct {
	Text string
	Op   CmpOp
}{
	{">=", CmpOpGE},
	{"<=", CmpOpLE},
	{"==", CmpOpEQ},
	{"!=", CmpOpNE},
	{">", CmpOpGT},
	{"<", CmpOpLT},
}

func parseSpecifierClause(str string) (SpecifierClause, error) {
	ret := SpecifierClause{Op: CmpOpEQ} // no operator means "=="
	rest := str
	for _, cand := range operators {
		if strings.HasPrefix(rest, cand.Text) {
			ret.Op = cand.Op
			rest = rest[len(cand.Text):]
			break
		}
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return ret, &VersionSpecifierError{
			Input:  str,
			Reason: fmt.Sprintf("Invalid specifier %q: missing version after operator", str),
		}
	}
	ver, err := ParseVersion(rest)
	if err != nil {
		return ret, &VersionSpecifierError{
			Input:  str,
			Reason: fmt.Sprintf("Invalid specifier %q: %v", str, err),
		}
	}
	ret.Version = ver
	return ret, nil
}

func (spec Specifier) String() string {
	clauses := make([]string, 0, len(spec))
	for _, clause := range spec {
		clauses = append(clauses, clause.String())
	}
	return strings.Join(clauses, ",")
}

// Match reports whether ver satisfies every clause of the specifier.
func (spec Specifier) Match(ver Version) bool {
	for _, clause := range spec {
		if !clause.Match(ver) {
			return false
		}
	}
	return true
}

// Satisfies reports whether the concrete version string satisfies the
// specifier string.
func Satisfies(version, specifier string) (bool, error) {
	ver, err := ParseVersion(version)
	if err != nil {
		return false, err
	}
	spec, err := ParseSpecifier(specifier)
	if err != nil {
		return false, err
	}
	return spec.Match(ver), nil
}
