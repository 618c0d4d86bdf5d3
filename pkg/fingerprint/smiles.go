package fingerprint

// Syntactic SMILES reader. It checks that the string is well formed
// (atoms, bonds, balanced branches, paired ring closures, valid bracket
// atoms) and produces the linear token stream the featurizers hash.
// Chemical semantics beyond parseability are not validated.

import (
	"strings"
)

type atom struct {
	symbol   string // normalized element symbol, e.g. "C", "N", "Cl"
	aromatic bool
	charge   int
	bracket  bool
}

type molecule struct {
	atoms []atom
	// tokens is the stream as written: one entry per atom, bond, branch
	// marker or separator. Ring closure digits are folded into ringBonds.
	tokens    []string
	ringBonds int
	branches  int
	doubleB   int
	tripleB   int
}

// twoCharOrganic lists the organic-subset symbols spelled with two
// characters. Checked before single-character symbols.
var twoCharOrganic = []string{"Cl", "Br"}

const singleOrganic = "BCNOPSFI"
const aromaticOrganic = "bcnops"
const bondChars = "-=#$:/\\"

// parseSMILES validates s and returns its molecule. Every failure is an
// *InvalidSMILESError carrying the input and a reason.
func parseSMILES(s string) (*molecule, error) {
	fail := func(reason string) (*molecule, error) {
		return nil, &InvalidSMILESError{SMILES: s, Reason: reason}
	}
	if s == "" {
		return fail("empty string")
	}

	mol := &molecule{}
	openRings := map[string]bool{}
	depth := 0
	lastWasAtom := false
	lastWasBond := false

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return fail("unterminated bracket atom")
			}
			a, ok := parseBracketAtom(s[i+1 : i+end])
			if !ok {
				return fail("malformed bracket atom " + s[i:i+end+1])
			}
			mol.atoms = append(mol.atoms, a)
			mol.tokens = append(mol.tokens, a.symbol)
			i += end + 1
			lastWasAtom, lastWasBond = true, false

		case c == '(':
			if !lastWasAtom {
				return fail("branch must follow an atom")
			}
			depth++
			mol.branches++
			mol.tokens = append(mol.tokens, "(")
			i++
			lastWasAtom, lastWasBond = false, false

		case c == ')':
			if depth == 0 {
				return fail("unmatched closing parenthesis")
			}
			if lastWasBond {
				return fail("dangling bond before closing parenthesis")
			}
			depth--
			mol.tokens = append(mol.tokens, ")")
			i++
			lastWasAtom, lastWasBond = true, false

		case c >= '0' && c <= '9':
			// A ring closure follows an atom, or a bond that qualifies it.
			if !lastWasAtom && !lastWasBond {
				return fail("ring closure must follow an atom")
			}
			toggleRing(openRings, string(c), mol)
			i++
			lastWasAtom, lastWasBond = true, false

		case c == '%':
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return fail("'%' must be followed by two digits")
			}
			if !lastWasAtom && !lastWasBond {
				return fail("ring closure must follow an atom")
			}
			toggleRing(openRings, s[i+1:i+3], mol)
			i += 3
			lastWasAtom, lastWasBond = true, false

		case strings.IndexByte(bondChars, c) >= 0:
			if lastWasBond {
				return fail("two consecutive bond symbols")
			}
			switch c {
			case '=':
				mol.doubleB++
			case '#':
				mol.tripleB++
			}
			mol.tokens = append(mol.tokens, string(c))
			i++
			lastWasAtom, lastWasBond = false, true

		case c == '.':
			if lastWasBond {
				return fail("dangling bond before dot separator")
			}
			mol.tokens = append(mol.tokens, ".")
			i++
			lastWasAtom, lastWasBond = false, false

		case c == '*':
			mol.atoms = append(mol.atoms, atom{symbol: "*"})
			mol.tokens = append(mol.tokens, "*")
			i++
			lastWasAtom, lastWasBond = true, false

		default:
			sym, n := readOrganicSymbol(s[i:])
			if n == 0 {
				return fail("unexpected character " + string(c))
			}
			aromatic := sym[0] >= 'a'
			norm := sym
			if aromatic {
				norm = strings.ToUpper(sym)
			}
			mol.atoms = append(mol.atoms, atom{symbol: norm, aromatic: aromatic})
			mol.tokens = append(mol.tokens, sym)
			i += n
			lastWasAtom, lastWasBond = true, false
		}
	}

	if depth != 0 {
		return fail("unmatched opening parenthesis")
	}
	if lastWasBond {
		return fail("dangling bond at end of input")
	}
	if len(openRings) != 0 {
		return fail("unclosed ring bond")
	}
	if len(mol.atoms) == 0 {
		return fail("no atoms")
	}
	return mol, nil
}

func toggleRing(open map[string]bool, label string, mol *molecule) {
	if open[label] {
		delete(open, label)
		mol.ringBonds++
	} else {
		open[label] = true
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// readOrganicSymbol reads an organic-subset atom symbol from the head of
// s, returning the symbol and its byte length (0 if none matches).
func readOrganicSymbol(s string) (string, int) {
	for _, sym := range twoCharOrganic {
		if strings.HasPrefix(s, sym) {
			return sym, 2
		}
	}
	c := s[0]
	if strings.IndexByte(singleOrganic, c) >= 0 || strings.IndexByte(aromaticOrganic, c) >= 0 {
		return string(c), 1
	}
	return "", 0
}

// parseBracketAtom validates the body of a [...] atom:
// [isotope] symbol [chirality] [Hcount] [charge] [:map]
func parseBracketAtom(body string) (atom, bool) {
	if body == "" {
		return atom{}, false
	}
	i := 0
	for i < len(body) && isDigit(body[i]) { // isotope
		i++
	}
	if i == len(body) {
		return atom{}, false
	}

	var a atom
	a.bracket = true
	c := body[i]
	switch {
	case c == '*':
		a.symbol = "*"
		i++
	case c >= 'A' && c <= 'Z':
		a.symbol = string(c)
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			a.symbol += string(body[i])
			i++
		}
	case c >= 'a' && c <= 'z':
		// aromatic symbols allowed in brackets: b c n o p s se as
		a.aromatic = true
		sym := string(c)
		if i+1 < len(body) && (body[i:i+2] == "se" || body[i:i+2] == "as") {
			sym = body[i : i+2]
			i += 2
		} else {
			if !strings.Contains(aromaticOrganic, sym) {
				return atom{}, false
			}
			i++
		}
		a.symbol = strings.ToUpper(sym[:1]) + sym[1:]
	default:
		return atom{}, false
	}

	for i < len(body) && body[i] == '@' { // chirality
		i++
	}
	if i < len(body) && body[i] == 'H' { // explicit hydrogens
		i++
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}
	for i < len(body) && (body[i] == '+' || body[i] == '-') { // charge
		if body[i] == '+' {
			a.charge++
		} else {
			a.charge--
		}
		i++
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}
	if i < len(body) && body[i] == ':' { // atom map
		i++
		if i == len(body) {
			return atom{}, false
		}
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}
	return a, i == len(body)
}
