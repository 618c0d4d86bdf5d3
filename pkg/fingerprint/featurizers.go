package fingerprint

// Hash-based featurizers. Each kind folds structural features of the
// token stream into a fixed-size vector through FNV-1a, so identical
// inputs always map to identical fingerprints. They stand in for a
// native toolkit binding while keeping the same calling contract.

import (
	"fmt"
	"hash/fnv"
	"strings"
)

const (
	hashedBits = 2048 // morgan / rdkit / atompairs / topo width
	maccsBits  = 167
	maxPathLen = 7  // rdkit linear path limit
	maxPairSep = 30 // atom pair separation cap
)

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// morganFingerprint hashes the circular environment of every atom up to
// the given radius, one bit per (atom, radius) environment.
func morganFingerprint(mol *molecule, radius int) Fingerprint {
	fp := newFingerprint(hashedBits)
	n := len(mol.atoms)
	for i := 0; i < n; i++ {
		for r := 0; r <= radius; r++ {
			lo := max(0, i-r)
			hi := min(n, i+r+1)
			env := make([]string, 0, hi-lo)
			for _, a := range mol.atoms[lo:hi] {
				env = append(env, a.symbol)
			}
			key := fmt.Sprintf("m%d|%s", r, strings.Join(env, "."))
			fp.set(int(hashString(key) % hashedBits))
		}
	}
	return fp
}

// rdkitFingerprint hashes every contiguous token path up to maxPathLen.
func rdkitFingerprint(mol *molecule) Fingerprint {
	fp := newFingerprint(hashedBits)
	toks := mol.tokens
	for start := range toks {
		for length := 1; length <= maxPathLen && start+length <= len(toks); length++ {
			key := "p|" + strings.Join(toks[start:start+length], "")
			fp.set(int(hashString(key) % hashedBits))
		}
	}
	return fp
}

// atomPairsFingerprint counts (symbol, separation, symbol) pairs. The
// pair is canonicalized so that argument order never changes the key.
func atomPairsFingerprint(mol *molecule) Fingerprint {
	fp := newCountFingerprint(hashedBits)
	n := len(mol.atoms)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := mol.atoms[i].symbol, mol.atoms[j].symbol
			if b < a {
				a, b = b, a
			}
			key := fmt.Sprintf("ap|%s|%d|%s", a, min(j-i, maxPairSep), b)
			fp.add(int(hashString(key) % hashedBits))
		}
	}
	return fp
}

// torsionFingerprint counts sliding 4-atom windows along the chain.
func torsionFingerprint(mol *molecule) Fingerprint {
	fp := newCountFingerprint(hashedBits)
	for i := 0; i+4 <= len(mol.atoms); i++ {
		parts := make([]string, 4)
		for k := 0; k < 4; k++ {
			parts[k] = mol.atoms[i+k].symbol
		}
		key := "tt|" + strings.Join(parts, "~")
		fp.add(int(hashString(key) % hashedBits))
	}
	return fp
}

// maccsElementBits maps common elements to fixed key positions. The
// layout is stable across builds; it is not the published MACCS table.
var maccsElementBits = map[string]int{
	"B": 2, "C": 3, "N": 4, "O": 5, "F": 6, "P": 7, "S": 8,
	"Cl": 9, "Br": 10, "I": 11, "Si": 12, "Se": 13, "As": 14, "*": 15,
}

// maccsFingerprint sets 167 structural keys: element presence, ring and
// branch counts, bond orders, charge and aromaticity flags, plus hashed
// adjacent-atom pairs in the remaining key range.
func maccsFingerprint(mol *molecule) Fingerprint {
	fp := newFingerprint(maccsBits)

	heavy := 0
	hetero := 0
	for _, a := range mol.atoms {
		if idx, ok := maccsElementBits[a.symbol]; ok {
			fp.set(idx)
		} else {
			fp.set(16) // uncommon element
		}
		if a.symbol != "C" && a.symbol != "*" {
			hetero++
		}
		heavy++
		if a.aromatic {
			fp.set(20)
		}
		if a.charge > 0 {
			fp.set(21)
		}
		if a.charge < 0 {
			fp.set(22)
		}
		if a.bracket {
			fp.set(23)
		}
	}

	for t, limit := range map[int]int{30: 1, 31: 2, 32: 3} {
		if mol.ringBonds >= limit {
			fp.set(t)
		}
	}
	for t, limit := range map[int]int{35: 1, 36: 2, 37: 4} {
		if mol.branches >= limit {
			fp.set(t)
		}
	}
	if mol.doubleB > 0 {
		fp.set(40)
	}
	if mol.tripleB > 0 {
		fp.set(41)
	}
	for t, limit := range map[int]int{45: 3, 46: 8, 47: 16, 48: 24} {
		if heavy >= limit {
			fp.set(t)
		}
	}
	for t, limit := range map[int]int{50: 1, 51: 3, 52: 6} {
		if hetero >= limit {
			fp.set(t)
		}
	}

	// Adjacent pairs land in keys [60, 167).
	for i := 0; i+1 < len(mol.atoms); i++ {
		key := "mk|" + mol.atoms[i].symbol + "|" + mol.atoms[i+1].symbol
		fp.set(60 + int(hashString(key)%(maccsBits-60)))
	}
	return fp
}
