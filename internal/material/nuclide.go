package material

import (
	"fmt"
	"strconv"
	"strings"
)

// symbols lists the elements by atomic number, starting at Z=1.
var symbols = strings.Fields(`
H He Li Be B C N O F Ne Na Mg Al Si P S Cl Ar K Ca Sc Ti V Cr Mn Fe Co Ni Cu Zn
Ga Ge As Se Br Kr Rb Sr Y Zr Nb Mo Tc Ru Rh Pd Ag Cd In Sn Sb Te I Xe Cs Ba La
Ce Pr Nd Pm Sm Eu Gd Tb Dy Ho Er Tm Yb Lu Hf Ta W Re Os Ir Pt Au Hg Tl Pb Bi Po
At Rn Fr Ra Ac Th Pa U Np Pu Am Cm Bk Cf Es Fm Md No Lr`)

var atomicNumbers = func() map[string]int {
	m := make(map[string]int, len(symbols))
	for i, s := range symbols {
		m[s] = i + 1
	}
	return m
}()

// Nuclide identifies an isotope in the engine's naming scheme, e.g. U238,
// Am242_m1.
type Nuclide struct {
	Symbol string
	Z      int
	A      int
	Meta   int
}

// ZAID returns the nuclide in ZZZAAAM form.
func (n Nuclide) ZAID() int {
	return n.Z*10000 + n.A*10 + n.Meta
}

func (n Nuclide) String() string {
	s := n.Symbol + strconv.Itoa(n.A)
	if n.Meta > 0 {
		s += "_m" + strconv.Itoa(n.Meta)
	}
	return s
}

// Element returns the atomic number of an element symbol.
func Element(symbol string) (int, error) {
	z, ok := atomicNumbers[symbol]
	if !ok {
		return 0, fmt.Errorf("unknown element %q", symbol)
	}
	return z, nil
}

// Natural reports whether n names an element's natural-abundance data set
// (mass number 0, e.g. C0 in ENDF/B-VII.1 libraries).
func (n Nuclide) Natural() bool { return n.A == 0 }

// ParseNuclide parses a nuclide name such as "U238", "H1", "Am242_m1" or
// the natural-element form "C0".
func ParseNuclide(name string) (Nuclide, error) {
	base, meta := name, 0
	if i := strings.Index(name, "_m"); i >= 0 {
		m, err := strconv.Atoi(name[i+2:])
		if err != nil || m < 1 {
			return Nuclide{}, fmt.Errorf("bad metastable state in nuclide %q", name)
		}
		base, meta = name[:i], m
	}

	i := strings.IndexFunc(base, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 {
		return Nuclide{}, fmt.Errorf("nuclide %q has no mass number", name)
	}
	sym := base[:i]
	z, err := Element(sym)
	if err != nil {
		return Nuclide{}, fmt.Errorf("nuclide %q: %w", name, err)
	}
	a, err := strconv.Atoi(base[i:])
	if err != nil || (a < z && a != 0) || (a == 0 && meta > 0) {
		return Nuclide{}, fmt.Errorf("nuclide %q has a bad mass number", name)
	}
	return Nuclide{Symbol: sym, Z: z, A: a, Meta: meta}, nil
}
