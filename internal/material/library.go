package material

// Reference densities (g/cm3)
const (
	MetallicFuelDensity = 15.5 // U-Pu-10Zr (20 wt% Zr) as-cast
	SteelDensity        = 8.00 // austenitic stainless, room temperature
	SodiumDensity       = 0.87 // liquid Na near 400 °C
)

// FuelVector is the heavy-metal make-up of a U-Pu-Zr metallic fuel in
// weight percent of the whole alloy.
type FuelVector struct {
	U238  float64
	Pu238 float64
	Pu239 float64
	Pu240 float64
	Pu241 float64
	Pu242 float64
	Zr    float64
}

// Inner and outer core enrichment zones of the reference core.
var (
	InnerFuelVector = FuelVector{U238: 60, Pu238: 0.3, Pu239: 12, Pu240: 4, Pu241: 3, Pu242: 0.7, Zr: 20}
	OuterFuelVector = FuelVector{U238: 63, Pu238: 0.3, Pu239: 10, Pu240: 4, Pu241: 2, Pu242: 0.7, Zr: 20}
)

// PuFraction returns the plutonium weight fraction of the heavy metal.
func (v FuelVector) PuFraction() float64 {
	pu := v.Pu238 + v.Pu239 + v.Pu240 + v.Pu241 + v.Pu242
	hm := pu + v.U238
	if hm == 0 {
		return 0
	}
	return pu / hm
}

// MetallicFuel returns a U-Pu-Zr alloy fuel.
func MetallicFuel(name string, v FuelVector) *Material {
	m := New(name)
	m.AddNuclide("U238", v.U238, WeightPercent).
		AddNuclide("Pu238", v.Pu238, WeightPercent).
		AddNuclide("Pu239", v.Pu239, WeightPercent).
		AddNuclide("Pu240", v.Pu240, WeightPercent).
		AddNuclide("Pu241", v.Pu241, WeightPercent).
		AddNuclide("Pu242", v.Pu242, WeightPercent).
		AddElement("Zr", v.Zr, WeightPercent).
		SetDensity("g/cm3", MetallicFuelDensity)
	m.Depletable = true
	return m
}

// StainlessSteel returns the clad and reflector steel (type 309-like).
func StainlessSteel(name string) *Material {
	m := New(name)
	m.AddElement("C", 0.08, WeightPercent).
		AddElement("Si", 1.00, WeightPercent).
		AddElement("P", 0.045, WeightPercent).
		AddElement("S", 0.030, WeightPercent).
		AddElement("Mn", 2.00, WeightPercent).
		AddElement("Cr", 20.0, WeightPercent).
		AddElement("Ni", 11.0, WeightPercent).
		AddElement("Fe", 65.845, WeightPercent).
		SetDensity("g/cm3", SteelDensity)
	return m
}

// Sodium returns the liquid sodium coolant.
func Sodium(name string) *Material {
	return New(name).
		AddElement("Na", 1.0, AtomPercent).
		SetDensity("g/cm3", SodiumDensity)
}
