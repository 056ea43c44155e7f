package material

import "fmt"

type isotope struct {
	name      string
	abundance float64 // atom fraction
	mass      float64 // atomic mass, u
}

// Natural isotopic compositions (IUPAC) for the elements used by structural,
// coolant and fuel-matrix materials.
var natural = map[string][]isotope{
	"H": {
		{"H1", 0.99984426, 1.00782503},
		{"H2", 0.00015574, 2.01410178},
	},
	"B": {
		{"B10", 0.199, 10.01293695},
		{"B11", 0.801, 11.00930536},
	},
	"C": {
		{"C12", 0.9893, 12.0},
		{"C13", 0.0107, 13.00335484},
	},
	"N": {
		{"N14", 0.99636, 14.00307401},
		{"N15", 0.00364, 15.00010890},
	},
	"O": {
		{"O16", 0.99757, 15.99491462},
		{"O17", 0.00038, 16.99913176},
		{"O18", 0.00205, 17.99915961},
	},
	"Na": {
		{"Na23", 1.0, 22.98976928},
	},
	"Al": {
		{"Al27", 1.0, 26.98153853},
	},
	"Si": {
		{"Si28", 0.92223, 27.97692653},
		{"Si29", 0.04685, 28.97649466},
		{"Si30", 0.03092, 29.97377014},
	},
	"P": {
		{"P31", 1.0, 30.97376200},
	},
	"S": {
		{"S32", 0.9499, 31.97207117},
		{"S33", 0.0075, 32.97145891},
		{"S34", 0.0425, 33.96786700},
		{"S36", 0.0001, 35.96708071},
	},
	"Ti": {
		{"Ti46", 0.0825, 45.95262772},
		{"Ti47", 0.0744, 46.95175879},
		{"Ti48", 0.7372, 47.94794198},
		{"Ti49", 0.0541, 48.94786568},
		{"Ti50", 0.0518, 49.94478689},
	},
	"Cr": {
		{"Cr50", 0.04345, 49.94604183},
		{"Cr52", 0.83789, 51.94050623},
		{"Cr53", 0.09501, 52.94064815},
		{"Cr54", 0.02365, 53.93887916},
	},
	"Mn": {
		{"Mn55", 1.0, 54.93804391},
	},
	"Fe": {
		{"Fe54", 0.05845, 53.93960899},
		{"Fe56", 0.91754, 55.93493633},
		{"Fe57", 0.02119, 56.93539284},
		{"Fe58", 0.00282, 57.93327443},
	},
	"Ni": {
		{"Ni58", 0.68077, 57.93534241},
		{"Ni60", 0.26223, 59.93078588},
		{"Ni61", 0.011399, 60.93105557},
		{"Ni62", 0.036346, 61.92834537},
		{"Ni64", 0.009255, 63.92796682},
	},
	"Zr": {
		{"Zr90", 0.5145, 89.90469876},
		{"Zr91", 0.1122, 90.90564022},
		{"Zr92", 0.1715, 91.90503532},
		{"Zr94", 0.1738, 93.90631252},
		{"Zr96", 0.0280, 95.90827762},
	},
	"Mo": {
		{"Mo92", 0.1453, 91.90680796},
		{"Mo94", 0.0915, 93.90508490},
		{"Mo95", 0.1584, 94.90583877},
		{"Mo96", 0.1667, 95.90467612},
		{"Mo97", 0.0960, 96.90601812},
		{"Mo98", 0.2439, 97.90540482},
		{"Mo100", 0.0982, 99.90747180},
	},
	"W": {
		{"W180", 0.0012, 179.9467108},
		{"W182", 0.2650, 181.94820394},
		{"W183", 0.1431, 182.95022275},
		{"W184", 0.3064, 183.95093092},
		{"W186", 0.2843, 185.9543628},
	},
}

func naturalIsotopes(symbol string) ([]isotope, error) {
	iso, ok := natural[symbol]
	if !ok {
		if _, err := Element(symbol); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("no natural composition for element %s", symbol)
	}
	return iso, nil
}
