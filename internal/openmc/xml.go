package openmc

import "encoding/xml"

// Element types of the engine's XML input files.

type materialsXML struct {
	XMLName   xml.Name      `xml:"materials"`
	Materials []materialXML `xml:"material"`
}

type materialXML struct {
	ID          int          `xml:"id,attr"`
	Name        string       `xml:"name,attr,omitempty"`
	Depletable  bool         `xml:"depletable,attr,omitempty"`
	Temperature float64      `xml:"temperature,attr,omitempty"`
	Density     densityXML   `xml:"density"`
	Nuclides    []nuclideXML `xml:"nuclide"`
}

type densityXML struct {
	Units string  `xml:"units,attr"`
	Value float64 `xml:"value,attr"`
}

type nuclideXML struct {
	Name string  `xml:"name,attr"`
	AO   float64 `xml:"ao,attr,omitempty"`
	WO   float64 `xml:"wo,attr,omitempty"`
}

type geometryXML struct {
	XMLName  xml.Name        `xml:"geometry"`
	Cells    []cellXML       `xml:"cell"`
	Lattices []hexLatticeXML `xml:"hex_lattice"`
	Surfaces []surfaceXML    `xml:"surface"`
}

type cellXML struct {
	ID       int    `xml:"id,attr"`
	Name     string `xml:"name,attr,omitempty"`
	Material string `xml:"material,attr,omitempty"`
	Fill     int    `xml:"fill,attr,omitempty"`
	Region   string `xml:"region,attr,omitempty"`
	Universe int    `xml:"universe,attr"`
}

type hexLatticeXML struct {
	ID          int    `xml:"id,attr"`
	Name        string `xml:"name,attr,omitempty"`
	NRings      int    `xml:"n_rings,attr"`
	Orientation string `xml:"orientation,attr"`
	Pitch       string `xml:"pitch"`
	Outer       int    `xml:"outer,omitempty"`
	Center      string `xml:"center"`
	Universes   string `xml:"universes"`
}

type surfaceXML struct {
	ID       int    `xml:"id,attr"`
	Name     string `xml:"name,attr,omitempty"`
	Type     string `xml:"type,attr"`
	Coeffs   string `xml:"coeffs,attr"`
	Boundary string `xml:"boundary,attr,omitempty"`
}

type settingsXML struct {
	XMLName           xml.Name    `xml:"settings"`
	RunMode           string      `xml:"run_mode"`
	Particles         int         `xml:"particles"`
	Batches           int         `xml:"batches"`
	Inactive          int         `xml:"inactive"`
	Seed              int64       `xml:"seed,omitempty"`
	Source            sourceXML   `xml:"source"`
	Output            outputXML   `xml:"output"`
	TemperatureMethod string      `xml:"temperature_method,omitempty"`
	Trigger           *triggerXML `xml:"trigger"`
}

type sourceXML struct {
	Type     string   `xml:"type,attr"`
	Strength float64  `xml:"strength,attr"`
	Particle string   `xml:"particle,attr"`
	Space    spaceXML `xml:"space"`
}

type spaceXML struct {
	Type       string `xml:"type,attr"`
	Parameters string `xml:"parameters"`
}

type outputXML struct {
	Tallies bool `xml:"tallies"`
}

type triggerXML struct {
	Active        bool `xml:"active"`
	MaxBatches    int  `xml:"max_batches"`
	BatchInterval int  `xml:"batch_interval,omitempty"`
}

type talliesXML struct {
	XMLName xml.Name    `xml:"tallies"`
	Meshes  []meshXML   `xml:"mesh"`
	Filters []filterXML `xml:"filter"`
	Tallies []tallyXML  `xml:"tally"`
}

type meshXML struct {
	ID         int    `xml:"id,attr"`
	Name       string `xml:"name,attr,omitempty"`
	Dimension  string `xml:"dimension"`
	LowerLeft  string `xml:"lower_left"`
	UpperRight string `xml:"upper_right"`
}

type filterXML struct {
	ID   int    `xml:"id,attr"`
	Type string `xml:"type,attr"`
	Bins string `xml:"bins"`
}

type tallyXML struct {
	ID       int    `xml:"id,attr"`
	Name     string `xml:"name,attr,omitempty"`
	Filters  string `xml:"filters,omitempty"`
	Nuclides string `xml:"nuclides,omitempty"`
	Scores   string `xml:"scores"`
}

type plotsXML struct {
	XMLName xml.Name  `xml:"plots"`
	Plots   []plotXML `xml:"plot"`
}

type plotXML struct {
	ID       int        `xml:"id,attr"`
	Filename string     `xml:"filename,attr"`
	Type     string     `xml:"type,attr"`
	Basis    string     `xml:"basis,attr"`
	ColorBy  string     `xml:"color_by,attr"`
	Origin   string     `xml:"origin"`
	Width    string     `xml:"width"`
	Pixels   string     `xml:"pixels"`
	Colors   []colorXML `xml:"color"`
}

type colorXML struct {
	ID  int    `xml:"id,attr"`
	RGB string `xml:"rgb,attr"`
}
