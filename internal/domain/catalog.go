package domain

type Activity struct {
	Code        string
	Name        string
	BaseDays    float64
	DriverGroup string
}

type Driver struct {
	Dimension  DriverDimension
	Option     string
	Multiplier float64
}

type Risk struct {
	ID     string
	Name   string
	Weight float64
}

// ContingencyBand maps risk scores up to and including UpTo onto Pct.
// A nil UpTo marks the open-ended top band.
type ContingencyBand struct {
	UpTo *float64
	Pct  float64
}

// Catalog is the immutable reference data an estimate is computed against.
// It is loaded once and passed explicitly to the calculator.
type Catalog struct {
	CatalogVersion string
	DriversVersion string
	RiskmapVersion string

	Activities []Activity
	Drivers    []Driver
	Risks      []Risk
	Bands      []ContingencyBand

	// Presets are named driver selections offered as starting points.
	Presets map[string]DriverSelection
}

// Activity looks up an activity by code.
func (c *Catalog) Activity(code string) (Activity, bool) {
	for _, a := range c.Activities {
		if a.Code == code {
			return a, true
		}
	}
	return Activity{}, false
}

// Driver looks up the multiplier row for one option of a dimension.
func (c *Catalog) Driver(dim DriverDimension, option string) (Driver, bool) {
	for _, d := range c.Drivers {
		if d.Dimension == dim && d.Option == option {
			return d, true
		}
	}
	return Driver{}, false
}

// Risk looks up a risk by id.
func (c *Catalog) Risk(id string) (Risk, bool) {
	for _, r := range c.Risks {
		if r.ID == id {
			return r, true
		}
	}
	return Risk{}, false
}

// DriverOptions returns the options of one dimension in catalog order.
func (c *Catalog) DriverOptions(dim DriverDimension) []Driver {
	var out []Driver
	for _, d := range c.Drivers {
		if d.Dimension == dim {
			out = append(out, d)
		}
	}
	return out
}

// Preset returns the named driver preset.
func (c *Catalog) Preset(name string) (DriverSelection, bool) {
	p, ok := c.Presets[name]
	return p, ok
}
