package windzone

type Region string

const (
	RegionA Region = "A"
	RegionW Region = "W"
)

type Terrain string

const (
	TerrainUrban   Terrain = "urban"
	TerrainOpen    Terrain = "open"
	TerrainCoastal Terrain = "coastal"
)

type Topography string

const (
	TopoFlat  Topography = "flat"
	TopoHill  Topography = "hill"
	TopoSteep Topography = "steep"
)

type Shelter string

const (
	ShelterSheltered Shelter = "sheltered"
	ShelterExposed   Shelter = "exposed"
)

// Zone is the wind-loading classification of a site. SED means the
// prescriptive tables do not cover the site and a qualified engineer
// must design the structure directly.
type Zone string

const (
	ZoneLow      Zone = "Low"
	ZoneMedium   Zone = "Medium"
	ZoneHigh     Zone = "High"
	ZoneVeryHigh Zone = "Very High"
	ZoneSED      Zone = "SED"
)

type Input struct {
	Region     Region     `json:"region"`
	Terrain    Terrain    `json:"terrain"`
	Topography Topography `json:"topography"`
	Shelter    Shelter    `json:"shelter"`
	LeeZone    bool       `json:"lee_zone"`
}

type Result struct {
	Zone             Zone   `json:"zone"`
	RequiresEngineer bool   `json:"requires_engineer"`
	Notes            string `json:"notes"`
}

type rule struct {
	match func(Input) bool
	zone  Zone
	note  string
}

// Region rule sets are ordered; the first satisfied rule wins and later
// rules (including the safety-net overrides) are never consulted.
var regionARules = []rule{
	{
		match: func(in Input) bool {
			return in.Terrain == TerrainUrban && in.Topography == TopoFlat && in.Shelter == ShelterSheltered
		},
		zone: ZoneLow,
		note: "Region A: sheltered urban site on flat ground.",
	},
	{
		match: func(in Input) bool {
			return in.Terrain == TerrainUrban && in.Topography == TopoFlat && in.Shelter == ShelterExposed
		},
		zone: ZoneMedium,
		note: "Region A: exposed urban site on flat ground.",
	},
	{
		match: func(in Input) bool {
			return (in.Terrain == TerrainOpen && in.Topography == TopoFlat) ||
				(in.Terrain == TerrainUrban && in.Topography == TopoHill && in.Shelter == ShelterSheltered)
		},
		zone: ZoneHigh,
		note: "Region A: open flat terrain or sheltered urban hill site.",
	},
	{
		match: func(in Input) bool {
			return in.Topography == TopoHill || in.Terrain == TerrainCoastal
		},
		zone: ZoneVeryHigh,
		note: "Region A: hill topography or coastal terrain.",
	},
}

var regionWRules = []rule{
	{
		match: func(in Input) bool {
			return in.Topography == TopoFlat && in.Shelter == ShelterSheltered
		},
		zone: ZoneHigh,
		note: "Region W: sheltered site on flat ground.",
	},
	{
		match: func(in Input) bool {
			return in.Topography == TopoHill || in.Terrain == TerrainCoastal
		},
		zone: ZoneVeryHigh,
		note: "Region W: hill topography or coastal terrain.",
	},
}

// Safety-net overrides apply to every region, including unrecognized
// region codes, whenever no region rule has already classified the site.
var overrideRules = []rule{
	{
		match: func(in Input) bool { return in.Topography == TopoSteep },
		zone:  ZoneSED,
		note:  "Steep topography requires specific engineering design.",
	},
	{
		match: func(in Input) bool { return in.LeeZone },
		zone:  ZoneSED,
		note:  "Lee zone requires specific engineering design.",
	},
}

// Classify maps a site description to its wind zone. It is total: every
// input yields a zone, and a combination no rule covers resolves to the
// conservative Very High default rather than an error.
func Classify(in Input) Result {
	if in.Region == RegionA {
		if res, ok := firstMatch(regionARules, in); ok {
			return res
		}
	}
	if in.Region == RegionW {
		if res, ok := firstMatch(regionWRules, in); ok {
			return res
		}
	}
	if res, ok := firstMatch(overrideRules, in); ok {
		return res
	}
	return Result{
		Zone:  ZoneVeryHigh,
		Notes: "No prescriptive rule matched; conservative default applied.",
	}
}

func firstMatch(rules []rule, in Input) (Result, bool) {
	for _, r := range rules {
		if r.match(in) {
			return Result{
				Zone:             r.zone,
				RequiresEngineer: r.zone == ZoneSED,
				Notes:            r.note,
			}, true
		}
	}
	return Result{}, false
}
