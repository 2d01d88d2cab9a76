package service

import "github.com/iudanet/starmap/internal/models"

// DefaultResources returns the catalog seeded into an empty store
func DefaultResources() []models.Resource {
	type row struct {
		id, label, category, color string
		order                      int
	}

	rows := []row{
		// Сырье
		{"wolfram-ore", "Wolfram Ore", "Raw ores", "#e07030", 1},
		{"titanium-ore", "Titanium Ore", "Raw ores", "#aabbcc", 2},
		{"calcium-ore", "Calcium Ore", "Raw ores", "#e8e0b8", 3},
		{"quartz-ore", "Quartz Ore", "Raw ores", "#88ddff", 4},
		{"sulphur-ore", "Sulphur Ore", "Raw ores", "#ddcc22", 5},
		{"coalore", "Coal Ore", "Raw ores", "#667788", 6},
		{"helium3", "Helium-3", "Raw ores", "#cc88ff", 7},
		{"biomass", "Biomass", "Raw ores", "#44cc66", 8},

		{"basic-building", "Basic Building Material", "Construction", "#7788aa", 10},
		{"interm-building", "Intermediate Building Material", "Construction", "#6699bb", 11},
		{"quartz-building", "Quartz Building Material", "Construction", "#55aacc", 12},

		{"wolfram-bar", "Wolfram Bar", "Wolfram products", "#e07030", 20},
		{"wolfram-wire", "Wolfram Wire", "Wolfram products", "#cc5520", 21},
		{"wolfram-plate", "Wolfram Plate", "Wolfram products", "#d06525", 22},
		{"wolfram-powder", "Wolfram Powder", "Wolfram products", "#bb4418", 23},

		{"titanium-bar", "Titanium Bar", "Titanium products", "#aabbcc", 30},
		{"titanium-rod", "Titanium Rod", "Titanium products", "#99aacc", 31},
		{"titanium-sheet", "Titanium Sheet", "Titanium products", "#88aadd", 32},
		{"titanium-beam", "Titanium Beam", "Titanium products", "#77aaee", 33},

		{"calcium-powder", "Calcium Powder", "Calcium products", "#e0d8b0", 40},
		{"calcium-block", "Calcium Block", "Calcium products", "#d5cda0", 41},
		{"calcite-sheets", "Calcite Sheets", "Calcium products", "#cac290", 42},

		{"pressurized-helium", "Pressurized Helium", "Helium products", "#cc88ff", 50},

		{"sulphuric-acid", "Sulphuric Acid", "Chemistry", "#aacc00", 60},
		{"chemicals", "Chemicals", "Chemistry", "#88ee44", 61},
		{"basic-fuel", "Basic Fuel", "Chemistry", "#ff6644", 62},
		{"hardening-agent", "Hardening Agent", "Chemistry", "#ffaa44", 63},

		{"ceramics", "Ceramics", "Components", "#ccaa88", 70},
		{"glass", "Glass", "Components", "#aaddff", 71},
		{"synthetic-silicon", "Synthetic Silicon", "Components", "#88aaff", 72},
		{"electronics", "Electronics", "Components", "#44aaff", 73},
		{"battery", "Battery", "Components", "#ffcc00", 74},
		{"accumulator", "Accumulator", "Components", "#ffaa00", 75},
		{"inductor", "Inductor", "Components", "#ee9900", 76},
		{"stator", "Stator", "Components", "#dd8800", 77},
		{"rotor", "Rotor", "Components", "#cc7700", 78},

		{"electromagnet", "Electromagnet", "Advanced components", "#aa44ff", 80},
		{"supermagnet", "Supermagnet", "Advanced components", "#9922ff", 81},
		{"em-coil", "Electromagnetic Coil", "Advanced components", "#8800ee", 82},
		{"turbine", "Turbine", "Advanced components", "#7700cc", 83},
		{"stabilizer", "Stabilizer", "Advanced components", "#6600bb", 84},
		{"condenser", "Condenser", "Advanced components", "#5500aa", 85},
		{"pressure-tank", "Pressure Tank", "Advanced components", "#440099", 86},
		{"valve", "Valve", "Advanced components", "#330088", 87},
		{"arc-reactor", "Arc Reactor", "Advanced components", "#ff2266", 88},
		{"antimatter-gen", "Antimatter Generator", "Advanced components", "#ff0044", 89},
		{"laser-emitter", "Laser Emitter", "Advanced components", "#ff4400", 90},
		{"scanner", "Scanner", "Advanced components", "#ff6600", 91},

		{"airlock", "Airlock", "Equipment", "#44ccaa", 100},
		{"applicator", "Applicator", "Equipment", "#33bbaa", 101},
		{"biofilament", "Biofilament", "Equipment", "#22aa55", 102},
		{"bioprinter", "Bioprinter", "Equipment", "#119944", 103},
		{"carbon-sonar", "Carbon Sonar", "Equipment", "#558877", 104},
		{"containment", "Containment Tank", "Equipment", "#5566aa", 105},
		{"control-sys", "Control Systems", "Equipment", "#4455bb", 106},
		{"aerogel", "Aerogel", "Equipment", "#88ccee", 107},
		{"impeller", "Impeller", "Equipment", "#77bbdd", 108},
	}

	resources := make([]models.Resource, 0, len(rows))
	for _, r := range rows {
		resources = append(resources, models.Resource{
			ID:        r.id,
			Label:     r.label,
			Category:  r.category,
			Color:     r.color,
			SortOrder: r.order,
		})
	}
	return resources
}
