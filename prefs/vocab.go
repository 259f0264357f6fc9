package prefs

// Canonical restaurant cuisines as stored in the catalog.
var Cuisines = []string{
	"Saudi",
	"Middle Eastern",
	"Lebanese",
	"Turkish",
	"Indian",
	"Pakistani",
	"Italian",
	"French",
	"American",
	"Mexican",
	"Chinese",
	"Japanese",
	"Thai",
	"Seafood",
	"International",
	"Fast Food",
	"Cafe",
	"Desserts",
}

// Canonical restaurant categories as stored in the catalog.
var Categories = []string{
	"Fine Dining",
	"Casual Dining",
	"Family Restaurant",
	"Traditional",
	"Street Food",
	"Cafe",
	"Fast Food",
	"Buffet",
	"Rooftop",
	"Vegetarian",
}

// DefaultAliases maps user codes whose canonical name differs from the plain
// lowercase/underscore normalization. The same table serves candidate
// selection and the local synthesizer.
var DefaultAliases = Aliases{
	"arabic":            "Middle Eastern",
	"arab":              "Middle Eastern",
	"levantine":         "Lebanese",
	"khaleeji":          "Saudi",
	"gulf":              "Saudi",
	"saudi_traditional": "Saudi",
	"najdi":             "Saudi",
	"hijazi":            "Saudi",
	"desi":              "Indian",
	"sushi":             "Japanese",
	"burgers":           "American",
	"coffee":            "Cafe",
	"coffee_shop":       "Cafe",
	"sweets":            "Desserts",
	"fish":              "Seafood",
	"fine":              "Fine Dining",
	"casual":            "Casual Dining",
	"family":            "Family Restaurant",
	"family_friendly":   "Family Restaurant",
	"local":             "Traditional",
	"street":            "Street Food",
	"vegan":             "Vegetarian",
}
