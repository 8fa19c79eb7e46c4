package provider

import (
	"sort"
)

type namePool struct {
	male   []string
	female []string
	last   []string // empty: gofakeit last names
}

// gofakeit has no gendered first names and no locales.
var namePools = map[string]namePool{
	"en_US": {
		male: []string{
			"James", "Robert", "John", "Michael", "David", "William", "Richard", "Joseph",
			"Thomas", "Christopher", "Charles", "Daniel", "Matthew", "Anthony", "Mark",
			"Donald", "Steven", "Andrew", "Paul", "Joshua", "Kenneth", "Kevin", "Brian",
			"George", "Timothy", "Ronald", "Jason", "Edward", "Jeffrey", "Ryan",
		},
		female: []string{
			"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan",
			"Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Betty", "Sandra", "Margaret",
			"Ashley", "Kimberly", "Emily", "Donna", "Michelle", "Carol", "Amanda",
			"Melissa", "Deborah", "Stephanie", "Dorothy", "Rebecca", "Sharon", "Laura", "Cynthia",
		},
	},
	"en_GB": {
		male: []string{
			"Oliver", "George", "Harry", "Jack", "Jacob", "Noah", "Charlie", "Thomas",
			"Oscar", "William", "James", "Henry", "Leo", "Alfie", "Joshua", "Freddie",
			"Archie", "Ethan", "Isaac", "Alexander",
		},
		female: []string{
			"Olivia", "Amelia", "Isla", "Ava", "Emily", "Isabella", "Mia", "Poppy",
			"Ella", "Lily", "Jessica", "Sophie", "Grace", "Evie", "Charlotte", "Ruby",
			"Florence", "Freya", "Alice", "Matilda",
		},
		last: []string{
			"Smith", "Jones", "Taylor", "Brown", "Williams", "Wilson", "Johnson", "Davies",
			"Patel", "Robinson", "Wright", "Thompson", "Evans", "Walker", "White", "Roberts",
			"Green", "Hall", "Thomas", "Clarke",
		},
	},
	"de_DE": {
		male: []string{
			"Lukas", "Leon", "Finn", "Jonas", "Paul", "Felix", "Elias", "Maximilian",
			"Ben", "Noah", "Luis", "Moritz", "Jakob", "Tim", "Niklas", "Julian",
			"Alexander", "Tobias", "Florian", "Matthias",
		},
		female: []string{
			"Emma", "Mia", "Hannah", "Sofia", "Lea", "Anna", "Lena", "Marie",
			"Emilia", "Clara", "Leonie", "Johanna", "Laura", "Katharina", "Julia",
			"Sarah", "Lisa", "Sophie", "Charlotte", "Greta",
		},
		last: []string{
			"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner",
			"Becker", "Schulz", "Hoffmann", "Schäfer", "Koch", "Bauer", "Richter",
			"Klein", "Wolf", "Schröder", "Neumann", "Schwarz", "Zimmermann",
		},
	},
}

// Locales returns the locales Name accepts, sorted.
func Locales() []string {
	locales := make([]string, 0, len(namePools))
	for l := range namePools {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// SupportsLocale reports whether Name has data for locale.
func SupportsLocale(locale string) bool {
	_, ok := namePools[locale]
	return ok
}
