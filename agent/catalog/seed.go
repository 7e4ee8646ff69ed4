package catalog

import (
	"fmt"
	"math/rand"
)

// Bengaluru seed pools.
var (
	seedAreas = []string{
		"Indiranagar", "Koramangala", "MG Road", "Church Street", "HSR Layout",
		"Whitefield", "Jayanagar", "JP Nagar", "Malleshwaram", "Lavelle Road",
		"Brigade Road", "UB City", "Bannerghatta Road", "Electronic City", "Yelahanka",
	}

	seedCuisines = []string{
		"South Indian", "North Indian", "Chinese", "Italian", "Continental",
		"Japanese", "Mexican", "Mediterranean", "Thai", "Fusion",
		"Bengali", "Chettinad", "Punjabi", "Mughlai", "Goan",
	}

	seedSeating = []string{
		"Indoor", "Outdoor", "Rooftop", "Private cabins", "Bar seating",
		"Community tables", "Window seating", "Booth seating", "Terrace", "Garden",
	}

	// Price ranges for two people, in INR.
	seedPriceRanges = []string{
		"₹500-1000", "₹1000-1500", "₹1500-2000", "₹2000-2500", "₹2500-3000",
		"₹3000-4000", "₹4000-5000", "₹5000-6000", "₹6000-8000", "₹8000+",
	}

	seedNames = []string{
		"Spice Garden", "Bengaluru Bytes", "Silicon Spices", "Garden City Grill",
		"Cubbon Cuisine", "Lalbagh Lunches", "Namma Kitchen", "Tech Park Tavern",
		"Kodava Kitchen", "Brigade Bistro", "Infosys Eatery", "Startup Sizzlers",
		"Royal Repast", "Majestic Meals", "Palace Platters", "Coffee Connect",
		"Monsoon Masala", "Mango Mantra", "Windmill Wok", "Bamboo Bytes",
	}

	seedStreets = []string{"Main", "Cross", "Avenue", "Street"}
)

// Seed generates up to len(seedNames) restaurants with varied attributes and
// empty reservation lists.
func Seed(n int, rng *rand.Rand) []Restaurant {
	if n <= 0 || n > len(seedNames) {
		n = len(seedNames)
	}

	restaurants := make([]Restaurant, 0, n)
	for i := 0; i < n; i++ {
		restaurants = append(restaurants, Restaurant{
			ID:         int64(i + 1),
			Name:       seedNames[i],
			Cuisine:    pick(rng, seedCuisines),
			Location:   pick(rng, seedAreas),
			PriceRange: pick(rng, seedPriceRanges),
			Rating:     roundRating(3.5 + rng.Float64()*1.4),
			Seating:    sample(rng, seedSeating, 2+rng.Intn(4)),
			Capacity:   20 + rng.Intn(181),
			OpeningHours: Hours{
				Weekdays: openingWindow(rng),
				Weekends: openingWindow(rng),
			},
			Specialties: []string{
				fmt.Sprintf("Signature dish %d", i+1),
				fmt.Sprintf("Special drink %d", i+1),
			},
			Address:      fmt.Sprintf("%d, %s, %s, Bengaluru", 1+rng.Intn(100), pick(rng, seedStreets), pick(rng, seedAreas)),
			Contact:      fmt.Sprintf("+91 %d", 6000000000+rng.Int63n(4000000000)),
			Reservations: []Reservation{},
		})
	}
	return restaurants
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

func sample(rng *rand.Rand, options []string, n int) []string {
	idx := rng.Perm(len(options))
	if n > len(options) {
		n = len(options)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, options[i])
	}
	return out
}

func openingWindow(rng *rand.Rand) string {
	return fmt.Sprintf("%d:00 AM - %d:00 PM", 8+rng.Intn(5), 9+rng.Intn(3))
}

func roundRating(r float64) float64 {
	return float64(int(r*10+0.5)) / 10
}
