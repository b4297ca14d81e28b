// Seeds a starter crop and mandi catalogue. Run once against a fresh
// database: go run ./scripts/seed
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/BhupenderNayak/krishi-unnati-app/config"
	"github.com/BhupenderNayak/krishi-unnati-app/pkg/database"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type seedCrop struct {
	nameEn, nameHi, category, season string
	soilTypes                        []string
	water                            string
	durationDays                     int
}

type seedMandi struct {
	name, city, state string
	lat, lon          float64
}

var crops = []seedCrop{
	{"Wheat", "गेहूं", "cereal", "rabi", []string{"alluvial", "clay"}, "medium", 120},
	{"Rice", "चावल", "cereal", "kharif", []string{"alluvial", "clay"}, "high", 150},
	{"Maize", "मक्का", "cereal", "kharif", []string{"alluvial", "red"}, "medium", 100},
	{"Cotton", "कपास", "cash_crop", "kharif", []string{"black"}, "medium", 180},
	{"Chickpea", "चना", "pulse", "rabi", []string{"sandy", "clay"}, "low", 110},
	{"Mustard", "सरसों", "cash_crop", "rabi", []string{"alluvial", "sandy"}, "low", 125},
	{"Tomato", "टमाटर", "vegetable", "zaid", []string{"red", "alluvial"}, "medium", 90},
	{"Onion", "प्याज", "vegetable", "rabi", []string{"alluvial", "red"}, "medium", 130},
	{"Turmeric", "हल्दी", "spice", "kharif", []string{"laterite", "red"}, "medium", 240},
	{"Watermelon", "तरबूज", "fruit", "zaid", []string{"sandy"}, "high", 80},
}

var mandis = []seedMandi{
	{"Azadpur Mandi", "Delhi", "Delhi", 28.7077, 77.1795},
	{"Vashi APMC", "Navi Mumbai", "Maharashtra", 19.0771, 72.9981},
	{"Yeshwanthpur APMC", "Bengaluru", "Karnataka", 13.0280, 77.5402},
	{"Lasalgaon Mandi", "Nashik", "Maharashtra", 20.1427, 74.2390},
	{"Koyambedu Market", "Chennai", "Tamil Nadu", 13.0694, 80.1948},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, c := range crops {
		_, err := pool.Exec(ctx,
			`INSERT INTO crops (id, name_en, name_hi, category, season, soil_type, water_requirement, duration_days)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
             ON CONFLICT (name_en) DO NOTHING`,
			uuid.NewString(), c.nameEn, c.nameHi, c.category, c.season, pq.Array(c.soilTypes), c.water, c.durationDays,
		)
		if err != nil {
			log.Fatalf("seed crop %s: %v", c.nameEn, err)
		}
	}
	fmt.Printf("seeded %d crops\n", len(crops))

	for _, m := range mandis {
		_, err := pool.Exec(ctx,
			`INSERT INTO mandis (id, name, city, state, latitude, longitude)
             VALUES ($1, $2, $3, $4, $5, $6)
             ON CONFLICT (name) DO NOTHING`,
			uuid.NewString(), m.name, m.city, m.state, m.lat, m.lon,
		)
		if err != nil {
			log.Fatalf("seed mandi %s: %v", m.name, err)
		}
	}
	fmt.Printf("seeded %d mandis\n", len(mandis))
}
