package playgrounds

import "time"

// Sample data served when the database is unreachable or empty, so the
// directory never renders blank. Versioned in code, never persisted and
// never cached as authoritative.

var sampleTime = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func sampleImage(id, sig string) Image {
	return Image{
		ID:        id,
		URL:       "https://source.unsplash.com/random/800x600/?playground,park&sig=" + sig,
		Status:    StatusApproved,
		CreatedAt: sampleTime,
	}
}

// SamplePlaygrounds returns the fixed fallback data set. Each call returns
// a fresh copy so callers can attach distances without corrupting the
// source.
func SamplePlaygrounds() []Playground {
	samples := []Playground{
		{
			ID:          1,
			Name:        "Parc de la Tête d'Or",
			Description: "Grand parc avec plusieurs aires de jeux pour enfants de tous âges. Comprend des balançoires, toboggans, structures d'escalade et bac à sable.",
			Address:     "Place Général Leclerc",
			City:        "Lyon",
			PostalCode:  "69006",
			Latitude:    45.7741,
			Longitude:   4.8553,
			Images:      []Image{sampleImage("sample-1a", "1"), sampleImage("sample-1b", "2")},
			Features:    []string{"Toboggan", "Balançoires", "Bac à sable", "Tables de pique-nique", "Point d'eau", "Zone ombragée"},
			AgeRange:    "2-12 ans",
			EquipmentIDs: []string{
				"slide", "swing", "sandbox", "picnic", "water", "shade",
			},
		},
		{
			ID:           2,
			Name:         "Parc Blandan",
			Description:  "Aire de jeux moderne avec structures en bois et métal. Idéal pour les enfants de 3 à 10 ans.",
			Address:      "Rue du Repos",
			City:         "Lyon",
			PostalCode:   "69007",
			Latitude:     45.7456,
			Longitude:    4.8563,
			Images:       []Image{sampleImage("sample-2a", "3"), sampleImage("sample-2b", "4")},
			Features:     []string{"Toboggan", "Structure d'escalade", "Sol souple"},
			AgeRange:     "3-10 ans",
			EquipmentIDs: []string{"slide", "climbing", "rubber"},
		},
		{
			ID:           3,
			Name:         "Parc de la Feyssine",
			Description:  "Aire de jeux naturelle au bord du Rhône. Structures en bois et cordes, parfait pour les aventuriers.",
			Address:      "Chemin de la Feyssine",
			City:         "Villeurbanne",
			PostalCode:   "69100",
			Latitude:     45.7842,
			Longitude:    4.8813,
			Images:       []Image{sampleImage("sample-3a", "5"), sampleImage("sample-3b", "6")},
			Features:     []string{"Structure d'escalade", "Tables de pique-nique", "Balade à pied"},
			AgeRange:     "4-12 ans",
			EquipmentIDs: []string{"climbing", "picnic", "walking"},
		},
		{
			ID:           4,
			Name:         "Parc Saint-Clair",
			Description:  "Petit parc ombragé avec aire de jeux sécurisée pour les tout-petits. Balançoires et petit toboggan.",
			Address:      "Quai Clemenceau",
			City:         "Caluire-et-Cuire",
			PostalCode:   "69300",
			Latitude:     45.7897,
			Longitude:    4.8442,
			Images:       []Image{sampleImage("sample-4a", "7")},
			Features:     []string{"Balançoires", "Toboggan", "Espace clôturé", "Espace tout-petits"},
			AgeRange:     "1-6 ans",
			EquipmentIDs: []string{"swing", "slide", "fenced", "toddler"},
		},
		{
			ID:           5,
			Name:         "Parc de Gerland",
			Description:  "Vaste aire de jeux inclusive avec sol souple et jeux accessibles à tous les enfants.",
			Address:      "Allée Pierre de Coubertin",
			City:         "Lyon",
			PostalCode:   "69007",
			Latitude:     45.7256,
			Longitude:    4.8320,
			Images:       []Image{sampleImage("sample-5a", "8")},
			Features:     []string{"Jeux inclusifs", "Sol souple", "Accès PMR", "Point d'eau"},
			AgeRange:     "2-10 ans",
			EquipmentIDs: []string{"inclusive", "rubber", "wheelchair", "water"},
		},
	}

	out := make([]Playground, len(samples))
	for i, s := range samples {
		s.ShareCode = ShareCode(s.ID)
		s.Status = StatusApproved
		s.CreatedAt = sampleTime
		s.UpdatedAt = sampleTime
		s.SubmittedBy = 1
		out[i] = s
	}
	return out
}
