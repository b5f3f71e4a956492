package comments

import "time"

var sampleTime = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

// SampleComments returns the fixed fallback comment set, keyed to the
// sample playgrounds, newest first per playground. Fresh copy on each call.
func SampleComments() []Comment {
	samples := []Comment{
		{ID: 1, PlaygroundID: 1, Content: "Superbe parc avec beaucoup d'activités pour les enfants. Les aires de jeux sont bien entretenues.", Rating: 5, Author: "Parent123", CreatedAt: sampleTime.AddDate(0, 0, -7)},
		{ID: 2, PlaygroundID: 1, Content: "Très agréable, mais peut être bondé le week-end. Préférez y aller en semaine.", Rating: 4, Author: "MamanLyon", CreatedAt: sampleTime.AddDate(0, 0, -14)},
		{ID: 3, PlaygroundID: 2, Content: "Aire de jeux moderne et sécurisée. Mes enfants ont adoré les structures d'escalade.", Rating: 5, Author: "PapaActif", CreatedAt: sampleTime.AddDate(0, 0, -3)},
		{ID: 4, PlaygroundID: 3, Content: "Cadre naturel magnifique. Parfait pour une journée en famille.", Rating: 5, Author: "NatureLover", CreatedAt: sampleTime.AddDate(0, 0, -5)},
		{ID: 5, PlaygroundID: 4, Content: "Idéal pour les tout-petits. L'espace clôturé est très rassurant.", Rating: 4, Author: "JeuneMaman", CreatedAt: sampleTime.AddDate(0, 0, -10)},
	}

	out := make([]Comment, len(samples))
	copy(out, samples)
	return out
}

// SampleCommentsFor filters the fixed set down to one playground.
func SampleCommentsFor(playgroundID int64) []Comment {
	out := []Comment{}
	for _, c := range SampleComments() {
		if c.PlaygroundID == playgroundID {
			out = append(out, c)
		}
	}
	return out
}
