// Package catalog holds the static equipment catalog. Entries are defined in
// code and immutable for the process lifetime; user submissions reference
// them by id.
package catalog

// Category groups equipment entries for display.
type Category string

const (
	CategoryPlay          Category = "play"
	CategoryComfort       Category = "comfort"
	CategorySafety        Category = "safety"
	CategoryAccessibility Category = "accessibility"
)

// Equipment is one catalog entry. Icon is the name of the pictogram the
// frontend renders next to the label.
type Equipment struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Category Category `json:"category"`
}

var equipments = []Equipment{
	{ID: "slide", Label: "Toboggan", Icon: "arrow-down-wide-narrow", Category: CategoryPlay},
	{ID: "swing", Label: "Balançoires", Icon: "orbit", Category: CategoryPlay},
	{ID: "sandbox", Label: "Bac à sable", Icon: "waves", Category: CategoryPlay},
	{ID: "climbing", Label: "Structure d'escalade", Icon: "mountain", Category: CategoryPlay},

	{ID: "picnic", Label: "Tables de pique-nique", Icon: "table-2", Category: CategoryComfort},
	{ID: "water", Label: "Point d'eau", Icon: "droplet", Category: CategoryComfort},
	{ID: "shade", Label: "Zone ombragée", Icon: "umbrella", Category: CategoryComfort},

	{ID: "fenced", Label: "Espace clôturé", Icon: "fence", Category: CategorySafety},
	{ID: "rubber", Label: "Sol souple", Icon: "footprints", Category: CategorySafety},

	{ID: "toddler", Label: "Espace tout-petits", Icon: "baby", Category: CategoryAccessibility},
	{ID: "wheelchair", Label: "Accès PMR", Icon: "accessibility", Category: CategoryAccessibility},
	{ID: "walking", Label: "Balade à pied", Icon: "person-standing", Category: CategoryAccessibility},
	{ID: "inclusive", Label: "Jeux inclusifs", Icon: "heart", Category: CategoryAccessibility},
}

var byID = func() map[string]Equipment {
	m := make(map[string]Equipment, len(equipments))
	for _, e := range equipments {
		m[e.ID] = e
	}
	return m
}()

// All returns the full catalog in display order.
func All() []Equipment {
	out := make([]Equipment, len(equipments))
	copy(out, equipments)
	return out
}

// Lookup returns the entry for id.
func Lookup(id string) (Equipment, bool) {
	e, ok := byID[id]
	return e, ok
}

// Label resolves an equipment id to its display label. Unknown ids pass
// through verbatim so stale references still render something.
func Label(id string) string {
	if e, ok := byID[id]; ok {
		return e.Label
	}
	return id
}

// ByCategory returns the catalog entries for one category, in display order.
func ByCategory(c Category) []Equipment {
	var out []Equipment
	for _, e := range equipments {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// ValidID reports whether id is a known catalog entry.
func ValidID(id string) bool {
	_, ok := byID[id]
	return ok
}
