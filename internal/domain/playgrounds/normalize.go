package playgrounds

import (
	"parcacote/internal/catalog"
)

// Normalize maps a raw backend row into the internal entity shape: fields
// are renamed, equipment ids become display labels through the static
// catalog (unknown ids pass through verbatim), and missing nested
// collections become empty slices so JSON never carries null.
func Normalize(raw Raw) Playground {
	features := make([]string, 0, len(raw.EquipmentIDs))
	for _, id := range raw.EquipmentIDs {
		features = append(features, catalog.Label(id))
	}

	images := make([]Image, 0, len(raw.Images))
	for _, img := range raw.Images {
		images = append(images, Image{
			ID:        img.ID,
			URL:       img.URL,
			Status:    Status(img.Status),
			CreatedAt: img.CreatedAt,
		})
	}

	equipmentIDs := raw.EquipmentIDs
	if equipmentIDs == nil {
		equipmentIDs = []string{}
	}

	return Playground{
		ID:              raw.ID,
		ShareCode:       ShareCode(raw.ID),
		Name:            raw.Name,
		Description:     raw.Description,
		Address:         raw.Address,
		City:            raw.City,
		PostalCode:      raw.PostalCode,
		Latitude:        raw.Latitude,
		Longitude:       raw.Longitude,
		Images:          images,
		Features:        features,
		AgeRange:        raw.AgeRange,
		Status:          Status(raw.Status),
		RejectionReason: raw.Rejection,
		CreatedAt:       raw.CreatedAt,
		UpdatedAt:       raw.UpdatedAt,
		SubmittedBy:     raw.SubmittedBy,
		EquipmentIDs:    equipmentIDs,
	}
}

// NormalizeAll maps a slice of raw rows, preserving order.
func NormalizeAll(raws []Raw) []Playground {
	out := make([]Playground, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}
