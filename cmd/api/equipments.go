package main

import (
	"net/http"

	"parcacote/internal/catalog"
)

// listEquipmentsHandler godoc
//
//	@Summary		Equipment catalog
//	@Description	The full list of supported equipment and feature types.
//	@Tags			equipments
//	@Produce		json
//	@Success		200	{object}	[]catalog.Equipment
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Router			/equipments [get]
func (app *application) listEquipmentsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.jsonResponse(w, http.StatusOK, catalog.All()); err != nil {
		app.internalServerError(w, r, err)
	}
}
