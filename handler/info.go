package handler

import "net/http"

// ShowInfo godoc
// @Summary Show build information
// @Description This endpoint returns the service name, tech stack, build time, git SHA, version and dependency list
// @Tags info
// @Produce json
// @Success 200 {object} data.BuildInfo
// @Router /info [get]
func (h *Handler) showInfoHandler(w http.ResponseWriter, r *http.Request) {
	err := h.encodeJSON(w, http.StatusOK, h.service.BuildInfo(), nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
