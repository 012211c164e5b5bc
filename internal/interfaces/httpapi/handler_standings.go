package httpapi

import "net/http"

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	pageReq, err := parsePageRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.standingsService.GetTablePage(ctx, pageReq)
	if err != nil {
		h.logger.ErrorContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	rules := h.standingsService.Rules()
	writeSuccess(ctx, w, http.StatusOK, standingsTableDTO{
		Rules: pointsRulesDTO{
			Win:  rules.WinPoints,
			Draw: rules.DrawPoints,
			Loss: rules.LossPoints,
		},
		Table: pageToDTO(page, standingsRowToDTO),
	})
}
