package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/remostars/club-standings/internal/domain/result"
	"github.com/remostars/club-standings/internal/usecase"
)

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	pageReq, err := parsePageRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.resultService.ListResultsPage(ctx, pageReq)
	if err != nil {
		h.logger.ErrorContext(ctx, "list results failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	clubNames, err := h.clubNames(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pageToDTO(page, func(item result.MatchResult) resultDTO {
		return resultToDTO(item, clubNames)
	}))
}

// StreamResults writes every visible result as newline delimited JSON,
// newest first, without paging.
func (h *Handler) StreamResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamResults")
	defer span.End()

	results, err := h.resultService.ListResults(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "stream results failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	clubNames, err := h.clubNames(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	encoder := sonic.ConfigDefault.NewEncoder(w)
	flusher, _ := w.(http.Flusher)
	for item := range results {
		if err := ctx.Err(); err != nil {
			return
		}
		if err := encoder.Encode(resultToDTO(item, clubNames)); err != nil {
			h.logger.WarnContext(ctx, "stream results aborted", "error", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (h *Handler) AddResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddResult")
	defer span.End()

	var req addResultRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.resultService.AddResult(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "add result failed",
			"home_club_id", input.HomeClubID,
			"away_club_id", input.AwayClubID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	clubNames, err := h.clubNames(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, resultToDTO(item, clubNames))
}

func (h *Handler) ImportResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportResults")
	defer span.End()

	var req importResultsRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.AddResultInput, 0, len(req.Results))
	for idx, entry := range req.Results {
		input, err := entry.toInput()
		if err != nil {
			writeError(ctx, w, fmt.Errorf("entry %d: %w", idx, err))
			return
		}
		inputs = append(inputs, input)
	}

	items, err := h.resultService.ImportResults(ctx, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "import results failed", "count", len(inputs), "error", err)
		writeError(ctx, w, err)
		return
	}

	clubNames, err := h.clubNames(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	out := make([]resultDTO, 0, len(items))
	for _, item := range items {
		out = append(out, resultToDTO(item, clubNames))
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetResult")
	defer span.End()

	resultID := strings.TrimSpace(r.PathValue("resultID"))
	item, err := h.resultService.GetResult(ctx, resultID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	h.writeResult(ctx, w, item)
}

// LatestResult serves the first result of the listing order.
func (h *Handler) LatestResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LatestResult")
	defer span.End()

	item, err := h.resultService.LatestResult(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	h.writeResult(ctx, w, item)
}

func (h *Handler) writeResult(ctx context.Context, w http.ResponseWriter, item result.MatchResult) {
	clubNames, err := h.clubNames(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, resultToDTO(item, clubNames))
}

func (h *Handler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteResult")
	defer span.End()

	resultID := strings.TrimSpace(r.PathValue("resultID"))
	if err := h.resultService.DeleteResult(ctx, resultID); err != nil {
		h.logger.WarnContext(ctx, "delete result failed", "result_id", resultID, "error", err)
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clubNames(ctx context.Context) (map[string]string, error) {
	clubs, err := h.clubService.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs for result names failed", "error", err)
		return nil, err
	}
	out := make(map[string]string, len(clubs))
	for _, item := range clubs {
		out[item.ID] = item.Name
	}
	return out, nil
}

func (req addResultRequest) toInput() (usecase.AddResultInput, error) {
	matchDate, err := parseMatchDate(req.MatchDate, req.KickoffTime)
	if err != nil {
		return usecase.AddResultInput{}, err
	}
	return usecase.AddResultInput{
		MatchType:  req.MatchType,
		HomeClubID: req.HomeClubID,
		AwayClubID: req.AwayClubID,
		HomeScore:  *req.HomeScore,
		AwayScore:  *req.AwayScore,
		MatchDate:  matchDate,
		Venue:      req.Venue,
	}, nil
}

func parseMatchDate(date, kickoff string) (time.Time, error) {
	date = strings.TrimSpace(date)
	kickoff = strings.TrimSpace(kickoff)

	if ts, err := time.Parse(time.RFC3339, date); err == nil {
		if kickoff != "" {
			return time.Time{}, fmt.Errorf("%w: kickoffTime cannot be combined with a full matchDate timestamp", usecase.ErrInvalidInput)
		}
		return ts.UTC(), nil
	}

	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: matchDate must be YYYY-MM-DD or RFC3339", usecase.ErrInvalidInput)
	}
	if kickoff == "" {
		return result.AtDefaultKickoff(day), nil
	}

	clock, err := time.Parse("15:04", kickoff)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: kickoffTime must be HH:MM", usecase.ErrInvalidInput)
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}
