package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/remostars/club-standings/internal/platform/logging"
	"github.com/remostars/club-standings/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	clubService      *usecase.ClubService
	resultService    *usecase.ResultService
	standingsService *usecase.StandingsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	clubService *usecase.ClubService,
	resultService *usecase.ResultService,
	standingsService *usecase.StandingsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		clubService:      clubService,
		resultService:    resultService,
		standingsService: standingsService,
		logger:           logger.Named("handler"),
		validator:        validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parsePageRequest(r *http.Request) (usecase.PageRequest, error) {
	var req usecase.PageRequest
	query := r.URL.Query()
	for _, param := range []struct {
		name string
		dst  *int
	}{
		{name: "page", dst: &req.Page},
		{name: "page_size", dst: &req.PageSize},
	} {
		raw := strings.TrimSpace(query.Get(param.name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return usecase.PageRequest{}, fmt.Errorf("%w: %s must be positive integer", usecase.ErrInvalidInput, param.name)
		}
		*param.dst = v
	}
	return req, nil
}
