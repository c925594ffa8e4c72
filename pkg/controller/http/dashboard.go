package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/usecase"
	"github.com/secmon-lab/caseboard/pkg/utils/apperr"
)

// DashboardHandler serves the dashboard queries as JSON
type DashboardHandler struct {
	uc usecase.Dashboard
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(uc usecase.Dashboard) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// HandleNewCases returns the recently created cases
func (h *DashboardHandler) HandleNewCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.uc.NewCases(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if cases == nil {
		cases = []*model.Case{}
	}
	writeJSON(w, r, http.StatusOK, cases)
}

// HandleUpdates returns the board of cards with comments. Query
// parameters: all=1 keeps every comment, account=X limits the board.
func (h *DashboardHandler) HandleUpdates(w http.ResponseWriter, r *http.Request) {
	query := model.UpdatesQuery{
		Account: r.URL.Query().Get("account"),
	}
	if v := r.URL.Query().Get("all"); v != "" {
		all, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, goerr.Wrap(err, "invalid all parameter", goerr.V("all", v)), http.StatusBadRequest)
			return
		}
		query.AllComments = all
	}

	board, err := h.uc.NewComments(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, board)
}

// HandleTrending returns the board of trending cards
func (h *DashboardHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	board, err := h.uc.TrendingCards(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, board)
}

// HandleSummary returns card counts
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.uc.Summary(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}

func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	apperr.Handle(r.Context(), err)
	writeError(w, err, http.StatusInternalServerError)
}
