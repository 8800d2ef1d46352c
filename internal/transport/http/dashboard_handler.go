package http

import (
	"net/http"
	"strings"

	"github.com/IgorGrieder/encurtador-console/internal/console"
	"github.com/IgorGrieder/encurtador-console/internal/constants"
	"github.com/IgorGrieder/encurtador-console/internal/links"
	"github.com/IgorGrieder/encurtador-console/pkg/httputils"
)

const maxSearchLength = 256

// DashboardSource is the read side of the console session.
type DashboardSource interface {
	View() console.View
	Snapshot() console.Snapshot
	ShortURL(code string) string
}

type DashboardHandler struct {
	source DashboardSource
}

func NewDashboardHandler(source DashboardSource) *DashboardHandler {
	return &DashboardHandler{source: source}
}

type dashboardResponse struct {
	Loaded      bool               `json:"loaded"`
	Count       int                `json:"count"`
	TotalClicks int64              `json:"total_clicks"`
	TopLink     string             `json:"top_link"`
	Creating    bool               `json:"creating"`
	Message     string             `json:"message,omitempty"`
	Severity    constants.Severity `json:"severity,omitempty"`
}

type linkResponse struct {
	links.Link
	ShortURL string `json:"short_url"`
}

type linksResponse struct {
	Loaded bool           `json:"loaded"`
	Query  string         `json:"query,omitempty"`
	Links  []linkResponse `json:"links"`
}

// Dashboard returns the aggregates over the whole link set.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	v := h.source.View()

	resp := dashboardResponse{
		Loaded:      v.Loaded,
		Count:       v.Summary.Count,
		TotalClicks: v.Summary.TotalClicks,
		TopLink:     v.Summary.TopLinkCode,
		Creating:    v.Form.Creating,
	}
	if v.Message != "" {
		resp.Message = v.Message
		resp.Severity = v.Severity
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessDashboardFound, resp)
}

// Links returns the snapshot filtered by the q query parameter. The filter
// is independent of the operator's own search.
func (h *DashboardHandler) Links(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) > maxSearchLength {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequest.WithMessage("q is too long"))
		return
	}
	q = strings.TrimSpace(q)

	snap := h.source.Snapshot()
	filtered := links.Filter(snap.Links, q)

	out := make([]linkResponse, 0, len(filtered))
	for _, l := range filtered {
		out = append(out, linkResponse{Link: l, ShortURL: h.source.ShortURL(l.Code)})
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLinksFound, linksResponse{
		Loaded: snap.Loaded,
		Query:  q,
		Links:  out,
	})
}
