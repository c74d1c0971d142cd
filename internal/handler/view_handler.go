package handler

import (
	"net/http"

	"civicboard/internal/render"
	"civicboard/internal/service"

	"github.com/gorilla/mux"
)

// ViewHandler serves the rendered HTML table fragments the dashboard
// swaps into each module's list view. The optional q parameter applies
// the same search the JSON endpoints use.
type ViewHandler struct {
	renderer     *render.Renderer
	campaigns    *service.CampaignService
	contents     *service.ContentService
	segments     *service.SegmentService
	events       *service.EventService
	surveys      *service.SurveyService
	integrations *service.IntegrationService
}

// NewViewHandler creates a new view handler
func NewViewHandler(
	renderer *render.Renderer,
	campaigns *service.CampaignService,
	contents *service.ContentService,
	segments *service.SegmentService,
	events *service.EventService,
	surveys *service.SurveyService,
	integrations *service.IntegrationService,
) *ViewHandler {
	return &ViewHandler{
		renderer:     renderer,
		campaigns:    campaigns,
		contents:     contents,
		segments:     segments,
		events:       events,
		surveys:      surveys,
		integrations: integrations,
	}
}

// RegisterRoutes attaches the view endpoints to the router
func (h *ViewHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/views/{module}", h.Render).Methods(http.MethodGet)
}

// Render handles GET /views/{module}?q=
func (h *ViewHandler) Render(w http.ResponseWriter, r *http.Request) {
	module := mux.Vars(r)["module"]
	if !h.renderer.Has(module) {
		WriteNotFoundError(w, "view", 0)
		return
	}

	query := r.URL.Query().Get("q")
	records := h.records(module, query)

	html, err := h.renderer.Render(module, records)
	if err != nil {
		HandleServiceError(w, &service.StorageError{Message: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// records fetches the module's record list, filtered when q is set
func (h *ViewHandler) records(module, query string) interface{} {
	switch module {
	case "campaigns":
		return h.campaigns.SearchCampaigns(query)
	case "content":
		return h.contents.SearchContent(query)
	case "segments":
		return h.segments.SearchSegments(query)
	case "events":
		return h.events.SearchEvents(query)
	case "surveys":
		return h.surveys.SearchSurveys(query)
	case "integrations":
		return h.integrations.SearchIntegrations(query)
	default:
		return nil
	}
}
