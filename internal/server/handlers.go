package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/explorer"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/logging"
	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

// sentimentSetParam marks a submitted form so an empty sentiment selection is
// not mistaken for "use the default".
const sentimentSetParam = "sentiment_set"

// Handler serves the dashboard page and the JSON API.
type Handler struct {
	store *Store
	opt   explorer.Options
	log   *zap.Logger
	mux   *http.ServeMux
}

// NewHandler wires routes over the store.
func NewHandler(store *Store, opt explorer.Options, log *zap.Logger) *Handler {
	h := &Handler{store: store, opt: opt, log: logging.OrNop(log), mux: http.NewServeMux()}
	h.mux.HandleFunc("/health", h.getOnly(h.health))
	h.mux.HandleFunc("/api/dashboard", h.getOnly(h.apiDashboard))
	h.mux.HandleFunc("/api/apps", h.getOnly(h.apiApps))
	h.mux.HandleFunc("/api/insights", h.getOnly(h.apiInsights))
	h.mux.HandleFunc("/", h.getOnly(h.page))
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withAccessLog(h.log, withRecover(h.log, h.mux)).ServeHTTP(w, r)
}

func (h *Handler) getOnly(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		fn(w, r)
	}
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	ds := h.store.Current()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "dataset": ds.Name(), "rows": ds.Len()})
}

func (h *Handler) apiApps(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"apps": h.store.Current().Apps()})
}

func (h *Handler) apiInsights(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, explorer.BuildInsights(h.store.Current(), h.opt))
}

func (h *Handler) apiDashboard(w http.ResponseWriter, r *http.Request) {
	ds := h.store.Current()
	f, err := FilterFromQuery(ds, r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, explorer.Build(ds, f, h.opt))
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ds := h.store.Current()
	f, err := FilterFromQuery(ds, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data := newPageData(ds, explorer.Build(ds, f, h.opt))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.log.Error("template error", zap.Error(err))
	}
}

// FilterFromQuery reads app, sentiment and keyword parameters. Without a
// sentiment parameter or the form marker, all sentiments are selected; a
// missing app falls back to the first one.
func FilterFromQuery(ds *review.Dataset, q url.Values) (explorer.Filter, error) {
	f := explorer.DefaultFilter(ds)
	if app := q.Get("app"); app != "" {
		f.App = app
	}
	f.Keyword = q.Get("keyword")
	if vals, ok := q["sentiment"]; ok || q.Get(sentimentSetParam) != "" {
		set, err := explorer.ParseSentiments(vals)
		if err != nil {
			return f, err
		}
		f.Sentiments = set
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

type pageData struct {
	Apps       []string
	D          *explorer.Dashboard
	Checked    map[review.Sentiment]bool
	Labels     []review.Sentiment
	Pie        template.CSS
	WordMax    int
	SampleMore bool
}

var sentimentColors = map[review.Sentiment]string{
	review.Positive: "#2e9e5b",
	review.Neutral:  "#9aa0a6",
	review.Negative: "#d9534f",
}

func newPageData(ds *review.Dataset, d *explorer.Dashboard) pageData {
	p := pageData{Apps: ds.Apps(), D: d, Labels: review.Labels(), Checked: map[review.Sentiment]bool{}}
	for _, s := range d.Filter.Sentiments {
		p.Checked[s] = true
	}
	p.Pie = pieGradient(d.Overview.Distribution)
	if w := d.Words.Frequency.Words; len(w) > 0 {
		p.WordMax = w[0].Count
	}
	p.SampleMore = d.Samples.Total > len(d.Samples.Rows)
	return p
}

// pieGradient renders the distribution as a CSS conic-gradient.
func pieGradient(dist []explorer.LabelCount) template.CSS {
	if len(dist) == 0 {
		return template.CSS("background: #eee")
	}
	var stops []string
	acc := 0.0
	for i, lc := range dist {
		end := acc + lc.Share*100
		if i == len(dist)-1 {
			end = 100
		}
		stops = append(stops, fmt.Sprintf("%s %.2f%% %.2f%%", sentimentColors[lc.Sentiment], acc, end))
		acc = end
	}
	return template.CSS("background: conic-gradient(" + strings.Join(stops, ", ") + ")")
}
