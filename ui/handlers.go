package ui

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"pitchgrid/app"
	"pitchgrid/domain/core"
	"pitchgrid/domain/pitch"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"events": len(a.events),
	})
}

func (a *App) handleListSeasons(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"seasons": pitch.Seasons(a.events),
	})
}

func (a *App) handleSeasonReport(w http.ResponseWriter, r *http.Request) {
	report, ok := a.seasonReport(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

func (a *App) handleIndependence(w http.ResponseWriter, r *http.Request) {
	report, ok := a.seasonReport(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"season":       report.Season,
		"independence": report.Independence,
		"verdict":      report.Independence.Verdict(),
	})
}

func (a *App) handleResiduals(w http.ResponseWriter, r *http.Request) {
	report, ok := a.seasonReport(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"season":      report.Season,
		"pitch_types": report.Table.PitchTypes,
		"counts":      report.Table.Counts,
		"observed":    report.Table.Observed,
		"expected":    report.Expected,
		"residuals":   report.Residuals,
	})
}

func (a *App) handleSpeeds(w http.ResponseWriter, r *http.Request) {
	report, ok := a.seasonReport(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"season": report.Season,
		"speeds": report.Speeds,
	})
}

func (a *App) handleMostLikely(w http.ResponseWriter, r *http.Request) {
	report, ok := a.seasonReport(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"season":      report.Season,
		"predictions": report.Predictions,
	})
}

// handleReportHTML renders the season's markdown report to HTML
func (a *App) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	report, ok := a.seasonReport(w, r)
	if !ok {
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(report.RenderMarkdown()))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(markdown.Render(doc, renderer))
}

// seasonReport parses the {year} parameter and runs the analysis for that
// season, writing the error response itself when anything fails.
func (a *App) seasonReport(w http.ResponseWriter, r *http.Request) (*app.SeasonReport, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid season year")
		return nil, false
	}

	report, err := a.service.AnalyzeSeason(r.Context(), a.events, year)
	if err != nil {
		switch {
		case core.IsNotFoundError(err):
			a.writeError(w, http.StatusNotFound, err.Error())
		case core.IsInsufficientDataError(err):
			a.writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			a.logger.Error("season %d analysis failed: %v", year, err)
			a.writeError(w, http.StatusInternalServerError, "analysis failed")
		}
		return nil, false
	}
	return report, true
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]interface{}{"error": message})
}
