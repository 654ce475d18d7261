package handlers

import (
	"net/http"

	"DocKeeper/internal/service"

	"go.uber.org/zap"
)

// DashboardHandler отдаёт агрегаты аналитики для дашборда.
type DashboardHandler struct {
	Analytics *service.AnalyticsService
	Logger    *zap.SugaredLogger
}

func NewDashboardHandler(analytics *service.AnalyticsService, logger *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{Analytics: analytics, Logger: logger}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	d, err := h.Analytics.Compute(r.Context(), userID)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
