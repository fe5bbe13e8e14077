package http

import (
	"net/http"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness Endpoint
//	@Description	Returns 200 whenever the process is up, with uptime and version.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	waysdk.LivenessResponse	"status, version, uptime"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, waysdk.LivenessResponse{
			Status:  "ok",
			Version: version,
			Uptime:  time.Since(startTime).String(),
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Endpoint
//	@Description	Checks the database and the signing key set. Any failing check degrades the response to 503.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	waysdk.ReadinessResponse	"status, version, checks"
//	@Failure		503	{object}	waysdk.ReadinessResponse	"status, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(version string, st store.Store, keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"signer":   "ok",
		}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks["signer"] = "error: no keys loaded"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, waysdk.ReadinessResponse{
			Status:  status,
			Version: version,
			Checks:  checks,
		})
	}
}
