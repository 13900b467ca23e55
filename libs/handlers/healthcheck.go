package handlers

import (
	"net/http"

	"github.com/brave-intl/restpipe/libs/logging"
	"github.com/brave-intl/restpipe/libs/responses"
)

// HealthCheckResponse - response structure for healthchecks
type HealthCheckResponse struct {
	BuildTime string `json:"buildTime"`
	Commit    string `json:"commit"`
	Version   string `json:"version"`
	// service status is an accumulated map of service health structures mapped on service name
	ServiceStatus map[string]interface{} `json:"serviceStatus,omitempty"`
}

// HealthCheckHandler - function which generates a health check http.HandlerFunc
// answering with the success envelope
func HealthCheckHandler(version, buildTime, commit string, serviceStatus map[string]interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hcr := HealthCheckResponse{
			Commit:        commit,
			BuildTime:     buildTime,
			Version:       version,
			ServiceStatus: serviceStatus,
		}
		if err := responses.Build(hcr, "").Render(ctx, w, http.StatusOK); err != nil {
			logging.Logger(ctx, "handlers.HealthCheckHandler").Error().Err(err).Msg("failed to render health check")
			status, body := Envelope(&UnexpectedFailure{Cause: err})
			if err := body.Render(ctx, w, status); err != nil {
				logging.Logger(ctx, "handlers.HealthCheckHandler").Error().Err(err).Msg("failed to write response to writer")
			}
		}
	}
}
