package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/SergeyKozhin/gcal-sync-backend/internal/business/sync"
)

func (a *Api) triggerSyncHandler(w http.ResponseWriter, r *http.Request) {
	if a.syncService.Status().State == sync.StateRunning {
		a.conflictResponse(w, r, "sync already in progress")
		return
	}

	// The pass outlives the request; the service itself rejects a
	// concurrent start that slipped past the check above.
	go func() {
		if err := a.syncService.Run(context.Background()); err != nil && !errors.Is(err, sync.ErrSyncInProgress) {
			a.logger.Debugw("triggered sync finished with error", "err", err)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

func (a *Api) syncStatusHandler(w http.ResponseWriter, r *http.Request) {
	status := a.syncService.Status()

	data := map[string]interface{}{
		"state":      status.State.String(),
		"accepted":   status.Accepted,
		"skipped":    status.Skipped,
		"last_error": status.LastError,
	}

	if err := a.writeJSON(w, http.StatusOK, data, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
