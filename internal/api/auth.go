package api

import (
	"net/http"
)

func (a *Api) authURLHandler(w http.ResponseWriter, r *http.Request) {
	url := a.authFlow.PendingAuthURL()
	pending := url != ""
	if !pending {
		url = a.authFlow.AuthURL()
	}

	data := map[string]interface{}{
		"url":     url,
		"pending": pending,
	}

	if err := a.writeJSON(w, http.StatusOK, data, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) authCodeHandler(w http.ResponseWriter, r *http.Request) {
	input := struct {
		Code string `json:"code"`
	}{}

	if err := a.readJSON(w, r, &input); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if input.Code == "" {
		a.clientErrorResponse(w, r, http.StatusUnprocessableEntity, "code must be provided")
		return
	}

	if err := a.authFlow.Exchange(r.Context(), input.Code); err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
