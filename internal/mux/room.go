package mux

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type roomResponse struct {
	Code string `json:"code"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm, err := m.registry.CreateRoom()
		if err != nil {
			logrus.WithError(err).Error("could not create room")
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, roomResponse{Code: rm.Code()})
	}
}
