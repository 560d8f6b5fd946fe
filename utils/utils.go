package utils

import (
	"encoding/json"
	"net/http"

	"github.com/nijaru/yt-blog/errors"
	"github.com/sirupsen/logrus"
)

func RespondWithError(w http.ResponseWriter, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal("utils.RespondWithError", err, "Internal server error")
	}

	logrus.WithFields(logrus.Fields{
		"status_code": appErr.Code,
		"op":          appErr.Op,
		"error":       appErr.Error(),
	}).Debug("Request failed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	json.NewEncoder(w).Encode(map[string]string{"error": appErr.Message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Failed to encode JSON response")
	}
}
