package http

import (
	"net/http"

	"github.com/filmdesk/filmdesk/pkg/domain/model/errs"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.From(r.Context())

	switch {
	case goerr.HasTag(err, errs.TagInvalidRequest):
		logger.Warn("Bad Request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)

	case goerr.HasTag(err, errs.TagUnauthorized):
		logger.Warn("Unauthorized", "error", err)
		http.Error(w, err.Error(), http.StatusUnauthorized)

	case goerr.HasTag(err, errs.TagNotFound):
		logger.Warn("Not Found", "error", err)
		http.Error(w, err.Error(), http.StatusNotFound)

	default:
		errs.Handle(r.Context(), err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
