package handlers

import (
	"net/http"

	"github.com/upb/casting-agency/services"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)

	var werr error
	switch {
	case services.IsNotFoundError(err):
		werr = utils.WriteNotFound(w)

	case services.IsValidationError(err):
		werr = utils.WriteUnprocessable(w, details)

	case services.IsConflictError(err):
		// Duplicate names and titles are reported as unprocessable input
		werr = utils.WriteUnprocessable(w, details)

	case services.IsInternalError(err):
		logger.Error("internal server error", zap.Error(err))
		werr = utils.WriteInternalServerError(w)

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		werr = utils.WriteInternalServerError(w)
	}

	if werr != nil {
		logger.Error("failed to write error response", zap.Error(werr))
	}

	logger.Debug("handled service error",
		zap.String("type", string(services.GetErrorType(err))),
		zap.Error(err))
}

// HandleDecodeError reports a request body that is not valid JSON
func HandleDecodeError(w http.ResponseWriter, err error, logger *zap.Logger) {
	logger.Debug("invalid request body", zap.Error(err))
	if werr := utils.WriteBadRequest(w, nil); werr != nil {
		logger.Error("failed to write bad request response", zap.Error(werr))
	}
}
