package pkg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var ExposeErrorDetails = false

func init() {
	if gin.DebugMode == gin.Mode() || gin.TestMode == gin.Mode() {
		ExposeErrorDetails = true
	}
}

// Reusable errors
var (
	SqlError           = errors.New("sql error")
	ErrNoConnection    = errors.New("database unreachable")
	ErrEmptySource     = errors.New("source table returned no rows")
	ErrReadOnlyQueries = errors.New("only read-only statements are allowed")
)

// ErrorCode defines a standardized error code
type ErrorCode struct {
	Code    string
	Status  int
	Message string // default message
}

var (
	// Generic app
	ErrInvalidInputCode   = ErrorCode{Code: "APP_INVALID_INPUT", Status: http.StatusBadRequest, Message: "invalid input"}
	ErrServerCode         = ErrorCode{Code: "APP_INTERNAL", Status: http.StatusInternalServerError, Message: "internal server error"}
	ErrRecordNotFoundCode = ErrorCode{Code: "APP_NOT_FOUND", Status: http.StatusNotFound, Message: "record not found"}
	ErrDBUnavailableCode  = ErrorCode{Code: "APP_DB_UNAVAILABLE", Status: http.StatusServiceUnavailable, Message: "database unavailable"}

	// Pipeline/domain rules
	ErrDataShapeCode = ErrorCode{Code: "DATA_SHAPE", Status: http.StatusUnprocessableEntity, Message: "source data has an unexpected shape"}
	ErrAnalyticsCode = ErrorCode{Code: "ANALYTICS_UNDEFINED", Status: http.StatusUnprocessableEntity, Message: "analysis undefined for this input"}

	// SQL layer
	ErrSQLUnknownCode      = ErrorCode{Code: "SQL_UNKNOWN", Status: http.StatusInternalServerError, Message: "sql error"}
	ErrSQLAccessDeniedCode = ErrorCode{Code: "SQL_ACCESS_DENIED", Status: http.StatusServiceUnavailable, Message: "access denied"}
	ErrSQLBadSchemaCode    = ErrorCode{Code: "SQL_BAD_SCHEMA", Status: http.StatusUnprocessableEntity, Message: "table or column not found"}
	ErrSQLInvalidInput     = ErrorCode{Code: "SQL_INVALID_INPUT", Status: http.StatusBadRequest, Message: "invalid input"}
)

type AppError struct {
	Code    ErrorCode
	Message string // public-facing message
	Cause   error  // internal cause (wrapped)
}

func (e AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}
func (e AppError) Unwrap() error { return e.Cause }

func NewAppError(code ErrorCode, msg string, cause error) error {
	return AppError{Code: code, Message: msg, Cause: cause}
}

// ErrorResponse defines the standardized error response format
type ErrorResponse struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ToErrorResponse converts an error into an ErrorResponse, logging details and optionally exposing error messages.
// If the error is not an AppError, it is converted to a generic 500 error.
func ToErrorResponse(logger *zap.Logger, traceID string, err error) ErrorResponse {
	var appErr AppError
	if errors.As(err, &appErr) {
		resp := ErrorResponse{
			Status:  appErr.Code.Status,
			Code:    appErr.Code.Code,
			Message: appErr.Message,
		}
		logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
		if ExposeErrorDetails {
			resp.Details = err.Error()
		}
		return resp
	}
	// Unknown error : 500
	resp := ErrorResponse{
		Status:  ErrServerCode.Status,
		Code:    ErrServerCode.Code,
		Message: ErrServerCode.Message,
	}
	logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
	if ExposeErrorDetails {
		resp.Details = err.Error()
	}
	return resp
}

// HandleSQLError maps MySQL errors -> AppError with proper codes/status
func HandleSQLError(traceId string, logger *zap.Logger, err error) error {
	var myErr *mysql.MySQLError
	if errors.Is(err, sql.ErrNoRows) {
		logger.Warn("sql error : no records found", zap.String(TraceId, traceId))
		return NewAppError(ErrRecordNotFoundCode, "no records found", err)
	}
	if !errors.As(err, &myErr) {
		// Driver-level failure without a server error packet: the server was never reached.
		logger.Error("sql error : connectivity", zap.String(TraceId, traceId), zap.Error(err))
		return NewAppError(ErrDBUnavailableCode, "database unreachable", err)
	}

	// Log rich server error context
	logger.Error("sql error",
		zap.String(TraceId, traceId),
		zap.Uint16("number", myErr.Number),
		zap.String("message", myErr.Message),
	)

	switch myErr.Number {
	case 1044, 1045: // access denied for user / database
		return NewAppError(ErrSQLAccessDeniedCode, "access denied", SqlError)
	case 1049: // unknown database
		return NewAppError(ErrDBUnavailableCode, "unknown database", SqlError)
	case 1146: // table doesn't exist
		return NewAppError(ErrSQLBadSchemaCode, "table does not exist", SqlError)
	case 1054: // unknown column
		return NewAppError(ErrSQLBadSchemaCode, "unknown column", SqlError)
	case 1064: // syntax error
		return NewAppError(ErrSQLInvalidInput, "syntax error in statement", SqlError)
	case 1142: // command denied (write attempted by read-only account)
		return NewAppError(ErrSQLAccessDeniedCode, "statement not permitted", SqlError)
	default:
		return NewAppError(ErrSQLUnknownCode, "sql error", SqlError)
	}
}
