package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"

	"github.com/contaflow/ledgerhub/ledger"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           string `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           "internal",
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           "bad_arguments",
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           "bad_auth",
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           "not_found",
	Message:        "not found",
	HttpStatusCode: 404,
}

// statusByKind maps business error kinds to HTTP status codes. Everything is
// a caller problem except sequence exhaustion, which is a storage-side
// failure.
var statusByKind = map[ledger.Kind]int{
	ledger.KindInvalidAccountCode:       http.StatusBadRequest,
	ledger.KindHierarchyMismatch:        http.StatusBadRequest,
	ledger.KindDuplicateAccountCode:     http.StatusConflict,
	ledger.KindNonDetailAccountUsed:     http.StatusBadRequest,
	ledger.KindConflictingAmounts:       http.StatusBadRequest,
	ledger.KindEmptyAmounts:             http.StatusBadRequest,
	ledger.KindInvalidAmount:            http.StatusBadRequest,
	ledger.KindMissingRequiredDimension: http.StatusBadRequest,
	ledger.KindUnbalancedEntry:          http.StatusBadRequest,
	ledger.KindNotDraft:                 http.StatusConflict,
	ledger.KindAlreadyPosted:            http.StatusConflict,
	ledger.KindSequenceExhausted:        http.StatusServiceUnavailable,
	ledger.KindClosedPeriod:             http.StatusConflict,
	ledger.KindInvalidPeriod:            http.StatusBadRequest,
	ledger.KindNotFound:                 http.StatusNotFound,
}

// FromError converts any error into the ErrorResponse the caller sees.
// Business violations keep their kind as the code; everything else is
// reported as a general server error.
func FromError(err error) ErrorResponse {
	kind := ledger.KindOf(err)
	if kind == "" {
		return GeneralServerError
	}
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusBadRequest
	}
	return ErrorResponse{
		Error:          true,
		Code:           string(kind),
		Message:        err.Error(),
		HttpStatusCode: status,
	}
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	resp := FromError(err)
	c.JSON(resp.HttpStatusCode, resp)
}
