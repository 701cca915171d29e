package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/formintake/intake-api/internal/types"
)

// Error bodies are part of the public contract; the messages are fixed.
var (
	InternalServerError = echo.NewHTTPError(
		http.StatusInternalServerError,
		types.StringError("something went wrong"),
	)
	AllFieldsRequiredError = echo.NewHTTPError(
		http.StatusBadRequest,
		types.StringError("All fields are required!"),
	)
	FetchFailedError = echo.NewHTTPError(
		http.StatusInternalServerError,
		types.StringError("Failed to fetch data"),
	)
	IntakeFailedError = echo.NewHTTPError(
		http.StatusInternalServerError,
		types.StringError("Failed to save user or send email"),
	)
)
