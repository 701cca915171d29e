package types

type (
	// Error is the JSON body returned for every failed request.
	Error struct {
		Details *string `json:"details,omitempty"`
		Error   string  `json:"error"`
	}
)

func StringError(err string) Error {
	return Error{Error: err}
}

func DetailedError(msg string, err error) Error {
	details := err.Error()
	return Error{Error: msg, Details: &details}
}
