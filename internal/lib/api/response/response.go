package response

const (
	StatusOK    = "OK"
	StatusError = "Error"
)

// Response is the common JSON envelope for API handlers.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func OK() Response {
	return Response{Status: StatusOK}
}

func Error(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}
