package toast

// Kind selects how a toast is styled.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Toast is a short-lived notification.
type Toast struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	Kind    Kind   `json:"type"`
}
