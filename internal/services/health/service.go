package health

// Service encapsulates health-related checks.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status is the liveness payload.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Status returns the liveness payload.
func (s *Service) Status() Status {
	return Status{Status: "healthy", Message: "Server is running"}
}
