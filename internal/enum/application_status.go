package enum

import "github.com/pkg/errors"

type ApplicationStatus string

const (
	ApplicationStatusSent       ApplicationStatus = "SENT"
	ApplicationStatusRejected   ApplicationStatus = "REJECTED"
	ApplicationStatusAccepted   ApplicationStatus = "ACCEPTED"
	ApplicationStatusInterview  ApplicationStatus = "INTERVIEW"
	ApplicationStatusNoResponse ApplicationStatus = "NO_RESPONSE"
)

var ErrInvalidApplicationStatus = errors.New("invalid application status")

var applicationStatusDisplayNames = map[ApplicationStatus]string{
	ApplicationStatusSent:       "Enviado",
	ApplicationStatusRejected:   "Rechazado",
	ApplicationStatusAccepted:   "Aceptado",
	ApplicationStatusInterview:  "Entrevista",
	ApplicationStatusNoResponse: "Sin respuesta",
}

// ApplicationStatuses lists every status in declaration order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		ApplicationStatusSent,
		ApplicationStatusRejected,
		ApplicationStatusAccepted,
		ApplicationStatusInterview,
		ApplicationStatusNoResponse,
	}
}

func (s ApplicationStatus) String() string {
	return string(s)
}

func (s ApplicationStatus) IsValid() bool {
	_, ok := applicationStatusDisplayNames[s]
	return ok
}

// DisplayName is the label shown in the UI.
func (s ApplicationStatus) DisplayName() string {
	return applicationStatusDisplayNames[s]
}

// IsResponse reports whether moving into this status means the company answered.
func (s ApplicationStatus) IsResponse() bool {
	switch s {
	case ApplicationStatusRejected, ApplicationStatusAccepted, ApplicationStatusInterview:
		return true
	}
	return false
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(s)
	if !status.IsValid() {
		return "", errors.Wrapf(ErrInvalidApplicationStatus, "%q", s)
	}
	return status, nil
}
