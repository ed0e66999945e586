package domain

// OutcomeKind tags the result of a credential check. Expected authentication
// failures are values of this closed set, never errors; the error return of
// Gate.Authenticate is reserved for store or hasher unavailability.
type OutcomeKind int

const (
	OutcomeInvalidInput OutcomeKind = iota
	OutcomeInvalidCredentials
	OutcomeLocked
	OutcomeLockedNewly
	OutcomeSuccess
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeInvalidCredentials:
		return "invalid_credentials"
	case OutcomeLocked:
		return "locked"
	case OutcomeLockedNewly:
		return "locked_newly"
	case OutcomeSuccess:
		return "success"
	}
	return "unknown"
}

// Outcome is the gate's verdict. UserID, Username and Role are set only
// when Kind is OutcomeSuccess; they are everything the session issuer needs.
type Outcome struct {
	Kind     OutcomeKind
	UserID   string
	Username string
	Role     string
}

func (o Outcome) Success() bool {
	return o.Kind == OutcomeSuccess
}
