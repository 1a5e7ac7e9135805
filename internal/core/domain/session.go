package domain

// SessionState represents the client's authentication lifecycle state.
type SessionState string

const (
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// validTransitions defines the allowed state machine transitions. There is no
// intermediate "refreshing" state: the client has no refresh-token concept.
var validTransitions = map[SessionState][]SessionState{
	StateAnonymous:     {StateAuthenticated},
	StateAuthenticated: {StateAnonymous},
}

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is the authenticated identity plus bearer credential held by the
// client for the current device. The profile fields are a snapshot captured
// at sign-in time and are not re-validated client-side.
type Session struct {
	UserID        string   `json:"id"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	EmailVerified bool     `json:"emailVerified"`
	Roles         []string `json:"roles"`
	Token         string   `json:"-"`
}

// Validate enforces the session invariant: a credential is present if and
// only if a user identity is present. A token without an identity (or the
// reverse) is never a legal session.
func (s *Session) Validate() error {
	if s == nil {
		return ErrInvalidInput
	}
	if s.Token == "" || s.UserID == "" {
		return ErrInvalidInput
	}
	return nil
}

// State derives the lifecycle state from the session pointer itself: a nil
// session is Anonymous, any valid session is Authenticated.
func (s *Session) State() SessionState {
	if s == nil || s.Token == "" {
		return StateAnonymous
	}
	return StateAuthenticated
}

// HasRole reports whether the profile snapshot carries the given role name.
func (s *Session) HasRole(role string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}
