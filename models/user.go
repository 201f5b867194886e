package models

// Academic period values accepted for [User.AcademicPeriod].
// The school year is split either into two terms (quadrimestre)
// or into a trimester plus a five-month term (pentamestre).
const (
	PeriodQuadrimestre = "quadrimestre"
	PeriodPentamestre  = "pentamestre"
)

// User represents a student account tracked by the agenda.
// It contains identity attributes, the local PIN shared secret and the
// credentials used against the remote school portal.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the stable identifier of the user, derived from the display
	// name at registration time and immutable afterwards.
	ID string `json:"id"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// PIN is the local login secret. It is compared verbatim on login and
	// never exposed via JSON.
	PIN string `json:"-"`

	// RemoteUsername and RemotePassword are the school-portal credentials
	// used by the sync orchestrator. Never exposed via JSON.
	RemoteUsername string `json:"-"`
	RemotePassword string `json:"-"`

	// AvatarURL is the retrieval path of the uploaded profile image,
	// empty until an avatar has been uploaded.
	AvatarURL string `json:"avatar_url,omitempty"`

	// AcademicPeriod is either [PeriodQuadrimestre] or [PeriodPentamestre].
	AcademicPeriod string `json:"academic_period"`
}

// Public returns a copy of the user with every secret field cleared,
// safe to serialize in list and login responses.
func (u User) Public() User {
	u.PIN = ""
	u.RemoteUsername = ""
	u.RemotePassword = ""
	return u
}

// HasRemoteCredentials reports whether both portal credentials are set.
// Sync refuses to run without them.
func (u User) HasRemoteCredentials() bool {
	return u.RemoteUsername != "" && u.RemotePassword != ""
}

// ValidPeriod reports whether period is one of the two accepted
// academic period values.
func ValidPeriod(period string) bool {
	return period == PeriodQuadrimestre || period == PeriodPentamestre
}
