package models

// ResidentStatus is the lifecycle state of a resident. PendingDelete marks a
// resident whose deletion was accepted locally but is still queued for the
// remote proxy; the record is removed for real once the queued delete is
// delivered.
type ResidentStatus string

const (
	ResidentStatusActive        ResidentStatus = "active"
	ResidentStatusInactive      ResidentStatus = "inactive"
	ResidentStatusPendingDelete ResidentStatus = "pending_delete"
)

func (s ResidentStatus) Valid() bool {
	switch s {
	case ResidentStatusActive, ResidentStatusInactive, ResidentStatusPendingDelete:
		return true
	}
	return false
}

// Resident is a tenant of the building. Phone is unique within the table and
// doubles as the portal login name.
//
// The password fields hold hex-encoded argon2id digests and salts managed by
// the auth package. TempPasswordHash is set when an administrator issues a
// one-time password; ForcePasswordChange stays true until the resident picks
// a permanent one.
type Resident struct {
	Meta
	Name       string         `json:"name"`
	Phone      string         `json:"phone"`
	NationalID string         `json:"nationalId"`
	Email      string         `json:"email"`
	Status     ResidentStatus `json:"status"`

	PasswordHash        string `json:"passwordHash,omitempty"`
	PasswordSalt        string `json:"passwordSalt,omitempty"`
	TempPasswordHash    string `json:"tempPasswordHash,omitempty"`
	TempPasswordSalt    string `json:"tempPasswordSalt,omitempty"`
	ForcePasswordChange bool   `json:"forcePasswordChange,omitempty"`
}

func (r *Resident) Field(name string) (any, bool) {
	switch name {
	case "name":
		return r.Name, true
	case "phone":
		return r.Phone, true
	case "nationalId":
		return r.NationalID, true
	case "email":
		return r.Email, true
	case "status":
		return string(r.Status), true
	}
	return r.metaField(name)
}
