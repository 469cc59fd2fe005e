package entity

// Role is the closed set of dashboard audiences. The zero value is
// RolePatient so an unset role always resolves to the patient view.
type Role int

const (
	RolePatient Role = iota
	RoleDoctor
	RoleNurse
	RoleAdministrator
)

// Role names as stored in profiles.role
const (
	RoleNamePatient       = "patient"
	RoleNameDoctor        = "doctor"
	RoleNameNurse         = "nurse"
	RoleNameAdministrator = "administrator"
)

var roleNames = map[Role]string{
	RolePatient:       RoleNamePatient,
	RoleDoctor:        RoleNameDoctor,
	RoleNurse:         RoleNameNurse,
	RoleAdministrator: RoleNameAdministrator,
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return RoleNamePatient
}

// LookupRole reports whether name is one of the known roles.
func LookupRole(name string) (Role, bool) {
	for role, roleName := range roleNames {
		if roleName == name {
			return role, true
		}
	}
	return RolePatient, false
}

// ParseRole is total: unknown or empty names fall back to RolePatient.
func ParseRole(name string) Role {
	role, _ := LookupRole(name)
	return role
}

// Roles lists every role in dispatch order.
func Roles() []Role {
	return []Role{RolePatient, RoleDoctor, RoleNurse, RoleAdministrator}
}
