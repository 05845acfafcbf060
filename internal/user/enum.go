package user

type AdminLevel string

const (
	AdminLevelUser      AdminLevel = "user"
	AdminLevelPrimary   AdminLevel = "primary_admin"
	AdminLevelSecondary AdminLevel = "secondary_admin"
)

var AllAdminLevels = []AdminLevel{
	AdminLevelUser,
	AdminLevelPrimary,
	AdminLevelSecondary,
}

func (l AdminLevel) IsValid() bool {
	for _, v := range AllAdminLevels {
		if l == v {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the level grants manager-grade access
// (goal management, full progress visibility).
func (l AdminLevel) IsAdmin() bool {
	return l == AdminLevelPrimary || l == AdminLevelSecondary
}

// IsPrimary reports whether the level grants full administrative access
// (user, invite and package management).
func (l AdminLevel) IsPrimary() bool {
	return l == AdminLevelPrimary
}
