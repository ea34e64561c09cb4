package models

const (
	RoleDirector = "Director"
)

type BoardMember struct {
	Name  string
	Role  string
	Photo string
}

func (m BoardMember) IsDirector() bool {
	return m.Role == RoleDirector
}
