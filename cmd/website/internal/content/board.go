package content

import "github.com/qmacanada/website/pkg/models"

var boardMembers = []models.BoardMember{
	{Name: "Prakash Chandran", Role: models.RoleDirector, Photo: "/static/images/team/t7.png"},
	{Name: "Mathew Easso", Role: models.RoleDirector, Photo: "/static/images/team/t8.png"},
	{Name: "Joseph Abraham", Role: models.RoleDirector, Photo: "/static/images/team/t9.png"},
	{Name: "Ram Krishna", Role: models.RoleDirector, Photo: "/static/images/team/t6.png"},
	{Name: "John Varghese", Role: models.RoleDirector, Photo: "/static/images/team/t4.png"},

	{Name: "Mathew Pulikunnel", Role: "President", Photo: "/static/images/team/t1.png"},
	{Name: "Biju Krishnan", Role: "Vice President", Photo: "/static/images/team/t3.png"},
	{Name: "John Joy", Role: "Treasurer", Photo: "/static/images/team/t2.png"},
	{Name: "Cissy", Role: "Executive", Photo: "/static/images/team/t5.png"},
}

func BoardMembers() []models.BoardMember {
	result := make([]models.BoardMember, len(boardMembers))
	copy(result, boardMembers)
	return result
}

func Directors() []models.BoardMember {
	return filterMembers(func(m models.BoardMember) bool { return m.IsDirector() })
}

// Executives returns every member who is not a director.
func Executives() []models.BoardMember {
	return filterMembers(func(m models.BoardMember) bool { return !m.IsDirector() })
}

func filterMembers(keep func(models.BoardMember) bool) []models.BoardMember {
	result := []models.BoardMember{}

	for _, member := range boardMembers {
		if keep(member) {
			result = append(result, member)
		}
	}

	return result
}
