package content

import "github.com/qmacanada/website/pkg/models"

var sponsors = []models.Sponsor{
	{
		ID:          1,
		Image:       "/static/images/sponsor/S-1.png",
		Name:        "Prakash Chandran",
		Description: "Leading Real Estate Agent",
		CompanyInfo: "Buying, selling, or investing? Call your trusted local realtor today.",
		Badge:       "Mega Sponsor",
	},
	{
		ID:          2,
		Image:       "/static/images/sponsor/s-2.png",
		Name:        "Revive Physio Care",
		Description: "Physiotherapy Belleville",
		CompanyInfo: "Physiotherapy Belleville in Canada",
		Badge:       "Gold Sponsor",
	},
	{
		ID:          3,
		Image:       "/static/images/sponsor/s-4.png",
		Name:        "Access Healthcare Inc",
		Description: "Staffing Solutions & Transportation services.",
		Badge:       "Platinum Sponsor",
	},
	{
		ID:          4,
		Image:       "/static/images/sponsor/s-6.png",
		Name:        "Rophe Rehab",
		Description: "We specialize in Physiotheraphy",
		CompanyInfo: "Physiotheraphy Specialist in canada",
		Badge:       "Gold Sponsor",
	},
	{
		ID:          5,
		Image:       "/static/images/sponsor/s-8.png",
		Name:        "Dani the Detailer",
		Description: "Steam cleaning & Detailing Center",
		CompanyInfo: "Car Detailing Company, serving 1M+ patients globally.",
		Badge:       "Gold Sponsor",
	},
	{
		ID:          6,
		Image:       "/static/images/sponsor/s-7.png",
		Name:        "Bay Mazda",
		Description: "Mazda Dealer in canada",
		CompanyInfo: "Bay Mazda is premium mazda Dealership in bellevile",
		Badge:       "Community Sponsor",
	},
}

// Sponsors returns a copy of the sponsor table in display order.
func Sponsors() []models.Sponsor {
	result := make([]models.Sponsor, len(sponsors))
	copy(result, sponsors)
	return result
}
