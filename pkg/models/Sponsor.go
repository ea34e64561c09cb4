package models

type Sponsor struct {
	ID          int
	Image       string
	Name        string
	Description string
	CompanyInfo string
	Badge       string
}
