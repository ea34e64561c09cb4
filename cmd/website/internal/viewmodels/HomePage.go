package viewmodels

import "github.com/qmacanada/website/pkg/models"

type HomePage struct {
	BaseViewModel
	Photos     []HomePagePhoto
	Sponsors   []models.Sponsor
	Directors  []models.BoardMember
	Executives []models.BoardMember
}

type HomePagePhoto struct {
	OriginalPath  string
	ThumbnailPath string
	FileName      string
}
