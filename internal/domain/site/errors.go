package site

import "errors"

var (
	ErrSiteNotFound = errors.New("site not found")
	ErrNameExists   = errors.New("site name already exists")
)
