package domain

import "context"

// Page is a rendered static content page.
type Page struct {
	Name  string
	Title string
	HTML  string
}

// PageRepository finds static pages by name. A missing page is reported with ok=false, not an error.
type PageRepository interface {
	Get(ctx context.Context, name string) (page *Page, ok bool, err error)
}
