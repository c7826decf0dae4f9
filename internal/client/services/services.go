// Package services contains the domain service layer: one stateless service
// per resource, each a thin mapping from an application operation to one HTTP
// call. Every method either returns the deserialized payload or fails with
// the propagated error; failure handling belongs to the caller.
package services

import (
	"io"
	"net/url"
	"strconv"
)

// Default page sizes used when a PageRequest leaves Size at zero.
const (
	DefaultPageSize        = 12
	DefaultCommentPageSize = 20
)

// PageRequest selects a page of a paginated listing. The zero value means
// the first page at the endpoint's default size.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) values(defaultSize int) url.Values {
	size := p.Size
	if size <= 0 {
		size = defaultSize
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("size", strconv.Itoa(size))
	return v
}

// FileUpload is a binary payload destined for a multipart request.
type FileUpload struct {
	Filename string
	Reader   io.Reader
}
