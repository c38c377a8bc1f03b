package handlers

import (
	"errors"
	"net/http"
)

// maxMemory is how much of a multipart body is held in memory before parts
// spill to temporary files.
const maxMemory = 8 << 20

// parseForm accepts multipart and urlencoded bodies.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// presentValues copies the submitted fields, leaving absent ones out so the
// validators can tell missing from empty.
func presentValues(r *http.Request, fields ...string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		if vs, ok := r.PostForm[f]; ok && len(vs) > 0 {
			values[f] = vs[0]
		}
	}
	return values
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
