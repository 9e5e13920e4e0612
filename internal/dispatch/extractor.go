package dispatch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/levi-tabosa/jukebox/internal/shared"
)

// ExtractID locates the required field (space, local) anywhere in the request
// document and parses its text content as a 64-bit integer identifier.
//
// Returns [shared.ErrMalformedRequest] when the field is absent or its
// content is not a valid integer. Extraction happens before any store
// access, so a malformed request never reaches the resolver.
func ExtractID(req *Element, space, local string) (int64, error) {
	field := req.Find(space, local)
	if field == nil {
		return 0, fmt.Errorf("%w: missing required field %q", shared.ErrMalformedRequest, local)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(field.Text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q is not a valid integer: %q",
			shared.ErrMalformedRequest, local, field.Text)
	}

	return id, nil
}
