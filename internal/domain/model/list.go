package model

import (
	"encoding/json"
	"net/url"
	"strconv"

	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

// ListParams controls paging and filtering for list endpoints.
// Zero Page or Size leaves the server default in effect.
type ListParams struct {
	Page    int
	Size    int
	Filters map[string]any
}

// Validate rejects negative paging values.
func (p ListParams) Validate() error {
	if p.Page < 0 {
		return apperrors.ValidationField("page", "page must be >= 1")
	}
	if p.Size < 0 {
		return apperrors.ValidationField("size", "size must be >= 1")
	}
	return nil
}

// Query renders the params as URL query values; filters are JSON-encoded.
func (p ListParams) Query() (url.Values, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	if len(p.Filters) > 0 {
		data, err := json.Marshal(p.Filters)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "encode filters")
		}
		q.Set("filters", string(data))
	}
	return q, nil
}

// FiltersJSON returns the filters as a JSON object, "{}" when empty.
func (p ListParams) FiltersJSON() (json.RawMessage, error) {
	if len(p.Filters) == 0 {
		return json.RawMessage(`{}`), nil
	}
	data, err := json.Marshal(p.Filters)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "encode filters")
	}
	return data, nil
}
