package dashboard

import "errors"

var ErrInvalidWeek = errors.New("week must be a date in YYYY-MM-DD format")
