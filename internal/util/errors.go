package util

import "errors"

var (
	ErrHistoryNotFound   = errors.New("history entry not found")
	ErrStoreUnavailable  = errors.New("history store unavailable")
	ErrMalformedResponse = errors.New("no JSON object found in model response")
	ErrNoQuizGenerated   = errors.New("the model returned no quiz")
	ErrEmptyUpload       = errors.New("no PDF files in request")
)
