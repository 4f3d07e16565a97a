package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")

// ReauthRequiredError signals that the stored Google credential needs
// interactive reauthorization before the feed can be read again. AuthURL is
// the consent URL the user has to visit.
type ReauthRequiredError struct {
	AuthURL string
	Err     error
}

func (e *ReauthRequiredError) Error() string {
	if e.Err != nil {
		return "reauthorization required: " + e.Err.Error()
	}
	return "reauthorization required"
}

func (e *ReauthRequiredError) Unwrap() error {
	return e.Err
}
