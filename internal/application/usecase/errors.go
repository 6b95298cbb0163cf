package usecase

import "errors"

// ErrBadRequest marks validation failures in request payloads. Transport
// layers map it to their invalid-argument code.
var ErrBadRequest = errors.New("bad request")
