package report

import (
	stderrors "errors"
)

// Causes attached to the errors returned while building a report. Use
// errors.Is to tell them apart.
var (
	ErrInvalidRange    = stderrors.New("start date is after end date")
	ErrUnknownIdentity = stderrors.New("no author record for caller")
	ErrStore           = stderrors.New("store failure")
	ErrRender          = stderrors.New("render failure")
)
