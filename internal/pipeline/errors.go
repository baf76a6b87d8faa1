package pipeline

import "errors"

var (
	ErrUnknownMilestone = errors.New("unknown checklist milestone")
	ErrInvalidStage     = errors.New("invalid stage")
)
