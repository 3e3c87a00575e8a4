package review

// shakeDoneMsg ends the input shake after a rejected or warned submit.
type shakeDoneMsg struct{}

// delayDoneMsg is sent when the delay gate deadline passes.
type delayDoneMsg struct{}

// srsPopupDoneMsg hides the stage-change popup.
type srsPopupDoneMsg struct{}

// persistDoneMsg confirms answer persistence completed.
type persistDoneMsg struct {
	Err error
}

// sessionEndMsg is sent once the queue is empty and the session row has
// been finalized.
type sessionEndMsg struct {
	Err error
}
