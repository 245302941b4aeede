package tui

import "sync/atomic"

// sessionUserID is the note owner authenticated in the current TUI run.
// The pre-auth screens write it once on a successful login, the note
// session loop reads it for every request. Zero means "not logged in".
var sessionUserID int64

func setSessionUserID(userID int64) {
	atomic.StoreInt64(&sessionUserID, userID)
}

func getSessionUserID() int64 {
	return atomic.LoadInt64(&sessionUserID)
}

func clearSessionUserID() {
	atomic.StoreInt64(&sessionUserID, 0)
}
