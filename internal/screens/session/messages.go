package session

// feedbackTimeoutMsg advances past the feedback of question index when
// the learner has not pressed a key.
type feedbackTimeoutMsg struct {
	index int
}
