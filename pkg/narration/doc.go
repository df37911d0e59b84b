// ABOUTME: High-level narration playback API
// ABOUTME: Provides the play/stop toggle used by lesson views
// Package narration plays lesson narration payloads.
//
// A Player owns one audio destination and at most one playback session.
// A single Toggle call serves as both the start and the stop trigger, which
// is what a "Listen"/"Stop" button needs.
//
// Example:
//
//	player := narration.NewPlayer(narration.Config{
//	    OnFinished:    func() { log.Println("done") },
//	    OnStateChange: func(s narration.State) { render(s) },
//	})
//	defer player.Close()
//
//	err := player.Toggle(lesson.AudioData) // starts
//	err = player.Toggle(lesson.AudioData)  // stops
package narration
