// ABOUTME: Audio output package for playing narration
// ABOUTME: Provides Destination/Session interfaces with oto and in-memory backends
// Package output renders playable buffers.
//
// A Destination is the owned device handle; a Session is one buffer bound
// to it. Two backends are provided:
//
//   - Oto: the system audio device via github.com/ebitengine/oto/v3
//   - Memory: a simulated clock for tests and headless runs
//
// Example:
//
//	dest, err := output.NewOto(audio.NarrationFormat)
//	s, err := dest.NewSession(buf)
//	err = s.Start(func() { log.Println("finished") })
package output
