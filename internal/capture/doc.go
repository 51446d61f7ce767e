// Package capture owns the webcam/microphone recording lifecycle.
//
// A Session moves through Idle, Requesting, Recording, and Stopped while a
// Recorder (ffmpeg over v4l2/alsa in production) produces the video file.
// Stopping finalizes the file into an in-memory Artifact and releases the
// devices; reset and error paths release them too, so camera access is never
// held past the attempt that acquired it.
package capture
