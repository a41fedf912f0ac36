// Package audio plays the sound configured for a notification preset. It
// decodes WAV, OGG and MP3 files with beep and keeps decoded buffers cached
// until the file on disk changes.
package audio
