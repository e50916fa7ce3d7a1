package models

// TrackKind discriminates the two playable variants.
type TrackKind string

const (
	// TrackCatalogEpisode plays unbounded to natural end of media.
	TrackCatalogEpisode TrackKind = "catalog_episode"
	// TrackUserRecording carries trim bounds enforced during playback.
	TrackUserRecording TrackKind = "user_recording"
)

// PlaybackTrack is the transient descriptor fed to the playback controller.
// Only the user-recording variant carries trim bounds.
type PlaybackTrack struct {
	Kind            TrackKind `json:"kind"`
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle"`
	DisplayDuration string    `json:"display_duration"`
	SourceURL       string    `json:"source_url"`
	StartSeconds    float64   `json:"start_seconds,omitempty"`
	EndSeconds      float64   `json:"end_seconds,omitempty"`
}

// Bounded reports whether playback must stop at EndSeconds.
func (t PlaybackTrack) Bounded() bool {
	return t.Kind == TrackUserRecording
}
