package models

// Episode is one playable entry in a podcast catalog.
type Episode struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Duration    string `json:"duration" yaml:"duration"` // display string like "45:00"
	AudioURL    string `json:"audio_url,omitempty" yaml:"audio_url"`
	Date        string `json:"date" yaml:"date"`
}

// Podcast is a catalog show with its episode list.
type Podcast struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Host       string    `json:"host" yaml:"host"`
	Topic      string    `json:"topic" yaml:"topic"`
	CoverColor string    `json:"cover_color" yaml:"cover_color"`
	Episodes   []Episode `json:"episodes" yaml:"episodes"`
}
