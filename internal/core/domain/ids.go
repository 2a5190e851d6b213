package domain

// Platform identifiers are distinct wrapper types so a VideoID can never be
// passed where a ContentID is expected, even though both are strings on the
// wire.

// ContentID identifies a content record (draft or published video page).
type ContentID string

func (id ContentID) String() string { return string(id) }

// VideoID identifies an uploaded video file on the platform.
type VideoID string

func (id VideoID) String() string { return string(id) }

// ImageID identifies an uploaded image (thumbnail).
type ImageID string

func (id ImageID) String() string { return string(id) }

// ChannelID identifies the channel that owns uploaded content.
type ChannelID string

func (id ChannelID) String() string { return string(id) }

const watchBaseURL = "https://www.ganjingworld.com/video/"

// WebURL returns the public watch page for a piece of content.
func WebURL(id ContentID) string {
	return watchBaseURL + string(id)
}
