// Package model defines the schema of a runnable generation model as the
// platform API declares it: media direction, configurable option fields,
// and demo input/output descriptors.
package model

import "strings"

// IOType is the media type a model consumes or produces.
type IOType string

const (
	IOTypeText  IOType = "text"
	IOTypeImage IOType = "image"
	IOTypeVideo IOType = "video"
	IOTypeAudio IOType = "audio"
)

// AcceptPrefix returns the MIME prefix accepted for uploads of this type.
// Text and unrecognized types accept everything.
func (t IOType) AcceptPrefix() string {
	switch t {
	case IOTypeImage:
		return "image/"
	case IOTypeVideo:
		return "video/"
	case IOTypeAudio:
		return "audio/"
	default:
		return ""
	}
}

// IOField describes one demo input or output attached to a model. It only
// pre-populates previews and text defaults; it is never submitted.
type IOField struct {
	Type       IOType `json:"type"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	IsRequired bool   `json:"is_required,omitempty"`
	Hint       string `json:"hint,omitempty"`
	Content    string `json:"content,omitempty"`
	URL        string `json:"url,omitempty"`
}

// Model is the server-declared description of a runnable generation model.
// Immutable for the lifetime of a page view.
type Model struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	BannerImageURL string        `json:"banner_image_url,omitempty"`
	From           IOType        `json:"from"`
	To             IOType        `json:"to"`
	Options        []OptionField `json:"options,omitempty"`
	Hint           string        `json:"hint,omitempty"`
	MaxFileCount   int           `json:"max_file_count,omitempty"`
	DemoInput      []IOField     `json:"demo_input,omitempty"`
	DemoOutput     []IOField     `json:"demo_output,omitempty"`
}

// FileLimit returns the maximum number of input files, defaulting to 1
// when the schema omits or zeroes it.
func (m *Model) FileLimit() int {
	if m.MaxFileCount <= 0 {
		return 1
	}
	return m.MaxFileCount
}

// Stub builds the minimal fallback model used when the platform fetch
// fails: the page still renders with the requested id as title.
func Stub(id string) *Model {
	title := strings.TrimSpace(id)
	if title == "" {
		title = "Model"
	}
	return &Model{ID: id, Title: title, From: IOTypeText, To: IOTypeImage, MaxFileCount: 1}
}
