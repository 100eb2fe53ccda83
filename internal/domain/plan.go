package domain

// ImageSize is the natural size of a plan's reference image, or the size of
// an on-screen box. Zero until the image header has been read.
type ImageSize struct {
	Width  float64
	Height float64
}

// Loaded reports whether both dimensions are known.
func (s ImageSize) Loaded() bool {
	return s.Width > 0 && s.Height > 0
}

// Plan is a reference image (typically a floor plan) belonging to a project.
type Plan struct {
	ID        string
	ProjectID string
	Code      string
	Name      string
	ImageURL  string

	// Size is populated asynchronously once the image has been probed.
	Size ImageSize
}

// DisplayName returns the plan code when present, otherwise its name.
func (p *Plan) DisplayName() string {
	return CoalesceStr(p.Code, p.Name, p.ID)
}
