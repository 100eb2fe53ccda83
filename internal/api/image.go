package api

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/alexanderramin/planpin/internal/domain"
)

// maxHeaderBytes bounds how much of the image is read to find its size.
const maxHeaderBytes = 1 << 20

// ImageSize reads only the header of the image at imageURL and returns its
// natural dimensions. imageURL may be absolute or relative to BaseURL.
func (c *Client) ImageSize(ctx context.Context, imageURL string) (domain.ImageSize, error) {
	if imageURL == "" {
		return domain.ImageSize{}, fmt.Errorf("%w: plan has no image", ErrUnsupportedImage)
	}
	var cfg image.Config
	err := c.do(ctx, request{
		call:   "image_size",
		method: http.MethodGet,
		path:   imageURL,
		decode: func(r io.Reader) error {
			var err error
			cfg, _, err = image.DecodeConfig(io.LimitReader(r, maxHeaderBytes))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
			}
			return nil
		},
	})
	if err != nil {
		return domain.ImageSize{}, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return domain.ImageSize{}, fmt.Errorf("%w: image reports no dimensions", ErrUnsupportedImage)
	}
	return domain.ImageSize{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}
