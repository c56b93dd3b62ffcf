// pkg/render/logo.go

package render

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	logoMaxWidthPx  = 480
	logoMaxHeightPx = 160
)

// prepareLogo decodes any supported image, fits it into the header box and
// re-encodes it as PNG so the PDF writer sees one format.
func prepareLogo(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > logoMaxWidthPx || b.Dy() > logoMaxHeightPx {
		img = imaging.Fit(img, logoMaxWidthPx, logoMaxHeightPx, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return buf.Bytes(), nil
}
