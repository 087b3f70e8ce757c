package solar

import (
	"math"

	"github.com/orrery3d/orrery/common"
)

const (
	proceduralWidth  = 256
	proceduralHeight = 128
)

// proceduralTexture synthesizes a banded RGBA texture from a base color for
// bodies that have no texture image on disk. Bands run along latitude with a
// deterministic brightness variation, so the generated surface still shows
// rotation.
//
// Parameters:
//   - color: base RGB color, each channel in [0, 1]
//
// Returns:
//   - common.TextureStagingData: the generated pixels and dimensions
func proceduralTexture(color [3]float64) common.TextureStagingData {
	pixels := make([]byte, proceduralWidth*proceduralHeight*4)
	for y := 0; y < proceduralHeight; y++ {
		v := float64(y) / float64(proceduralHeight)
		shade := 0.8 + 0.14*math.Sin(v*31.0) + 0.06*math.Sin(v*113.0)
		for x := 0; x < proceduralWidth; x++ {
			i := (y*proceduralWidth + x) * 4
			pixels[i] = shadeByte(color[0], shade)
			pixels[i+1] = shadeByte(color[1], shade)
			pixels[i+2] = shadeByte(color[2], shade)
			pixels[i+3] = 255
		}
	}
	return common.TextureStagingData{
		Pixels: pixels,
		Width:  proceduralWidth,
		Height: proceduralHeight,
	}
}

func shadeByte(channel, shade float64) byte {
	value := channel * shade * 255.0
	if value < 0 {
		return 0
	}
	if value > 255 {
		return 255
	}
	return byte(value)
}
