package pricing

import (
	"fmt"
	"strings"

	"github.com/PatrickFoster659/pdfoster-creative-api/internal/entity"
)

// 固定价格表。键由请求参数确定性推导，金额单位为美元。
const (
	KeyImageStandard = "dall-e-3-standard"
	KeyImageHD       = "dall-e-3-hd"
	KeyImageWide     = "dall-e-3-wide"
	KeyImageWideHD   = "dall-e-3-wide-hd"
	KeySeedreamImage = "seedream-image"
	KeyRunwayVideo   = "runway-video"
)

// wideSizeMarker 标识宽幅尺寸（1792x1024 或 1024x1792）
const wideSizeMarker = "1792"

var priceTable = map[string]float64{
	KeyImageStandard: 0.04,
	KeyImageHD:       0.08,
	KeyImageWide:     0.08,
	KeyImageWideHD:   0.12,
	KeySeedreamImage: 0.03,
	KeyRunwayVideo:   0.25,
}

// Resolve derives the cost key and price for a request. It is a pure
// function of (type, options); an unmapped combination is a configuration
// defect and is reported as an error instead of a silent zero cost.
func Resolve(genType entity.GenerationType, opts entity.GenerationOptions) (string, float64, error) {
	var key string

	switch genType {
	case entity.TypeImage:
		if IsSeedreamModel(opts.Model) {
			key = KeySeedreamImage
			break
		}
		key = imageKey(opts.Quality, opts.Size)
	case entity.TypeVideo:
		key = KeyRunwayVideo
	default:
		return "", 0, fmt.Errorf("pricing: no cost entry for type %q", genType)
	}

	cost, ok := priceTable[key]
	if !ok {
		return "", 0, fmt.Errorf("pricing: cost key %q missing from price table", key)
	}
	return key, cost, nil
}

// imageKey 按 2x2 决策选择图像价格键：quality 是否 hd × 尺寸是否宽幅
func imageKey(quality, size string) string {
	hd := strings.TrimSpace(quality) == "hd"
	wide := strings.Contains(size, wideSizeMarker)

	switch {
	case hd && wide:
		return KeyImageWideHD
	case wide:
		return KeyImageWide
	case hd:
		return KeyImageHD
	default:
		return KeyImageStandard
	}
}

// IsSeedreamModel reports whether the model option selects the Seedream
// alternate image vendor.
func IsSeedreamModel(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "doubao-seedream")
}
