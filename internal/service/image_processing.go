package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// decodeImage 解码图片（支持 jpeg/png/gif/webp）
func decodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return img, format, nil
}

// fitWithin 等比缩放到最长边不超过 maxDimension，已满足时原样返回
func fitWithin(src image.Image, maxDimension int) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxDimension <= 0 || (width <= maxDimension && height <= maxDimension) {
		return src
	}
	if width >= height {
		height = max(1, height*maxDimension/width)
		width = maxDimension
	} else {
		width = max(1, width*maxDimension/height)
		height = maxDimension
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}

// encodeJPEG 编码为 JPEG，透明区域以白色填充
func encodeJPEG(src image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	bounds := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// thumbnailJPEG 解码、缩放并重新编码为 JPEG
func thumbnailJPEG(data []byte, maxDimension, quality int) ([]byte, error) {
	img, _, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	return encodeJPEG(fitWithin(img, maxDimension), quality)
}
