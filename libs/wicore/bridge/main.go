// Command bridge builds the webimages C ABI:
//
//	go build -buildmode=c-shared -o libwebimages.so ./libs/wicore/bridge
//
// Handles are opaque 64-bit ids; 0 is the null handle. Every handle returned
// is owned by the caller and must be released with the matching *_free call.
// Strings returned by *_get_err_msg and wi_img_color belong to the handle and
// stay valid until it is released; callers must not free them.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef uint64_t WiImage;
typedef uint64_t WiGrayImage;
typedef uint64_t WiGrayImageU32;

typedef struct {
	uint8_t r;
	uint8_t g;
	uint8_t b;
	uint8_t a;
} RgbaPixel;
*/
import "C"
import (
	"image/color"
	"math"
	"sync"
	"unsafe"

	"webimages.io/libs/wicore"
)

func init() {
	if err := wicore.Configure(wicore.LoadConfig()); err != nil {
		wicore.Error("invalid configuration", "error", err)
	}
}

// borrowed caches C strings handed out for a handle until it is released.
var borrowed = struct {
	sync.Mutex
	byHandle map[uint64]map[string]*C.char
}{byHandle: make(map[uint64]map[string]*C.char)}

func borrow(id uint64, key, s string) *C.char {
	borrowed.Lock()
	defer borrowed.Unlock()
	m := borrowed.byHandle[id]
	if m == nil {
		m = make(map[string]*C.char)
		borrowed.byHandle[id] = m
	}
	if cs, ok := m[key]; ok {
		return cs
	}
	cs := C.CString(s)
	m[key] = cs
	return cs
}

func forget(id uint64) {
	borrowed.Lock()
	defer borrowed.Unlock()
	for _, cs := range borrowed.byHandle[id] {
		C.free(unsafe.Pointer(cs))
	}
	delete(borrowed.byHandle, id)
}

func goString(s *C.char) (string, bool) {
	if s == nil {
		return "", false
	}
	return C.GoString(s), true
}

// cint saturates v to the C int range.
func cint(v int) C.int {
	return C.int(min(max(v, math.MinInt32), math.MaxInt32))
}

// kernel reads exactly nine floats from p.
func kernel(p *C.float) ([9]float32, bool) {
	var k [9]float32
	if p == nil {
		return k, false
	}
	copy(k[:], unsafe.Slice((*float32)(unsafe.Pointer(p)), 9))
	return k, true
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func img(h C.WiImage) wicore.ImageHandle {
	return wicore.ImageHandle(h)
}

func gray(h C.WiGrayImage) wicore.GrayHandle {
	return wicore.GrayHandle(h)
}

func labels(h C.WiGrayImageU32) wicore.LabelHandle {
	return wicore.LabelHandle(h)
}

// Status

//export wi_img_is_ok
func wi_img_is_ok(ctx C.WiImage) C.int { return cbool(wicore.Images.IsOk(img(ctx))) }

//export wi_img_is_err
func wi_img_is_err(ctx C.WiImage) C.int { return cbool(wicore.Images.IsErr(img(ctx))) }

//export wi_img_get_err_msg
func wi_img_get_err_msg(ctx C.WiImage) *C.char {
	msg, ok := wicore.Images.ErrorMessage(img(ctx))
	if !ok {
		return nil
	}
	return borrow(uint64(ctx), "err", msg)
}

//export wi_grayimg_is_ok
func wi_grayimg_is_ok(ctx C.WiGrayImage) C.int { return cbool(wicore.Grays.IsOk(gray(ctx))) }

//export wi_grayimg_is_err
func wi_grayimg_is_err(ctx C.WiGrayImage) C.int { return cbool(wicore.Grays.IsErr(gray(ctx))) }

//export wi_grayimg_get_err_msg
func wi_grayimg_get_err_msg(ctx C.WiGrayImage) *C.char {
	msg, ok := wicore.Grays.ErrorMessage(gray(ctx))
	if !ok {
		return nil
	}
	return borrow(uint64(ctx), "err", msg)
}

//export wi_grayimg_u32_is_ok
func wi_grayimg_u32_is_ok(ctx C.WiGrayImageU32) C.int { return cbool(wicore.Labels.IsOk(labels(ctx))) }

//export wi_grayimg_u32_is_err
func wi_grayimg_u32_is_err(ctx C.WiGrayImageU32) C.int {
	return cbool(wicore.Labels.IsErr(labels(ctx)))
}

//export wi_grayimg_u32_get_err_msg
func wi_grayimg_u32_get_err_msg(ctx C.WiGrayImageU32) *C.char {
	msg, ok := wicore.Labels.ErrorMessage(labels(ctx))
	if !ok {
		return nil
	}
	return borrow(uint64(ctx), "err", msg)
}

// Lifecycle

//export wi_img_clone
func wi_img_clone(ctx C.WiImage) C.WiImage { return C.WiImage(wicore.Images.Clone(img(ctx))) }

//export wi_img_free
func wi_img_free(ctx C.WiImage) {
	if wicore.Images.Release(img(ctx)) {
		forget(uint64(ctx))
	}
}

//export wi_grayimg_clone
func wi_grayimg_clone(ctx C.WiGrayImage) C.WiGrayImage {
	return C.WiGrayImage(wicore.Grays.Clone(gray(ctx)))
}

//export wi_grayimg_free
func wi_grayimg_free(ctx C.WiGrayImage) {
	if wicore.Grays.Release(gray(ctx)) {
		forget(uint64(ctx))
	}
}

//export wi_grayimg_u32_clone
func wi_grayimg_u32_clone(ctx C.WiGrayImageU32) C.WiGrayImageU32 {
	return C.WiGrayImageU32(wicore.Labels.Clone(labels(ctx)))
}

//export wi_grayimg_u32_free
func wi_grayimg_u32_free(ctx C.WiGrayImageU32) {
	if wicore.Labels.Release(labels(ctx)) {
		forget(uint64(ctx))
	}
}

// Construction and conversion

//export wi_img_open
func wi_img_open(path *C.char) C.WiImage {
	p, ok := goString(path)
	if !ok {
		return 0
	}
	return C.WiImage(wicore.Open(p))
}

//export wi_new_luma8_img
func wi_new_luma8_img(width, height C.uint32_t) C.WiImage {
	return C.WiImage(wicore.NewImage(uint32(width), uint32(height), wicore.Luma8))
}

//export wi_new_rgb8_img
func wi_new_rgb8_img(width, height C.uint32_t) C.WiImage {
	return C.WiImage(wicore.NewImage(uint32(width), uint32(height), wicore.RGB8))
}

//export wi_new_rgba8_img
func wi_new_rgba8_img(width, height C.uint32_t) C.WiImage {
	return C.WiImage(wicore.NewImage(uint32(width), uint32(height), wicore.RGBA8))
}

//export wi_new_grayimg
func wi_new_grayimg(width, height C.uint32_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.NewGray(uint32(width), uint32(height)))
}

//export wi_new_grayimg_u32
func wi_new_grayimg_u32(width, height C.uint32_t) C.WiGrayImageU32 {
	return C.WiGrayImageU32(wicore.NewLabels(uint32(width), uint32(height)))
}

//export wi_img_to_luma
func wi_img_to_luma(ctx C.WiImage) C.WiGrayImage {
	return C.WiGrayImage(wicore.ToGray(img(ctx)))
}

//export wi_grayimg_to_img
func wi_grayimg_to_img(ctx C.WiGrayImage) C.WiImage {
	return C.WiImage(wicore.GrayToImage(gray(ctx)))
}

//export wi_grayimg_u32_to_img_with_pretty_labels
func wi_grayimg_u32_to_img_with_pretty_labels(ctx C.WiGrayImageU32) C.WiImage {
	return C.WiImage(wicore.LabelsToColor(labels(ctx)))
}

//export wi_grayimg_u32_to_img_with_pretty_labels_seeded
func wi_grayimg_u32_to_img_with_pretty_labels_seeded(ctx C.WiGrayImageU32, seed C.uint64_t) C.WiImage {
	return C.WiImage(wicore.LabelsToColorSeeded(labels(ctx), uint64(seed)))
}

// Image properties

//export wi_img_color
func wi_img_color(ctx C.WiImage) *C.char {
	c := wicore.Color(img(ctx))
	if c == "" {
		return nil
	}
	return borrow(uint64(ctx), "color", c)
}

//export wi_img_width
func wi_img_width(ctx C.WiImage) C.int { return cint(wicore.Images.Width(img(ctx))) }

//export wi_img_height
func wi_img_height(ctx C.WiImage) C.int { return cint(wicore.Images.Height(img(ctx))) }

//export wi_grayimg_width
func wi_grayimg_width(ctx C.WiGrayImage) C.int { return cint(wicore.Grays.Width(gray(ctx))) }

//export wi_grayimg_height
func wi_grayimg_height(ctx C.WiGrayImage) C.int { return cint(wicore.Grays.Height(gray(ctx))) }

//export wi_grayimg_u32_width
func wi_grayimg_u32_width(ctx C.WiGrayImageU32) C.int {
	return cint(wicore.Labels.Width(labels(ctx)))
}

//export wi_grayimg_u32_height
func wi_grayimg_u32_height(ctx C.WiGrayImageU32) C.int {
	return cint(wicore.Labels.Height(labels(ctx)))
}

// Image operations

//export wi_img_crop
func wi_img_crop(ctx C.WiImage, cx, cy, width, height C.uint32_t) C.WiImage {
	return C.WiImage(wicore.Crop(img(ctx), uint32(cx), uint32(cy), uint32(width), uint32(height)))
}

//export wi_img_grayscale
func wi_img_grayscale(ctx C.WiImage) C.WiImage { return C.WiImage(wicore.Grayscale(img(ctx))) }

//export wi_img_invert
func wi_img_invert(ctx C.WiImage) C.WiImage { return C.WiImage(wicore.Invert(img(ctx))) }

//export wi_img_resize
func wi_img_resize(ctx C.WiImage, width, height C.uint32_t, filter *C.char) C.WiImage {
	f, ok := goString(filter)
	if !ok {
		return 0
	}
	return C.WiImage(wicore.Resize(img(ctx), uint32(width), uint32(height), f))
}

//export wi_img_resize_exact
func wi_img_resize_exact(ctx C.WiImage, width, height C.uint32_t, filter *C.char) C.WiImage {
	f, ok := goString(filter)
	if !ok {
		return 0
	}
	return C.WiImage(wicore.ResizeExact(img(ctx), uint32(width), uint32(height), f))
}

//export wi_img_thumbnail
func wi_img_thumbnail(ctx C.WiImage, width, height C.uint32_t) C.WiImage {
	return C.WiImage(wicore.Thumbnail(img(ctx), uint32(width), uint32(height)))
}

//export wi_img_thumbnail_exact
func wi_img_thumbnail_exact(ctx C.WiImage, width, height C.uint32_t) C.WiImage {
	return C.WiImage(wicore.ThumbnailExact(img(ctx), uint32(width), uint32(height)))
}

//export wi_img_blur
func wi_img_blur(ctx C.WiImage, sigma C.float) C.WiImage {
	return C.WiImage(wicore.Blur(img(ctx), float32(sigma)))
}

//export wi_img_unsharpen
func wi_img_unsharpen(ctx C.WiImage, sigma C.float, threshold C.int32_t) C.WiImage {
	return C.WiImage(wicore.Unsharpen(img(ctx), float32(sigma), int32(threshold)))
}

//export wi_img_filter3x3
func wi_img_filter3x3(ctx C.WiImage, value *C.float) C.WiImage {
	k, ok := kernel(value)
	if !ok {
		return 0
	}
	return C.WiImage(wicore.Filter3x3(img(ctx), k))
}

//export wi_img_adjust_contrast
func wi_img_adjust_contrast(ctx C.WiImage, value C.float) C.WiImage {
	return C.WiImage(wicore.AdjustContrast(img(ctx), float32(value)))
}

//export wi_img_brighten
func wi_img_brighten(ctx C.WiImage, value C.int) C.WiImage {
	return C.WiImage(wicore.Brighten(img(ctx), int32(value)))
}

//export wi_img_huerotate
func wi_img_huerotate(ctx C.WiImage, value C.int) C.WiImage {
	return C.WiImage(wicore.HueRotate(img(ctx), int32(value)))
}

//export wi_img_flipv
func wi_img_flipv(ctx C.WiImage) C.WiImage { return C.WiImage(wicore.FlipVertical(img(ctx))) }

//export wi_img_fliph
func wi_img_fliph(ctx C.WiImage) C.WiImage { return C.WiImage(wicore.FlipHorizontal(img(ctx))) }

//export wi_img_rotate90
func wi_img_rotate90(ctx C.WiImage) C.WiImage { return C.WiImage(wicore.Rotate90(img(ctx))) }

//export wi_img_rotate180
func wi_img_rotate180(ctx C.WiImage) C.WiImage { return C.WiImage(wicore.Rotate180(img(ctx))) }

//export wi_img_rotate270
func wi_img_rotate270(ctx C.WiImage) C.WiImage { return C.WiImage(wicore.Rotate270(img(ctx))) }

// Persistence

//export wi_img_save
func wi_img_save(ctx C.WiImage, path *C.char) C.int {
	p, ok := goString(path)
	if !ok {
		return 0
	}
	return cbool(wicore.Save(img(ctx), p))
}

//export wi_img_save_with_format
func wi_img_save_with_format(ctx C.WiImage, path, format *C.char) C.int {
	p, ok := goString(path)
	if !ok {
		return 0
	}
	f, ok := goString(format)
	if !ok {
		return 0
	}
	return cbool(wicore.SaveWithFormat(img(ctx), p, f))
}

// Pixel access. Every accessor returns 1 on success, 0 when out of bounds and
// -1 for an unusable handle or a null output pointer.

//export wi_img_get_rgba_pixel
func wi_img_get_rgba_pixel(ctx C.WiImage, px *C.RgbaPixel, cx, cy C.uint32_t) C.int {
	if px == nil {
		return C.int(wicore.StatusInvalid)
	}
	v, st := wicore.GetRGBA(img(ctx), uint32(cx), uint32(cy))
	if st == wicore.StatusOK {
		px.r, px.g, px.b, px.a = C.uint8_t(v.R), C.uint8_t(v.G), C.uint8_t(v.B), C.uint8_t(v.A)
	}
	return C.int(st)
}

//export wi_img_set_rgba_pixel
func wi_img_set_rgba_pixel(ctx C.WiImage, cx, cy C.uint32_t, px C.RgbaPixel) C.int {
	v := color.NRGBA{R: uint8(px.r), G: uint8(px.g), B: uint8(px.b), A: uint8(px.a)}
	return C.int(wicore.SetRGBA(img(ctx), uint32(cx), uint32(cy), v))
}

//export wi_grayimg_get_pixel
func wi_grayimg_get_pixel(ctx C.WiGrayImage, px *C.uint8_t, cx, cy C.uint32_t) C.int {
	if px == nil {
		return C.int(wicore.StatusInvalid)
	}
	v, st := wicore.GetGray(gray(ctx), uint32(cx), uint32(cy))
	if st == wicore.StatusOK {
		*px = C.uint8_t(v)
	}
	return C.int(st)
}

//export wi_grayimg_set_pixel
func wi_grayimg_set_pixel(ctx C.WiGrayImage, cx, cy C.uint32_t, px C.uint8_t) C.int {
	return C.int(wicore.SetGray(gray(ctx), uint32(cx), uint32(cy), uint8(px)))
}

//export wi_grayimg_u32_get_pixel
func wi_grayimg_u32_get_pixel(ctx C.WiGrayImageU32, px *C.uint32_t, cx, cy C.uint32_t) C.int {
	if px == nil {
		return C.int(wicore.StatusInvalid)
	}
	v, st := wicore.GetLabel(labels(ctx), uint32(cx), uint32(cy))
	if st == wicore.StatusOK {
		*px = C.uint32_t(v)
	}
	return C.int(st)
}

//export wi_grayimg_u32_set_pixel
func wi_grayimg_u32_set_pixel(ctx C.WiGrayImageU32, cx, cy C.uint32_t, px C.uint32_t) C.int {
	return C.int(wicore.SetLabel(labels(ctx), uint32(cx), uint32(cy), uint32(px)))
}

// Gray operations

//export wi_grayimg_contrast_adaptive_threshold
func wi_grayimg_contrast_adaptive_threshold(ctx C.WiGrayImage, blockRadius C.uint32_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.AdaptiveThreshold(gray(ctx), uint32(blockRadius)))
}

//export wi_grayimg_contrast_equalize_histogram
func wi_grayimg_contrast_equalize_histogram(ctx C.WiGrayImage) C.WiGrayImage {
	return C.WiGrayImage(wicore.EqualizeHistogram(gray(ctx)))
}

//export wi_grayimg_contrast_match_histogram
func wi_grayimg_contrast_match_histogram(ctx, target C.WiGrayImage) C.WiGrayImage {
	return C.WiGrayImage(wicore.MatchHistogram(gray(ctx), gray(target)))
}

//export wi_grayimg_contrast_otsu_level
func wi_grayimg_contrast_otsu_level(ctx C.WiGrayImage) C.int {
	return C.int(wicore.OtsuLevel(gray(ctx)))
}

//export wi_grayimg_contrast_stretch_contrast
func wi_grayimg_contrast_stretch_contrast(ctx C.WiGrayImage, lower, upper C.uint8_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.StretchContrast(gray(ctx), uint8(lower), uint8(upper)))
}

//export wi_grayimg_contrast_threshold
func wi_grayimg_contrast_threshold(ctx C.WiGrayImage, thresh C.uint8_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.Threshold(gray(ctx), uint8(thresh)))
}

//export wi_grayimg_distance_transform
func wi_grayimg_distance_transform(ctx C.WiGrayImage, norm *C.char) C.WiGrayImage {
	n, ok := goString(norm)
	if !ok {
		return 0
	}
	return C.WiGrayImage(wicore.DistanceTransform(gray(ctx), n))
}

//export wi_grayimg_edges_canny
func wi_grayimg_edges_canny(ctx C.WiGrayImage, lowThreshold, highThreshold C.float) C.WiGrayImage {
	return C.WiGrayImage(wicore.Canny(gray(ctx), float32(lowThreshold), float32(highThreshold)))
}

//export wi_grayimg_box_filter
func wi_grayimg_box_filter(ctx C.WiGrayImage, xRadius, yRadius C.uint32_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.BoxFilter(gray(ctx), uint32(xRadius), uint32(yRadius)))
}

//export wi_grayimg_filter3x3
func wi_grayimg_filter3x3(ctx C.WiGrayImage, value *C.float) C.WiGrayImage {
	k, ok := kernel(value)
	if !ok {
		return 0
	}
	return C.WiGrayImage(wicore.GrayFilter3x3(gray(ctx), k))
}

//export wi_grayimg_filter_gaussian_blur_f32
func wi_grayimg_filter_gaussian_blur_f32(ctx C.WiGrayImage, sigma C.float) C.WiGrayImage {
	return C.WiGrayImage(wicore.GaussianBlur(gray(ctx), float32(sigma)))
}

//export wi_grayimg_filter_median_filter
func wi_grayimg_filter_median_filter(ctx C.WiGrayImage, xRadius, yRadius C.uint32_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.MedianFilter(gray(ctx), uint32(xRadius), uint32(yRadius)))
}

//export wi_grayimg_filter_sharpen3x3
func wi_grayimg_filter_sharpen3x3(ctx C.WiGrayImage) C.WiGrayImage {
	return C.WiGrayImage(wicore.Sharpen3x3(gray(ctx)))
}

//export wi_grayimg_filter_sharpen_gaussian
func wi_grayimg_filter_sharpen_gaussian(ctx C.WiGrayImage, sigma, amount C.float) C.WiGrayImage {
	return C.WiGrayImage(wicore.SharpenGaussian(gray(ctx), float32(sigma), float32(amount)))
}

//export wi_grayimg_geometric_transformations_translate
func wi_grayimg_geometric_transformations_translate(ctx C.WiGrayImage, t1, t2 C.int32_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.Translate(gray(ctx), int32(t1), int32(t2)))
}

type morphology func(wicore.GrayHandle, string, uint8) wicore.GrayHandle

func morph(ctx C.WiGrayImage, norm *C.char, k C.uint8_t, op morphology) C.WiGrayImage {
	n, ok := goString(norm)
	if !ok {
		return 0
	}
	return C.WiGrayImage(op(gray(ctx), n, uint8(k)))
}

//export wi_grayimg_morphology_close
func wi_grayimg_morphology_close(ctx C.WiGrayImage, norm *C.char, k C.uint8_t) C.WiGrayImage {
	return morph(ctx, norm, k, wicore.MorphologyClose)
}

//export wi_grayimg_morphology_dilate
func wi_grayimg_morphology_dilate(ctx C.WiGrayImage, norm *C.char, k C.uint8_t) C.WiGrayImage {
	return morph(ctx, norm, k, wicore.Dilate)
}

//export wi_grayimg_morphology_erode
func wi_grayimg_morphology_erode(ctx C.WiGrayImage, norm *C.char, k C.uint8_t) C.WiGrayImage {
	return morph(ctx, norm, k, wicore.Erode)
}

//export wi_grayimg_morphology_open
func wi_grayimg_morphology_open(ctx C.WiGrayImage, norm *C.char, k C.uint8_t) C.WiGrayImage {
	return morph(ctx, norm, k, wicore.MorphologyOpen)
}

//export wi_grayimg_gaussian_noise
func wi_grayimg_gaussian_noise(ctx C.WiGrayImage, mean, stddev C.double, seed C.uint64_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.GaussianNoise(gray(ctx), float64(mean), float64(stddev), uint64(seed)))
}

//export wi_grayimg_salt_and_pepper_noise
func wi_grayimg_salt_and_pepper_noise(ctx C.WiGrayImage, rate C.double, seed C.uint64_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.SaltAndPepperNoise(gray(ctx), float64(rate), uint64(seed)))
}

//export wi_grayimg_region_labelling_connected_components
func wi_grayimg_region_labelling_connected_components(ctx C.WiGrayImage, conn *C.char, background C.uint8_t) C.WiGrayImageU32 {
	c, ok := goString(conn)
	if !ok {
		return 0
	}
	return C.WiGrayImageU32(wicore.ConnectedComponents(gray(ctx), c, uint8(background)))
}

//export wi_grayimg_seam_carving_shrink_width
func wi_grayimg_seam_carving_shrink_width(ctx C.WiGrayImage, targetWidth C.uint32_t) C.WiGrayImage {
	return C.WiGrayImage(wicore.ShrinkWidth(gray(ctx), uint32(targetWidth)))
}

func main() {}
