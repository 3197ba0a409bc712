// Package imageproc holds the grayscale and label-image algorithms used by the
// webimages handle layer: contrast and histogram operations, filters, edge
// detection, distance transforms, morphology, region labelling, noise and seam
// carving.
//
// Every function treats its input as read-only and returns a freshly allocated
// image whose bounds start at the origin.
package imageproc
