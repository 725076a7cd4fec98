// Package imaging implements the transform step of the optimize pipeline:
// format sniffing, bounding-box resize and WebP encoding.
//
// Sniff recognises JPEG, PNG, GIF, BMP, TIFF and WebP by their magic bytes,
// independent of the file extension. Transformer decodes, fits the image
// inside MaxWidth x MaxHeight preserving aspect ratio, and encodes lossy WebP.
//
// Transforms are CPU bound. A Transformer owns a weighted semaphore so no
// more than Workers transforms run at once across all requests; callers
// waiting for a slot give up when their context is cancelled.
//
//	tr := imaging.NewTransformer(imaging.Config{MaxWidth: 2048, MaxHeight: 2048, Quality: 75})
//	out, err := tr.Transform(ctx, upload)
package imaging
