// Package s3 implements storage.Storage on Amazon S3 and S3-compatible
// services (MinIO, DigitalOcean Spaces, Wasabi) using aws-sdk-go-v2.
//
// Directories are implicit: MkdirAll only validates the path, and List uses
// the "/" delimiter to report immediate children, with common prefixes as
// directory entries. An optional Prefix scopes all keys inside the bucket.
//
//	store, err := s3.New(ctx, s3.Config{
//		Bucket:         "images",
//		Region:         "us-east-1",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//		Prefix:         "optimized",
//	})
//
// Tests inject a fake through WithClient; Client lists the SDK calls used.
package s3
