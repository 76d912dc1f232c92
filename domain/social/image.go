package social

import "fmt"

// Image is an opaque reference to an uploaded object. Only the reference is
// stored; it is rendered into a download link at read time.
type Image struct {
	Bucket string
	Region string
	UUID   string
	Ext    string
}

// Link renders the download URL for the referenced object. Pure transform,
// no side effects.
func (i Image) Link() string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s.%s", i.Bucket, i.UUID, i.Ext)
}
