package models

// ImageFile is a local image picked for upload. ContentType is the type the
// caller declares, usually from the file picker or the multipart header.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f ImageFile) Size() int64 {
	return int64(len(f.Data))
}
