package contract

// ExportFile is a generated download: the handler streams Data with the
// given name and content type.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}
