package domain

// Artifact is a downloaded package payload staged on local disk.
type Artifact struct {
	Name    PackageName
	Version Version

	// Path is the local path of the downloaded content.
	Path string

	// Checksum is the expected SHA-256 digest in hex, as declared by the index.
	Checksum string
}
