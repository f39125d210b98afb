package domain

// BatchItem is one named triangle inside a batch file.
type BatchItem struct {
	Name     string
	Triangle Triangle
}

// Batch is an ordered list of triangles computed together.
type Batch struct {
	Name  string
	Items []BatchItem
}

// BatchRef points at a batch file discovered in a workspace.
type BatchRef struct {
	Name string
	Path string
}

// WorkspaceSpec describes where to scaffold a workspace.
type WorkspaceSpec struct {
	Root string
}
