package storagepath

import "fmt"

// Generator namespaces uploaded files under a fixed prefix,
// e.g. vocals/<filename>
type Generator struct {
	Prefix string
}

func (g Generator) GeneratePath(fileName string) string {
	return fmt.Sprintf("%s/%s", g.Prefix, fileName)
}
