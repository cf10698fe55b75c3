package prompt

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.txt
var templatesFS embed.FS

var (
	detectCriteria = mustLoad("detect_criteria.txt")
	detectFormat   = mustLoad("detect_format.txt")
)

func mustLoad(name string) string {
	b, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("prompt template %s: %v", name, err))
	}
	return strings.TrimSpace(string(b))
}
