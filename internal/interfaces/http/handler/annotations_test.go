package handler

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 每个路由处理方法都需要完整的 swag 注解
func TestRouteHandlersCarrySwagAnnotations(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	fset := token.NewFileSet()
	checked := 0
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ParseComments)
		require.NoError(t, err)

		for _, decl := range f.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || !fn.Name.IsExported() || !takesGinContext(fn) {
				continue
			}
			require.NotNil(t, fn.Doc, "%s has no doc comment", fn.Name.Name)
			doc := fn.Doc.Text()
			assert.True(t, strings.HasPrefix(doc, fn.Name.Name+" "), "%s doc should start with its name", fn.Name.Name)
			for _, tag := range []string{"@Summary", "@Tags", "@Produce", "@Success", "@Router"} {
				assert.Contains(t, doc, tag, "%s is missing %s", fn.Name.Name, tag)
			}
			checked++
		}
	}
	assert.GreaterOrEqual(t, checked, 17)
}

func takesGinContext(fn *ast.FuncDecl) bool {
	params := fn.Type.Params.List
	if len(params) != 1 {
		return false
	}
	star, ok := params[0].Type.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	return ok && sel.Sel.Name == "Context"
}
