// Lint rules for declaration code.
//
// Rules:
//
//	AWL001: Use pseudo-parameter constants instead of hardcoded strings
//	AWL002: Use intrinsic types instead of raw map[string]any
//	AWL003: Detect duplicate resource variable names
//	AWL004: Split large files with too many resources
//	AWL005: Avoid explicit Ref{} - use direct variable references or Param()
//	AWL006: Avoid explicit GetAtt{} - use resource.Attr field access
//	AWL007: Avoid pointer declarations (&Type{}) - use value types
//	AWL008: Use Json{} instead of map[string]any{} for inline JSON
package linter

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// Rule is the interface for lint rules.
type Rule interface {
	ID() string
	Description() string
	Check(file *ast.File, fset *token.FileSet) []Issue
}

// AllRules returns every lint rule.
func AllRules() []Rule {
	return []Rule{
		HardcodedPseudoParameter{},
		MapShouldBeIntrinsic{},
		DuplicateResource{},
		FileTooLarge{},
		ExplicitRef{},
		ExplicitGetAtt{},
		PointerDeclaration{},
		RawJSONMap{},
	}
}

// HardcodedPseudoParameter detects hardcoded AWS pseudo-parameter strings.
//
// Detects: "AWS::Region", "AWS::AccountId", "AWS::StackName"
// Suggests: AWS_REGION, AWS_ACCOUNT_ID, etc.
type HardcodedPseudoParameter struct{}

func (r HardcodedPseudoParameter) ID() string { return "AWL001" }
func (r HardcodedPseudoParameter) Description() string {
	return "Use pseudo-parameter constants instead of hardcoded strings"
}

var pseudoParams = map[string]string{
	"AWS::Region":           "AWS_REGION",
	"AWS::AccountId":        "AWS_ACCOUNT_ID",
	"AWS::StackName":        "AWS_STACK_NAME",
	"AWS::StackId":          "AWS_STACK_ID",
	"AWS::Partition":        "AWS_PARTITION",
	"AWS::URLSuffix":        "AWS_URL_SUFFIX",
	"AWS::NoValue":          "AWS_NO_VALUE",
	"AWS::NotificationARNs": "AWS_NOTIFICATION_ARNS",
}

func (r HardcodedPseudoParameter) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	ast.Inspect(file, func(n ast.Node) bool {
		lit, ok := n.(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}

		value := strings.Trim(lit.Value, `"`)

		if constant, found := pseudoParams[value]; found {
			pos := fset.Position(lit.Pos())
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Message:    "Use " + constant + " instead of \"" + value + "\"",
				Suggestion: constant,
				File:       pos.Filename,
				Line:       pos.Line,
				Column:     pos.Column,
				Severity:   SeverityWarning,
			})
		}

		return true
	})

	return issues
}

// MapShouldBeIntrinsic detects map[string]any patterns that should use
// intrinsic types.
//
// Detects: map[string]any{"Ref": "..."}, map[string]any{"Fn::Sub": "..."}
// Suggests: Ref{...}, Sub{...}
type MapShouldBeIntrinsic struct{}

func (r MapShouldBeIntrinsic) ID() string { return "AWL002" }
func (r MapShouldBeIntrinsic) Description() string {
	return "Use intrinsic types instead of raw map[string]any"
}

var intrinsicKeys = map[string]string{
	"Ref":        "Ref",
	"Fn::Sub":    "Sub",
	"Fn::Join":   "Join",
	"Fn::GetAtt": "GetAtt",
}

func (r MapShouldBeIntrinsic) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	ast.Inspect(file, func(n ast.Node) bool {
		comp, ok := n.(*ast.CompositeLit)
		if !ok {
			return true
		}

		if !isMapStringAny(comp.Type) {
			return true
		}

		if len(comp.Elts) != 1 {
			return true
		}

		kv, ok := comp.Elts[0].(*ast.KeyValueExpr)
		if !ok {
			return true
		}

		keyLit, ok := kv.Key.(*ast.BasicLit)
		if !ok || keyLit.Kind != token.STRING {
			return true
		}

		keyValue := strings.Trim(keyLit.Value, `"`)
		if typeName, found := intrinsicKeys[keyValue]; found {
			pos := fset.Position(comp.Pos())
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Message:    "Use " + typeName + "{...} instead of map[string]any{\"" + keyValue + "\": ...}",
				Suggestion: typeName + "{...}",
				File:       pos.Filename,
				Line:       pos.Line,
				Column:     pos.Column,
				Severity:   SeverityWarning,
			})
		}

		return true
	})

	return issues
}

// isMapStringAny checks if an expression is map[string]any.
func isMapStringAny(expr ast.Expr) bool {
	mapType, ok := expr.(*ast.MapType)
	if !ok {
		return false
	}

	keyIdent, ok := mapType.Key.(*ast.Ident)
	if !ok || keyIdent.Name != "string" {
		return false
	}

	switch v := mapType.Value.(type) {
	case *ast.Ident:
		return v.Name == "any"
	case *ast.InterfaceType:
		return len(v.Methods.List) == 0
	}

	return false
}

// resourcePackages are the package names resource declarations come from.
var resourcePackages = map[string]bool{
	"cloudtrail": true,
	"events":     true,
	"guardduty":  true,
	"iam":        true,
	"logs":       true,
	"s3":         true,
}

// DuplicateResource detects duplicate resource variable names in a file.
type DuplicateResource struct{}

func (r DuplicateResource) ID() string { return "AWL003" }
func (r DuplicateResource) Description() string {
	return "Detect duplicate resource variable names"
}

func (r DuplicateResource) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	varLocations := make(map[string][]token.Position)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}

		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}

			if !isResourceDeclaration(valueSpec) {
				continue
			}

			for _, name := range valueSpec.Names {
				pos := fset.Position(name.Pos())
				varLocations[name.Name] = append(varLocations[name.Name], pos)
			}
		}
	}

	for name, locations := range varLocations {
		if len(locations) > 1 {
			for _, loc := range locations[1:] {
				issues = append(issues, Issue{
					Rule:       r.ID(),
					Message:    fmt.Sprintf("Duplicate resource variable %q (first defined at line %d)", name, locations[0].Line),
					Suggestion: "rename or remove the duplicate declaration",
					File:       loc.Filename,
					Line:       loc.Line,
					Column:     loc.Column,
					Severity:   SeverityError,
				})
			}
		}
	}

	return issues
}

// isResourceDeclaration checks if a value spec declares a resource.
func isResourceDeclaration(spec *ast.ValueSpec) bool {
	for _, value := range spec.Values {
		comp, ok := value.(*ast.CompositeLit)
		if !ok {
			continue
		}

		sel, ok := comp.Type.(*ast.SelectorExpr)
		if !ok {
			continue
		}

		pkgIdent, ok := sel.X.(*ast.Ident)
		if !ok {
			continue
		}

		if resourcePackages[pkgIdent.Name] && !strings.Contains(sel.Sel.Name, "_") {
			return true
		}
	}

	return false
}

// FileTooLarge detects files with too many resources.
type FileTooLarge struct {
	MaxResources int
}

func (r FileTooLarge) ID() string { return "AWL004" }
func (r FileTooLarge) Description() string {
	return "Split large files into smaller ones"
}

func (r FileTooLarge) Check(file *ast.File, fset *token.FileSet) []Issue {
	maxResources := r.MaxResources
	if maxResources == 0 {
		maxResources = 15 // Default
	}

	count := 0
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}
		for _, spec := range genDecl.Specs {
			if valueSpec, ok := spec.(*ast.ValueSpec); ok && isResourceDeclaration(valueSpec) {
				count++
			}
		}
	}

	if count <= maxResources {
		return nil
	}

	pos := fset.Position(file.Pos())
	return []Issue{{
		Rule:       r.ID(),
		Message:    fmt.Sprintf("File declares %d resources (max %d); split by concern", count, maxResources),
		Suggestion: "move related declarations into their own file",
		File:       pos.Filename,
		Line:       pos.Line,
		Column:     pos.Column,
		Severity:   SeverityWarning,
	}}
}

// ExplicitRef detects explicit Ref{} literals. Direct variable references
// serialize to Ref automatically and survive renames.
type ExplicitRef struct{}

func (r ExplicitRef) ID() string { return "AWL005" }
func (r ExplicitRef) Description() string {
	return "Avoid explicit Ref{} - use direct variable references or Param()"
}

func (r ExplicitRef) Check(file *ast.File, fset *token.FileSet) []Issue {
	return checkIntrinsicLiteral(file, fset, "Ref", Issue{
		Rule:       "AWL005",
		Message:    "Use a direct variable reference (or Param()) instead of an explicit Ref{}",
		Suggestion: "replace Ref{LogicalName: \"X\"} with the X variable itself",
		Severity:   SeverityWarning,
	})
}

// ExplicitGetAtt detects explicit GetAtt{} literals. Resource.Attr field
// access resolves to GetAtt and is checked by the compiler.
type ExplicitGetAtt struct{}

func (r ExplicitGetAtt) ID() string { return "AWL006" }
func (r ExplicitGetAtt) Description() string {
	return "Avoid explicit GetAtt{} - use resource.Attr field access"
}

func (r ExplicitGetAtt) Check(file *ast.File, fset *token.FileSet) []Issue {
	return checkIntrinsicLiteral(file, fset, "GetAtt", Issue{
		Rule:       "AWL006",
		Message:    "Use Resource.Attr field access instead of an explicit GetAtt{}",
		Suggestion: "replace GetAtt{LogicalName: \"X\", Attribute: \"Arn\"} with X.Arn",
		Severity:   SeverityWarning,
	})
}

// checkIntrinsicLiteral reports composite literals of the named intrinsic type.
func checkIntrinsicLiteral(file *ast.File, fset *token.FileSet, typeName string, template Issue) []Issue {
	var issues []Issue

	ast.Inspect(file, func(n ast.Node) bool {
		comp, ok := n.(*ast.CompositeLit)
		if !ok {
			return true
		}

		name := ""
		switch t := comp.Type.(type) {
		case *ast.Ident:
			name = t.Name
		case *ast.SelectorExpr:
			if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "intrinsics" {
				name = t.Sel.Name
			}
		}

		if name == typeName {
			pos := fset.Position(comp.Pos())
			issue := template
			issue.File = pos.Filename
			issue.Line = pos.Line
			issue.Column = pos.Column
			issues = append(issues, issue)
		}

		return true
	})

	return issues
}

// PointerDeclaration detects &Type{} declarations. Declarations are plain
// values; pointers break value comparison during reference resolution.
type PointerDeclaration struct{}

func (r PointerDeclaration) ID() string { return "AWL007" }
func (r PointerDeclaration) Description() string {
	return "Avoid pointer declarations (&Type{}) - use value types"
}

func (r PointerDeclaration) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}

		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}

			for _, value := range valueSpec.Values {
				unary, ok := value.(*ast.UnaryExpr)
				if !ok || unary.Op != token.AND {
					continue
				}
				if _, ok := unary.X.(*ast.CompositeLit); !ok {
					continue
				}

				pos := fset.Position(value.Pos())
				issues = append(issues, Issue{
					Rule:       r.ID(),
					Message:    "Declare resources as values, not pointers",
					Suggestion: "drop the & and declare a plain struct value",
					File:       pos.Filename,
					Line:       pos.Line,
					Column:     pos.Column,
					Severity:   SeverityWarning,
				})
			}
		}
	}

	return issues
}

// RawJSONMap detects map[string]any{} literals that should use Json{}.
type RawJSONMap struct{}

func (r RawJSONMap) ID() string { return "AWL008" }
func (r RawJSONMap) Description() string {
	return "Use Json{} instead of map[string]any{} for inline JSON"
}

func (r RawJSONMap) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	ast.Inspect(file, func(n ast.Node) bool {
		comp, ok := n.(*ast.CompositeLit)
		if !ok {
			return true
		}

		if !isMapStringAny(comp.Type) {
			return true
		}

		// Single intrinsic-keyed maps are AWL002's finding
		if len(comp.Elts) == 1 {
			if kv, ok := comp.Elts[0].(*ast.KeyValueExpr); ok {
				if keyLit, ok := kv.Key.(*ast.BasicLit); ok {
					key := strings.Trim(keyLit.Value, `"`)
					if _, found := intrinsicKeys[key]; found {
						return true
					}
				}
			}
		}

		pos := fset.Position(comp.Pos())
		issues = append(issues, Issue{
			Rule:       r.ID(),
			Message:    "Use Json{} instead of map[string]any{}",
			Suggestion: "Json{...}",
			File:       pos.Filename,
			Line:       pos.Line,
			Column:     pos.Column,
			Severity:   SeverityInfo,
		})

		return true
	})

	return issues
}
