package services

import (
	"path"
	"sort"
	"strings"

	"github.com/alimgiray/gitaudit/internal/models"
)

// projectFiles maps well-known extension-less or conventional file names to
// their category. Keys are lower-case basenames.
var projectFiles = map[string]models.Category{
	"makefile":          models.CategoryConfig,
	"gnumakefile":       models.CategoryConfig,
	"dockerfile":        models.CategoryConfig,
	"containerfile":     models.CategoryConfig,
	"jenkinsfile":       models.CategoryConfig,
	"vagrantfile":       models.CategoryConfig,
	"procfile":          models.CategoryConfig,
	"gemfile":           models.CategoryConfig,
	"rakefile":          models.CategoryConfig,
	"podfile":           models.CategoryConfig,
	"go.mod":            models.CategoryConfig,
	"go.sum":            models.CategoryConfig,
	"package.json":      models.CategoryConfig,
	"package-lock.json": models.CategoryConfig,
	"requirements.txt":  models.CategoryConfig,
	"cmakelists.txt":    models.CategoryConfig,
	".gitignore":        models.CategoryConfig,
	".gitattributes":    models.CategoryConfig,
	".dockerignore":     models.CategoryConfig,
	".editorconfig":     models.CategoryConfig,
	".env":              models.CategoryConfig,
	"readme":            models.CategoryDocs,
	"license":           models.CategoryDocs,
	"licence":           models.CategoryDocs,
	"copying":           models.CategoryDocs,
	"notice":            models.CategoryDocs,
	"changelog":         models.CategoryDocs,
	"authors":           models.CategoryDocs,
	"contributing":      models.CategoryDocs,
	"codeowners":        models.CategoryManagement,
	"owners":            models.CategoryManagement,
	"maintainers":       models.CategoryManagement,
	"funding.yml":       models.CategoryManagement,
	"security.md":       models.CategoryManagement,
}

var categorySuffixes = map[models.Category][]string{
	models.CategoryCode: {
		".go", ".py", ".js", ".jsx", ".mjs", ".ts", ".tsx", ".java", ".kt", ".kts", ".scala",
		".rb", ".php", ".c", ".h", ".cc", ".cpp", ".cxx", ".hpp", ".cs", ".rs", ".swift",
		".m", ".mm", ".dart", ".lua", ".pl", ".sh", ".bash", ".zsh", ".ps1", ".ex", ".exs",
		".erl", ".hs", ".clj", ".vue", ".svelte", ".r", ".jl", ".groovy", ".fs", ".html", ".css", ".scss",
	},
	models.CategoryTest: {
		"_test.go", "_test.py", "_test.rs", "_spec.rb", "_test.rb",
		".test.js", ".spec.js", ".test.jsx", ".spec.jsx", ".test.ts", ".spec.ts", ".test.tsx", ".spec.tsx",
		"test.java", "tests.java", "test.kt", "tests.cs", "test.cs", "tests.swift",
	},
	models.CategoryDocs: {
		".md", ".markdown", ".rst", ".txt", ".adoc", ".asciidoc", ".tex", ".org", ".pdf", ".doc", ".docx",
	},
	models.CategoryConfig: {
		".yml", ".yaml", ".json", ".toml", ".ini", ".cfg", ".conf", ".properties", ".xml",
		".lock", ".gradle", ".env", ".plist",
	},
	models.CategoryDatabase: {
		".sql", ".ddl", ".dml", ".prisma", ".db", ".sqlite", ".cql",
	},
	models.CategoryArchitecture: {
		".proto", ".graphql", ".gql", ".thrift", ".avsc", ".puml", ".plantuml", ".drawio",
		".mmd", ".mermaid", ".tf", ".tfvars", ".hcl", ".wsdl",
	},
	models.CategoryManagement: {
		".mpp", ".ics",
	},
}

// categoryKeywords are checked in slice order against the basename without
// its extension.
var categoryKeywords = []struct {
	category models.Category
	keywords []string
}{
	{models.CategoryTest, []string{"test", "spec", "mock", "fixture"}},
	{models.CategoryDatabase, []string{"migration", "migrate", "schema", "seed"}},
	{models.CategoryArchitecture, []string{"architecture", "design", "diagram", "blueprint"}},
	{models.CategoryDocs, []string{"readme", "guide", "tutorial", "manual", "changelog", "license"}},
	{models.CategoryConfig, []string{"config", "settings", "docker", "makefile"}},
	{models.CategoryManagement, []string{"roadmap", "backlog", "governance", "owners", "funding"}},
}

type suffixRule struct {
	suffix   string
	category models.Category
}

// FileClassifier assigns a category and productivity weight to a path
type FileClassifier struct {
	weights  map[models.Category]float64
	suffixes []suffixRule
}

func NewFileClassifier(weights map[models.Category]float64) *FileClassifier {
	var rules []suffixRule
	for category, suffixes := range categorySuffixes {
		for _, suffix := range suffixes {
			rules = append(rules, suffixRule{suffix: suffix, category: category})
		}
	}
	// longest suffix first, ties broken alphabetically to stay deterministic
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].suffix) != len(rules[j].suffix) {
			return len(rules[i].suffix) > len(rules[j].suffix)
		}
		return rules[i].suffix < rules[j].suffix
	})

	return &FileClassifier{
		weights:  weights,
		suffixes: rules,
	}
}

// Classify returns the category of path and its weight. Unknown files are
// "other" with weight 0.
func (c *FileClassifier) Classify(filePath string) (models.Category, float64) {
	category := c.category(ResolveRenamePath(filePath))
	if category == models.CategoryOther {
		return category, 0
	}
	return category, c.weights[category]
}

func (c *FileClassifier) category(filePath string) models.Category {
	base := strings.ToLower(path.Base(strings.TrimSpace(filePath)))
	if base == "" || base == "." || base == "/" {
		return models.CategoryOther
	}

	if category, ok := projectFiles[base]; ok {
		return category
	}

	for _, rule := range c.suffixes {
		if strings.HasSuffix(base, rule.suffix) {
			return rule.category
		}
	}

	stem := strings.TrimSuffix(base, path.Ext(base))
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(stem, keyword) {
				return group.category
			}
		}
	}

	return models.CategoryOther
}

// ResolveRenamePath turns numstat rename notation into the destination path:
// "old => new" becomes "new" and "dir/{old => new}/file" becomes
// "dir/new/file". Paths without rename notation are returned unchanged.
func ResolveRenamePath(filePath string) string {
	const arrow = " => "
	if !strings.Contains(filePath, arrow) {
		return filePath
	}

	open := strings.Index(filePath, "{")
	end := strings.LastIndex(filePath, "}")
	if open >= 0 && end > open {
		inner := filePath[open+1 : end]
		if i := strings.Index(inner, arrow); i >= 0 {
			prefix := filePath[:open]
			suffix := filePath[end+1:]
			dest := inner[i+len(arrow):]
			if dest == "" {
				// "dir/{old => }/file": drop the now empty segment
				return strings.TrimPrefix(strings.TrimSuffix(prefix, "/")+suffix, "/")
			}
			return prefix + dest + suffix
		}
	}

	return filePath[strings.Index(filePath, arrow)+len(arrow):]
}
