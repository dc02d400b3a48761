package sanitize

import (
	"path/filepath"
	"regexp"
	"strings"
)

// CommentStyle identifies one of the fixed comment stripping strategies.
type CommentStyle int

const (
	// CommentStyleNone leaves content untouched.
	CommentStyleNone CommentStyle = iota
	// CommentStyleHash strips "#" line comments and triple-quoted blocks.
	CommentStyleHash
	// CommentStyleC strips "//" line comments and "/* */" blocks.
	CommentStyleC
	// CommentStyleHTML strips "<!-- -->" blocks.
	CommentStyleHTML
	// CommentStyleCSS strips "/* */" blocks.
	CommentStyleCSS
)

var commentStyleNames = map[CommentStyle]string{
	CommentStyleNone: "none",
	CommentStyleHash: "hash",
	CommentStyleC:    "c",
	CommentStyleHTML: "html",
	CommentStyleCSS:  "css",
}

func (style CommentStyle) String() string {
	if name, known := commentStyleNames[style]; known {
		return name
	}
	return commentStyleNames[CommentStyleNone]
}

var commentStyleByExtension = map[string]CommentStyle{
	".py":    CommentStyleHash,
	".pyw":   CommentStyleHash,
	".pyi":   CommentStyleHash,
	".js":    CommentStyleC,
	".ts":    CommentStyleC,
	".jsx":   CommentStyleC,
	".tsx":   CommentStyleC,
	".mjs":   CommentStyleC,
	".cjs":   CommentStyleC,
	".go":    CommentStyleC,
	".java":  CommentStyleC,
	".c":     CommentStyleC,
	".h":     CommentStyleC,
	".cc":    CommentStyleC,
	".cpp":   CommentStyleC,
	".hpp":   CommentStyleC,
	".cs":    CommentStyleC,
	".rs":    CommentStyleC,
	".swift": CommentStyleC,
	".kt":    CommentStyleC,
	".html":  CommentStyleHTML,
	".htm":   CommentStyleHTML,
	".xml":   CommentStyleHTML,
	".css":   CommentStyleCSS,
}

var (
	hashLineCommentPattern   = regexp.MustCompile(`(?m)#.*$`)
	doubleQuotedBlockPattern = regexp.MustCompile(`"""[\s\S]*?"""`)
	singleQuotedBlockPattern = regexp.MustCompile(`'''[\s\S]*?'''`)
	slashLineCommentPattern  = regexp.MustCompile(`(?m)//.*$`)
	slashStarBlockPattern    = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	htmlCommentPattern       = regexp.MustCompile(`<!--[\s\S]*?-->`)
)

// CommentStyleForExtension returns the stripping strategy for a file extension such as ".py".
// Unknown extensions map to CommentStyleNone.
func CommentStyleForExtension(extension string) CommentStyle {
	return commentStyleByExtension[strings.ToLower(extension)]
}

// CommentStyleForPath returns the stripping strategy for the extension of path.
func CommentStyleForPath(path string) CommentStyle {
	return CommentStyleForExtension(filepath.Ext(path))
}

// StripComments removes comments from content using style. This is plain text
// substitution, so comment-like text inside string literals is removed as well.
func StripComments(content string, style CommentStyle) string {
	switch style {
	case CommentStyleHash:
		content = hashLineCommentPattern.ReplaceAllString(content, "")
		content = doubleQuotedBlockPattern.ReplaceAllString(content, "")
		return singleQuotedBlockPattern.ReplaceAllString(content, "")
	case CommentStyleC:
		content = slashLineCommentPattern.ReplaceAllString(content, "")
		return slashStarBlockPattern.ReplaceAllString(content, "")
	case CommentStyleHTML:
		return htmlCommentPattern.ReplaceAllString(content, "")
	case CommentStyleCSS:
		return slashStarBlockPattern.ReplaceAllString(content, "")
	default:
		return content
	}
}
