// Package langdetect decides whether a file holds Java source. Known
// extensions are resolved through go-enry; anything else is classified by
// content so that extensionless launcher scripts and stdin can be scanned.
package langdetect

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by Detect.
const (
	LangJava = "java"
	LangText = "text"
)

// classifierCandidates are the languages a Java-looking snippet is most
// often confused with.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Java", "Kotlin", "Scala", "Groovy", "C#", "C++", "C", "JavaScript", "TypeScript", "Go",
}

//nolint:gochecknoglobals // Compiled once.
var (
	packageDecl = regexp.MustCompile(`^package\s+[\p{L}_$][\p{L}\p{N}_$]*(\s*\.\s*[\p{L}_$][\p{L}\p{N}_$]*)*\s*;`)
	importDecl  = regexp.MustCompile(`^import\s+(static\s+)?[\p{L}_$][\p{L}\p{N}_$.]*(\.\*)?\s*;`)
	typeDecl    = regexp.MustCompile(`^(public\s+|protected\s+|private\s+|abstract\s+|final\s+|sealed\s+|non-sealed\s+|static\s+|strictfp\s+)*(class|interface|enum|record|@interface)\s+[\p{L}_$]`)
	mainMethod  = regexp.MustCompile(`\bpublic\s+static\s+void\s+main\s*\(\s*String`)
)

// Detect returns the lowercase language of a file, or "text" when unsure.
// path may be empty when the content did not come from a file.
func Detect(path string, content []byte) string {
	if path != "" {
		if lang, safe := enry.GetLanguageByExtension(path); safe {
			return normalize(lang)
		}
	}

	if len(content) == 0 {
		return LangText
	}

	if isJavaLauncher(content) {
		return LangJava
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if looksLikeJava(content) {
		return LangJava
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// IsJava reports whether path/content should be scanned as Java.
func IsJava(path string, content []byte) bool {
	return Detect(path, content) == LangJava
}

// IsVendored reports whether path lies in a directory conventionally holding
// third-party code (node_modules, vendor, build output and the like).
func IsVendored(path string) bool {
	return enry.IsVendor(path)
}

// isJavaLauncher recognizes single-file source programs run via "#!/usr/bin/java --source N".
func isJavaLauncher(content []byte) bool {
	if !bytes.HasPrefix(content, []byte("#!")) {
		return false
	}
	line, _, _ := bytes.Cut(content, []byte("\n"))
	for _, field := range strings.Fields(string(line[2:])) {
		if field == "java" || strings.HasSuffix(field, "/java") {
			return true
		}
	}
	return false
}

// looksLikeJava checks the first declarations of a compilation unit.
func looksLikeJava(content []byte) bool {
	if mainMethod.Match(content) {
		return true
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	inComment := false
	for checked := 0; scanner.Scan() && checked < 20; {
		line := strings.TrimSpace(scanner.Text())
		if inComment {
			if _, rest, found := strings.Cut(line, "*/"); found {
				inComment = false
				line = strings.TrimSpace(rest)
			} else {
				continue
			}
		}
		if strings.HasPrefix(line, "/*") {
			if !strings.Contains(line, "*/") {
				inComment = true
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "@") {
			continue
		}
		checked++
		if packageDecl.MatchString(line) || importDecl.MatchString(line) || typeDecl.MatchString(line) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to lowercase identifiers.
func normalize(lang string) string {
	return strings.ToLower(lang)
}
