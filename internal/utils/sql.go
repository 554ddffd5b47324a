package utils

import (
	"regexp"
	"strings"
)

var blockCommentRegex = regexp.MustCompile(`/\*[\s\S]*?\*/`)

// RemoveComments strips line and block comments so statement splitting
// never trips over a semicolon inside a comment.
func RemoveComments(sql string) string {
	var result strings.Builder
	result.Grow(len(sql))

	start := 0
	for i := 0; i < len(sql); i++ {
		if i+1 < len(sql) && sql[i] == '-' && sql[i+1] == '-' {
			result.WriteString(sql[start:i])
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
			if i < len(sql) {
				result.WriteByte('\n')
			}
			start = i + 1
		}
	}
	result.WriteString(sql[start:])

	return blockCommentRegex.ReplaceAllString(result.String(), "")
}

// SplitStatements breaks a script into individual statements on
// semicolons, after comments are removed.
func SplitStatements(content string) []string {
	var statements []string

	for _, part := range strings.Split(RemoveComments(content), ";") {
		statement := strings.TrimSpace(part)
		if statement != "" {
			statements = append(statements, statement)
		}
	}

	return statements
}

// ContainsSQLKeyword reports whether sql contains keyword as a whole
// word, ignoring case.
func ContainsSQLKeyword(sql, keyword string) bool {
	keyword = strings.ToUpper(keyword)
	sql = strings.ToUpper(sql)

	index := 0
	for {
		pos := strings.Index(sql[index:], keyword)
		if pos == -1 {
			return false
		}

		absPos := index + pos
		beforeOK := absPos == 0 || !isAlphaNum(sql[absPos-1])
		afterPos := absPos + len(keyword)
		afterOK := afterPos >= len(sql) || !isAlphaNum(sql[afterPos])

		if beforeOK && afterOK {
			return true
		}

		index = absPos + 1
	}
}

func isAlphaNum(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_'
}
